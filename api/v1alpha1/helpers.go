package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

const (
	// GroupName is the API group for strata documents.
	GroupName = "strata.cofront.xyz"

	// Version is the API version.
	Version = "v1alpha1"

	// StorageViewKind is the kind string for StorageView documents.
	StorageViewKind = "StorageView"

	// DeviceGraphKind is the kind string for DeviceGraph documents.
	DeviceGraphKind = "DeviceGraph"
)

// APIVersion returns GroupName/Version.
func APIVersion() string {
	return GroupName + "/" + Version
}

// NewStorageView returns an empty StorageView with type and object metadata
// filled in. Every call gets a fresh UID.
func NewStorageView(name string) *StorageView {
	return &StorageView{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion(),
			Kind:       StorageViewKind,
		},
		ObjectMeta: ObjectMeta{
			Name:              name,
			UID:               uuid.New().String(),
			CreationTimestamp: Time{Time: time.Now()},
		},
		Status: StorageViewStatus{
			Disks: []Disk{},
		},
	}
}

// SetDefaultTypeMeta fills in apiVersion and kind when a document omits them.
func SetDefaultTypeMeta(tm *TypeMeta, kind string) {
	if tm.APIVersion == "" {
		tm.APIVersion = APIVersion()
	}
	if tm.Kind == "" {
		tm.Kind = kind
	}
}

// FindDisk returns the disk record with the given id.
func (v *StorageView) FindDisk(id string) (*Disk, bool) {
	for i := range v.Status.Disks {
		if v.Status.Disks[i].ID == id {
			return &v.Status.Disks[i], true
		}
	}
	return nil, false
}
