package v1alpha1

// Node is implemented by every snapshot record. NodeType is the value of the
// "$type" discriminator the record serializes with.
type Node interface {
	NodeType() string
}

// Snapshot record types, used as "$type" discriminators.
const (
	DiskType      = "Disk"
	PartitionType = "Partition"
	GapType       = "Gap"
	ZPoolType     = "ZPool"
	ZFSType       = "ZFS"
)

// StorageView is a complete snapshot of the storage configuration, rendered
// for a UI.
type StorageView struct {
	TypeMeta   `json:",inline" yaml:",inline"`
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	Spec   StorageViewSpec   `json:"spec" yaml:"spec"`
	Status StorageViewStatus `json:"status" yaml:"status"`
}

// StorageViewSpec records the inputs the snapshot was computed for.
type StorageViewSpec struct {
	// Bootloader is UEFI, BIOS, PREP or NONE.
	Bootloader string `json:"bootloader" yaml:"bootloader"`

	// MinSize is the minimum size in bytes for a disk to be offered for
	// guided partitioning.
	MinSize int64 `json:"minSize" yaml:"minSize"`
}

// StorageViewStatus holds the snapshot tree.
type StorageViewStatus struct {
	// Disks has one record per disk and raid, in graph order.
	Disks []Disk `json:"disks" yaml:"disks"`

	// ZPools has one record per zpool, in graph order.
	// +optional
	ZPools []ZPool `json:"zpools,omitempty" yaml:"zpools,omitempty"`
}

// Disk is the snapshot of a disk or raid.
type Disk struct {
	Kind string `json:"$type" yaml:"$type"`

	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	// +optional
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Type is the description of the device, e.g. "local disk".
	Type        string   `json:"type" yaml:"type"`
	Size        int64    `json:"size" yaml:"size"`
	Ptable      string   `json:"ptable,omitempty" yaml:"ptable,omitempty"`
	Preserve    bool     `json:"preserve" yaml:"preserve"`
	UsageLabels []string `json:"usage_labels" yaml:"usage_labels"`

	// Partitions holds *Partition and *Gap records in disk order.
	Partitions []Node `json:"partitions" yaml:"partitions"`

	BootDevice      bool `json:"boot_device" yaml:"boot_device"`
	CanBeBootDevice bool `json:"can_be_boot_device" yaml:"can_be_boot_device"`
	OKForGuided     bool `json:"ok_for_guided" yaml:"ok_for_guided"`

	// Model and Vendor are only reported for disks.
	// +optional
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// +optional
	Vendor string `json:"vendor,omitempty" yaml:"vendor,omitempty"`

	HasInUsePartition bool `json:"has_in_use_partition" yaml:"has_in_use_partition"`
	RequiresReformat  bool `json:"requires_reformat" yaml:"requires_reformat"`
}

// NodeType implements Node.
func (*Disk) NodeType() string { return DiskType }

// OsProber is the operating system detected on a partition.
type OsProber struct {
	Long  string `json:"long" yaml:"long"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type" yaml:"type"`
	// +optional
	Subpath string `json:"subpath,omitempty" yaml:"subpath,omitempty"`
	// +optional
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Partition is the snapshot of a partition.
type Partition struct {
	Kind string `json:"$type" yaml:"$type"`

	Size       int64  `json:"size" yaml:"size"`
	Number     int    `json:"number" yaml:"number"`
	Wipe       string `json:"wipe,omitempty" yaml:"wipe,omitempty"`
	Preserve   bool   `json:"preserve" yaml:"preserve"`
	GrubDevice bool   `json:"grub_device" yaml:"grub_device"`
	Boot       bool   `json:"boot" yaml:"boot"`

	// Annotations are the annotation tags followed by the usage labels.
	Annotations []string `json:"annotations" yaml:"annotations"`

	// +optional
	OS     *OsProber `json:"os,omitempty" yaml:"os,omitempty"`
	Offset int64     `json:"offset" yaml:"offset"`
	// +optional
	Resize *bool  `json:"resize,omitempty" yaml:"resize,omitempty"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	// +optional
	EstimatedMinSize *int64 `json:"estimated_min_size,omitempty" yaml:"estimated_min_size,omitempty"`

	Mount   string `json:"mount,omitempty" yaml:"mount,omitempty"`
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`
	IsInUse bool   `json:"is_in_use" yaml:"is_in_use"`

	EffectiveMount       string `json:"effective_mount,omitempty" yaml:"effective_mount,omitempty"`
	EffectiveFormat      string `json:"effective_format,omitempty" yaml:"effective_format,omitempty"`
	EffectivelyEncrypted bool   `json:"effectively_encrypted" yaml:"effectively_encrypted"`
}

// NodeType implements Node.
func (*Partition) NodeType() string { return PartitionType }

// Gap is the snapshot of unallocated space.
type Gap struct {
	Kind string `json:"$type" yaml:"$type"`

	Offset int64 `json:"offset" yaml:"offset"`
	Size   int64 `json:"size" yaml:"size"`
	Usable bool  `json:"usable" yaml:"usable"`
}

// NodeType implements Node.
func (*Gap) NodeType() string { return GapType }

// ZPool is the snapshot of a ZFS pool.
type ZPool struct {
	Kind string `json:"$type" yaml:"$type"`

	Pool       string `json:"pool" yaml:"pool"`
	Mountpoint string `json:"mountpoint" yaml:"mountpoint"`
	ZFSes      []ZFS  `json:"zfses" yaml:"zfses"`
	// +optional
	PoolProperties map[string]string `json:"pool_properties,omitempty" yaml:"pool_properties,omitempty"`
	// +optional
	FSProperties    map[string]string `json:"fs_properties,omitempty" yaml:"fs_properties,omitempty"`
	DefaultFeatures bool              `json:"default_features" yaml:"default_features"`
}

// NodeType implements Node.
func (*ZPool) NodeType() string { return ZPoolType }

// ZFS is the snapshot of a ZFS dataset.
type ZFS struct {
	Kind string `json:"$type" yaml:"$type"`

	Volume string `json:"volume" yaml:"volume"`
	// +optional
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// NodeType implements Node.
func (*ZFS) NodeType() string { return ZFSType }
