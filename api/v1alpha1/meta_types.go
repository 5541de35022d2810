// Package v1alpha1 contains the serializable records for strata.cofront.xyz/v1alpha1.
//
// A StorageView is the snapshot handed to a UI: one Disk record per disk or
// raid with its partitions and gaps in disk order, plus the zpools. A
// DeviceGraph is the document the device model is loaded from.
//
// Object metadata follows Kubernetes naming (apiVersion, kind, metadata) so
// documents read like other cluster resources, but no apimachinery types are
// used.
package v1alpha1

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// TypeMeta identifies the schema of a document.
type TypeMeta struct {
	// Kind is StorageView or DeviceGraph.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is GroupName/Version.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
}

// ObjectMeta names a document and records when and from what it was produced.
type ObjectMeta struct {
	// Name identifies the machine or graph the document describes.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Labels are free-form key/value pairs.
	// +optional
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// CreationTimestamp is when the snapshot was taken.
	// +optional
	CreationTimestamp Time `json:"creationTimestamp,omitempty" yaml:"creationTimestamp,omitempty"`

	// UID is unique per snapshot.
	// +optional
	UID string `json:"uid,omitempty" yaml:"uid,omitempty"`
}

// Time is a time.Time serialized as RFC3339 in both JSON and YAML. The zero
// value serializes as null.
type Time struct {
	time.Time `json:"-" yaml:"-"`
}

// MarshalJSON implements the json.Marshaler interface.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements the json.Unmarshaler interface. Accepts null, an
// empty string, or an RFC3339 timestamp.
func (t *Time) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (t Time) MarshalYAML() (interface{}, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time.UTC().Format(time.RFC3339), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (t *Time) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "" || node.Value == "null" {
		t.Time = time.Time{}
		return nil
	}
	return t.parse(node.Value)
}

func (t *Time) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
