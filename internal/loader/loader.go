// Package loader reads DeviceGraph documents into a validated device model.
//
// A DeviceGraph lists the devices of one machine in curtin action style:
//
//	apiVersion: strata.cofront.xyz/v1alpha1
//	kind: DeviceGraph
//	metadata:
//	  name: lab-host
//	spec:
//	  bootloader: UEFI
//	  devices:
//	    - type: disk
//	      path: /dev/vda
//	      size: 20GiB
//	      ptable: gpt
//	    - type: partition
//	      device: disk-vda
//	      size: 1GiB
//	      flag: boot
//	      fs: {fstype: vfat, mount: {path: /boot/efi}}
//
// Sizes and offsets accept plain byte counts or human-readable sizes.
package loader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jbweber/strata/api/v1alpha1"
	"github.com/jbweber/strata/internal/boot"
	"github.com/jbweber/strata/internal/devices"
	"github.com/jbweber/strata/internal/gaps"
	"github.com/jbweber/strata/internal/naming"
)

// Graph is a loaded DeviceGraph document.
type Graph struct {
	Name       string
	Bootloader boot.Bootloader
	Model      *devices.Model
}

type document struct {
	v1alpha1.TypeMeta   `yaml:",inline"`
	v1alpha1.ObjectMeta `yaml:"metadata,omitempty"`

	Spec struct {
		Bootloader string      `yaml:"bootloader,omitempty"`
		Devices    []yaml.Node `yaml:"devices"`
	} `yaml:"spec"`
}

// LoadFromFile loads a DeviceGraph document from a YAML file.
func LoadFromFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads a DeviceGraph document from YAML bytes.
func LoadFromYAML(data []byte) (*Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if doc.APIVersion == "" {
		return nil, fmt.Errorf("missing required field: apiVersion")
	}
	if doc.Kind == "" {
		return nil, fmt.Errorf("missing required field: kind")
	}
	if doc.APIVersion != v1alpha1.APIVersion() {
		return nil, fmt.Errorf("unsupported apiVersion: %s (expected: %s)", doc.APIVersion, v1alpha1.APIVersion())
	}
	if doc.Kind != v1alpha1.DeviceGraphKind {
		return nil, fmt.Errorf("unsupported kind: %s (expected: %s)", doc.Kind, v1alpha1.DeviceGraphKind)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("metadata.name is required")
	}

	bootloader := boot.BootloaderUEFI
	if doc.Spec.Bootloader != "" {
		b, err := boot.ParseBootloader(doc.Spec.Bootloader)
		if err != nil {
			return nil, fmt.Errorf("spec.bootloader: %w", err)
		}
		bootloader = b
	}

	devs := make([]devices.Device, 0, len(doc.Spec.Devices))
	for i := range doc.Spec.Devices {
		d, err := decodeDevice(&doc.Spec.Devices[i])
		if err != nil {
			return nil, fmt.Errorf("spec.devices[%d]: %w", i, err)
		}
		devs = append(devs, d)
	}
	applyDefaults(devs)

	m, err := devices.NewModel(devs...)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &Graph{Name: doc.Name, Bootloader: bootloader, Model: m}, nil
}

// sizeKeys are the keys whose values may be written as human-readable sizes.
var sizeKeys = map[string]bool{
	"size":               true,
	"offset":             true,
	"estimated_min_size": true,
}

func decodeDevice(node *yaml.Node) (devices.Device, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: device must be a mapping", node.Line)
	}

	var kind string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch {
		case key.Value == "type":
			kind = value.Value
		case sizeKeys[key.Value] && value.Kind == yaml.ScalarNode:
			if err := normalizeSize(value); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", value.Line, key.Value, err)
			}
		}
	}

	var d devices.Device
	switch devices.Kind(kind) {
	case devices.KindDisk:
		d = &devices.Disk{}
	case devices.KindPartition:
		d = &devices.Partition{}
	case devices.KindRaid:
		d = &devices.Raid{}
	case devices.KindVolGroup:
		d = &devices.VolGroup{}
	case devices.KindLogicalVolume:
		d = &devices.LogicalVolume{}
	case devices.KindZPool:
		d = &devices.ZPool{}
	case devices.KindZFS:
		d = &devices.ZFS{}
	case devices.KindDMCrypt:
		d = &devices.DMCrypt{}
	case "":
		return nil, fmt.Errorf("line %d: missing required field: type", node.Line)
	default:
		return nil, fmt.Errorf("line %d: unsupported device type: %s", node.Line, kind)
	}

	if err := node.Decode(d); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return d, nil
}

// normalizeSize rewrites a human-readable size scalar such as "20GiB" to its
// byte count.
func normalizeSize(value *yaml.Node) error {
	if _, err := strconv.ParseInt(value.Value, 10, 64); err == nil {
		return nil
	}
	n, err := humanize.ParseBytes(value.Value)
	if err != nil {
		return err
	}
	value.Value = strconv.FormatUint(n, 10)
	value.Tag = "!!int"
	value.Style = 0
	return nil
}

// layout tracks the next free offset on a partitioned device.
type layout struct {
	next        int64
	nextLogical int64
	extended    bool
	count       int
}

// applyDefaults fills in ids, partition numbers and offsets left out of the
// document. Ids follow the naming conventions so that references written by
// hand resolve. Partitions without an offset are laid out one after another
// from the first aligned offset. Logical partitions are laid out inside the
// preceding extended partition, or as primaries when there is none.
func applyDefaults(devs []devices.Device) {
	layouts := make(map[string]*layout)

	for _, d := range devs {
		switch d := d.(type) {
		case *devices.Disk:
			if d.DiskID == "" {
				d.DiskID = naming.DiskID(d.Path)
			}
		case *devices.Partition:
			l, ok := layouts[d.Device]
			if !ok {
				l = &layout{next: gaps.Alignment}
				layouts[d.Device] = l
			}
			l.count++
			if d.Number == 0 {
				d.Number = l.count
			}
			if d.PartitionID == "" {
				d.PartitionID = naming.PartitionID(d.Device, d.Number)
			}
			switch {
			case d.IsLogical() && l.extended:
				if d.Offset == 0 {
					d.Offset = l.nextLogical
				}
				l.nextLogical = d.Offset + d.Size + gaps.EBRSpace
			default:
				if d.Offset == 0 {
					d.Offset = l.next
				}
				l.next = d.Offset + d.Size
				if d.Flag == devices.FlagExtended {
					l.nextLogical = d.Offset + gaps.EBRSpace
					l.extended = true
				}
			}
		case *devices.Raid:
			if d.RaidID == "" {
				d.RaidID = naming.NamedID(string(devices.KindRaid), d.Name)
			}
		case *devices.VolGroup:
			if d.VolGroupID == "" {
				d.VolGroupID = naming.NamedID(string(devices.KindVolGroup), d.Name)
			}
		case *devices.LogicalVolume:
			// names are only unique within a volume group
			if d.LogicalVolumeID == "" && d.Name != "" && d.VolGroup != "" {
				d.LogicalVolumeID = d.VolGroup + "-" + d.Name
			} else if d.LogicalVolumeID == "" {
				d.LogicalVolumeID = naming.GeneratedID(string(devices.KindLogicalVolume))
			}
		case *devices.ZPool:
			if d.ZPoolID == "" {
				d.ZPoolID = naming.NamedID(string(devices.KindZPool), d.Pool)
			}
			if d.FSType == "" {
				d.FSType = "zfs"
			}
		case *devices.ZFS:
			if d.ZFSID == "" {
				d.ZFSID = naming.GeneratedID(string(devices.KindZFS))
			}
		case *devices.DMCrypt:
			if d.DMCryptID == "" {
				d.DMCryptID = naming.NamedID(string(devices.KindDMCrypt), d.Volume)
			}
		}
	}
}
