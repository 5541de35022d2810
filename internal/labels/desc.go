package labels

import (
	"fmt"

	"github.com/jbweber/strata/internal/devices"
)

// Desc returns a description of the class of thing d is, such as
// "partition of local disk" or "LVM volume group".
func (r *Resolver) Desc(d devices.Device) (string, error) {
	switch d := d.(type) {
	case *devices.Disk:
		return diskDesc(d), nil
	case *devices.Partition:
		parent, ok := r.graph.ParentOf(d)
		if !ok {
			return "", fmt.Errorf("partition %q has no parent device %q", d.ID(), d.Device)
		}
		parentDesc, err := r.Desc(parent)
		if err != nil {
			return "", err
		}
		return "partition of " + parentDesc, nil
	case *devices.Raid:
		return r.raidType(d) + " RAID " + d.Level(), nil
	case *devices.VolGroup:
		return "LVM volume group", nil
	case *devices.LogicalVolume:
		return "LVM logical volume", nil
	case *devices.Gap:
		return "to gap", nil
	case *devices.ZPool:
		return "zpool", nil
	default:
		return "", unsupported("desc", d)
	}
}

func diskDesc(d *devices.Disk) string {
	switch {
	case d.Multipath:
		return "multipath device"
	case d.OnRemoteStorage():
		if d.NVMeController.Transport == devices.TransportTCP {
			return "NVMe/TCP drive"
		}
		return "remote drive"
	default:
		return "local disk"
	}
}

func (r *Resolver) raidType(raid *devices.Raid) string {
	if c := r.graph.Container(raid); c != nil {
		return c.Metadata
	}
	if raid.Metadata == devices.MetadataIMSM {
		return devices.MetadataIMSM
	}
	return "software"
}
