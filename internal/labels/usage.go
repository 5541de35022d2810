package labels

import (
	"fmt"
	"strings"

	"github.com/jbweber/strata/internal/devices"
)

// UsageLabels describes how d is used, e.g. ["component of software RAID 5
// md0"] or ["to be reformatted as xfs", "not mounted"].
func (r *Resolver) UsageLabels(d devices.Device) ([]string, error) {
	switch d := d.(type) {
	case *devices.Partition:
		if d.Flag == devices.FlagPReP || d.Flag == devices.FlagBIOSGrub {
			return []string{}, nil
		}
		return r.genericUsage(d, false)
	case *devices.Disk:
		usage, err := r.genericUsage(d, true)
		if err != nil {
			return nil, err
		}
		if d.Ptable == devices.PtableUnsupported {
			usage = append(usage, "unsupported partition table")
		}
		return usage, nil
	case *devices.Raid:
		if d.Metadata == devices.MetadataIMSM {
			if subs := r.graph.Subvolumes(d); len(subs) > 0 {
				names := make([]string, 0, len(subs))
				for _, sub := range subs {
					names = append(names, sub.Name)
				}
				return []string{"container for " + strings.Join(names, ", ")}, nil
			}
		}
		return r.genericUsage(d, false)
	case *devices.VolGroup, *devices.Gap:
		return []string{}, nil
	default:
		return r.genericUsage(d, false)
	}
}

func (r *Resolver) genericUsage(d devices.Device, omitUnused bool) ([]string, error) {
	if cd := r.graph.ConstructedDevice(d, devices.SkipEncryption); cd != nil {
		role, name, err := componentOf(cd)
		if err != nil {
			return nil, err
		}
		cdDesc, err := r.Desc(cd)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s of %s %s", role, cdDesc, name)}, nil
	}

	var fs *devices.Filesystem
	var originalType string
	if f, ok := d.(devices.Formattable); ok {
		fs = f.Filesystem()
		originalType = f.OriginalFSType()
	}
	if fs == nil {
		if omitUnused {
			return []string{}, nil
		}
		return []string{"unused"}, nil
	}

	var usage []string
	switch {
	case fs.Preserve:
		usage = append(usage, "already formatted as "+fs.Type)
	case originalType != "":
		usage = append(usage, "to be reformatted as "+fs.Type)
	default:
		usage = append(usage, "to be formatted as "+fs.Type)
	}

	if devices.IsMountable(fs.Type) {
		switch {
		case fs.MountPath() != "":
			usage = append(usage, "mounted at "+fs.MountPath())
		case inUse(d):
			usage = append(usage, "in use")
		case !r.isESP(d):
			usage = append(usage, "not mounted")
		}
	} else if fs.Mount != nil {
		usage = append(usage, "used")
	} else {
		usage = append(usage, "unused")
	}
	return usage, nil
}

// componentOf returns the role a member plays in cd and the name of cd.
func componentOf(cd devices.Device) (role, name string, err error) {
	switch cd := cd.(type) {
	case *devices.Raid:
		return "component", cd.Name, nil
	case *devices.VolGroup:
		return "PV", cd.Name, nil
	case *devices.ZPool:
		return "vdev", cd.Pool, nil
	default:
		return "", "", unsupported("usage", cd)
	}
}

func inUse(d devices.Device) bool {
	p, ok := d.(*devices.Partition)
	return ok && p.InUse
}

func (r *Resolver) isESP(d devices.Device) bool {
	p, ok := d.(*devices.Partition)
	return ok && r.boot.IsESP(p)
}
