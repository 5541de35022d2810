package labels

import (
	"fmt"

	"github.com/jbweber/strata/internal/devices"
)

// LabelForm selects between the long and short form of a label.
type LabelForm int

const (
	// LongLabel fully identifies the device, e.g. "partition 1 of vda".
	LongLabel LabelForm = iota
	// ShortLabel omits what a partition belongs to, e.g. "partition 1".
	ShortLabel
)

const extendedIndent = "  "

// Label returns the string that identifies d to the user.
func (r *Resolver) Label(d devices.Device, form LabelForm) (string, error) {
	switch d := d.(type) {
	case *devices.Disk:
		switch {
		case d.Multipath && d.WWN != "":
			return d.WWN, nil
		case d.Serial != "":
			return d.Serial, nil
		default:
			return d.Path, nil
		}
	case *devices.Raid:
		return d.Name, nil
	case *devices.VolGroup:
		return d.Name, nil
	case *devices.LogicalVolume:
		return d.Name, nil
	case *devices.Partition:
		return r.partitionLabel(d, form)
	case *devices.Gap:
		if d.InExtended {
			return extendedIndent + "free space", nil
		}
		return "free space", nil
	default:
		return "", unsupported("label", d)
	}
}

func (r *Resolver) partitionLabel(p *devices.Partition, form LabelForm) (string, error) {
	indent := ""
	if p.IsLogical() {
		indent = extendedIndent
	}
	if form == ShortLabel {
		return fmt.Sprintf("%spartition %d", indent, p.Number), nil
	}

	parent, ok := r.graph.ParentOf(p)
	if !ok {
		return "", fmt.Errorf("partition %q has no parent device %q", p.ID(), p.Device)
	}
	parentLabel, err := r.Label(parent, LongLabel)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%spartition %d of %s", indent, p.Number, parentLabel), nil
}
