package labels

import "github.com/jbweber/strata/internal/devices"

// Annotations returns the short tags displayed alongside d, in display order.
func (r *Resolver) Annotations(d devices.Device) []string {
	switch d := d.(type) {
	case *devices.Disk, *devices.Gap:
		return []string{}
	case *devices.Partition:
		return r.partitionAnnotations(d)
	case *devices.VolGroup:
		tags := preserveAnnotations(d)
		if members := r.graph.Members(d); len(members) > 0 {
			// first member in creation order
			if _, ok := members[0].(*devices.DMCrypt); ok {
				tags = append(tags, "encrypted")
			}
		}
		return tags
	default:
		return preserveAnnotations(d)
	}
}

func preserveAnnotations(d devices.Device) []string {
	p, ok := d.(devices.Preserver)
	if !ok {
		return []string{}
	}
	if p.Preserved() {
		return []string{"existing"}
	}
	return []string{"new"}
}

func (r *Resolver) partitionAnnotations(p *devices.Partition) []string {
	tags := preserveAnnotations(p)
	switch {
	case p.Flag == devices.FlagPReP:
		tags = append(tags, "PReP")
		if p.Preserve {
			tags = append(tags, configured(p.GrubDevice))
		}
	case r.boot.IsESP(p):
		switch {
		case p.Mount() != "":
			tags = append(tags, "primary ESP")
		case p.GrubDevice:
			tags = append(tags, "backup ESP")
		default:
			tags = append(tags, "unused ESP")
		}
	case p.Flag == devices.FlagBIOSGrub:
		if p.Preserve {
			parent, _ := r.graph.ParentOf(p)
			disk, ok := parent.(*devices.Disk)
			tags = append(tags, configured(ok && disk.GrubDevice))
		}
		tags = append(tags, "BIOS grub spacer")
	case p.Flag == devices.FlagExtended:
		tags = append(tags, "extended")
	}

	if p.IsLogical() {
		tags = append(tags, "logical")
	}
	return tags
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "unconfigured"
}
