package view

import (
	"fmt"

	"github.com/jbweber/strata/api/v1alpha1"
	"github.com/jbweber/strata/internal/boot"
	"github.com/jbweber/strata/internal/devices"
	"github.com/jbweber/strata/internal/gaps"
	"github.com/jbweber/strata/internal/labels"
	"github.com/jbweber/strata/internal/naming"
)

// Builder renders devices as client snapshot records.
type Builder struct {
	graph    deviceGraph
	resolver resolver
	gaps     gapAnalyzer
	boot     bootAnalyzer
}

// New returns a Builder composed from its collaborators.
func New(graph deviceGraph, res resolver, gaps gapAnalyzer, boot bootAnalyzer) *Builder {
	return &Builder{graph: graph, resolver: res, gaps: gaps, boot: boot}
}

// ForModel wires a Builder over m with the standard gap, boot and label
// implementations.
func ForModel(m *devices.Model, bootloader boot.Bootloader) *Builder {
	g := gaps.New(m)
	b := boot.New(m, g, bootloader)
	return New(m, labels.New(m, b), g, b)
}

// Snapshot renders every disk, raid and zpool of the graph into a
// StorageView named name. Disks smaller than minSize are not offered for
// guided partitioning.
func (b *Builder) Snapshot(name string, minSize int64) (*v1alpha1.StorageView, error) {
	v := v1alpha1.NewStorageView(name)
	v.Spec = v1alpha1.StorageViewSpec{
		Bootloader: string(b.boot.Bootloader()),
		MinSize:    minSize,
	}

	for _, root := range b.graph.Roots() {
		disk, err := b.disk(root, minSize)
		if err != nil {
			return nil, err
		}
		v.Status.Disks = append(v.Status.Disks, *disk)
	}
	for _, pool := range b.graph.ZPools() {
		v.Status.ZPools = append(v.Status.ZPools, *b.zpool(pool))
	}
	return v, nil
}

// ForClient renders a single device. Disks and raids render with their
// partitions and gaps, zpools with their datasets. Volume groups, logical
// volumes and dm-crypt layers have no client record.
func (b *Builder) ForClient(d devices.Device, minSize int64) (v1alpha1.Node, error) {
	switch d := d.(type) {
	case *devices.Disk, *devices.Raid:
		disk, err := b.disk(d, minSize)
		if err != nil {
			return nil, err
		}
		return disk, nil
	case *devices.Partition:
		part, err := b.partition(d)
		if err != nil {
			return nil, err
		}
		return part, nil
	case *devices.Gap:
		return gap(d), nil
	case *devices.ZPool:
		return b.zpool(d), nil
	case *devices.ZFS:
		return dataset(d), nil
	default:
		return nil, &labels.UnsupportedDeviceError{Op: "for_client", Device: d}
	}
}

func (b *Builder) disk(d devices.Device, minSize int64) (*v1alpha1.Disk, error) {
	label, err := b.resolver.Label(d, labels.LongLabel)
	if err != nil {
		return nil, err
	}
	desc, err := b.resolver.Desc(d)
	if err != nil {
		return nil, err
	}
	usage, err := b.resolver.UsageLabels(d)
	if err != nil {
		return nil, err
	}

	out := &v1alpha1.Disk{
		Kind:              v1alpha1.DiskType,
		ID:                d.ID(),
		Label:             label,
		Type:              desc,
		UsageLabels:       usage,
		Partitions:        []v1alpha1.Node{},
		BootDevice:        b.boot.IsBootDevice(d),
		CanBeBootDevice:   b.boot.CanBeBootDevice(d),
		HasInUsePartition: b.graph.HasInUsePartition(d),
	}
	switch d := d.(type) {
	case *devices.Disk:
		out.Path, out.Size, out.Ptable, out.Preserve = d.Path, d.Size, d.Ptable, d.Preserve
		out.Model, out.Vendor = d.Model, d.Vendor
	case *devices.Raid:
		out.Path, out.Size, out.Ptable, out.Preserve = d.Path, d.Size, d.Ptable, d.Preserve
	default:
		return nil, fmt.Errorf("%s %q is not a disk or raid", d.Kind(), d.ID())
	}
	out.OKForGuided = out.Size >= minSize && !b.graph.OnRemoteStorage(d)
	out.RequiresReformat = out.Ptable == devices.PtableUnsupported

	for _, child := range b.gaps.PartsAndGaps(d) {
		node, err := b.ForClient(child, minSize)
		if err != nil {
			return nil, fmt.Errorf("rendering %s of %q: %w", child.Kind(), d.ID(), err)
		}
		out.Partitions = append(out.Partitions, node)
	}
	return out, nil
}

func (b *Builder) partition(p *devices.Partition) (*v1alpha1.Partition, error) {
	usage, err := b.resolver.UsageLabels(p)
	if err != nil {
		return nil, err
	}
	eff := b.resolver.Effective(p)

	out := &v1alpha1.Partition{
		Kind:                 v1alpha1.PartitionType,
		Size:                 p.Size,
		Number:               p.Number,
		Wipe:                 p.Wipe,
		Preserve:             p.Preserve,
		GrubDevice:           p.GrubDevice,
		Boot:                 p.Boot,
		Annotations:          append(b.resolver.Annotations(p), usage...),
		Offset:               p.Offset,
		Resize:               p.Resize,
		Path:                 b.partitionPath(p),
		Name:                 p.Name,
		EstimatedMinSize:     p.EstimatedMinSize,
		Mount:                p.Mount(),
		Format:               p.Format(),
		IsInUse:              p.InUse,
		EffectiveMount:       eff.Mount,
		EffectiveFormat:      eff.Format,
		EffectivelyEncrypted: eff.Encrypted,
	}
	if p.OS != nil {
		out.OS = &v1alpha1.OsProber{
			Long:    p.OS.Long,
			Label:   p.OS.Label,
			Type:    p.OS.Type,
			Subpath: p.OS.Subpath,
			Version: p.OS.Version,
		}
	}
	return out, nil
}

func (b *Builder) partitionPath(p *devices.Partition) string {
	parent, ok := b.graph.ParentOf(p)
	if !ok {
		return ""
	}
	switch parent := parent.(type) {
	case *devices.Disk:
		return naming.PartitionPath(parent.Path, p.Number)
	case *devices.Raid:
		return naming.PartitionPath(parent.Path, p.Number)
	}
	return ""
}

func gap(g *devices.Gap) *v1alpha1.Gap {
	return &v1alpha1.Gap{
		Kind:   v1alpha1.GapType,
		Offset: g.Offset,
		Size:   g.Size,
		Usable: g.Usable,
	}
}

func (b *Builder) zpool(z *devices.ZPool) *v1alpha1.ZPool {
	out := &v1alpha1.ZPool{
		Kind:            v1alpha1.ZPoolType,
		Pool:            z.Pool,
		Mountpoint:      z.Mountpoint,
		ZFSes:           []v1alpha1.ZFS{},
		PoolProperties:  z.PoolProperties,
		FSProperties:    z.FSProperties,
		DefaultFeatures: z.DefaultFeatures,
	}
	for _, ds := range b.graph.Datasets(z) {
		out.ZFSes = append(out.ZFSes, *dataset(ds))
	}
	return out
}

func dataset(z *devices.ZFS) *v1alpha1.ZFS {
	return &v1alpha1.ZFS{
		Kind:       v1alpha1.ZFSType,
		Volume:     z.Volume,
		Properties: z.Properties,
	}
}
