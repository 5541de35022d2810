package devices

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// EncryptionMode selects how ConstructedDevice treats a dm-crypt layer that
// immediately consumes a device.
type EncryptionMode int

const (
	// SkipEncryption treats an immediately following dm-crypt layer as
	// transparent and reports the device consuming it instead.
	SkipEncryption EncryptionMode = iota
	// ReportEncryption reports the dm-crypt layer itself.
	ReportEncryption
)

// String implements fmt.Stringer.
func (m EncryptionMode) String() string {
	switch m {
	case SkipEncryption:
		return "skip-encryption"
	case ReportEncryption:
		return "report-encryption"
	default:
		return fmt.Sprintf("EncryptionMode(%d)", int(m))
	}
}

// ErrInvalidGraph is wrapped by every error returned from NewModel.
var ErrInvalidGraph = errors.New("invalid device graph")

// Model is a read-only, id-indexed device graph.
type Model struct {
	devices   []Device
	byID      map[string]Device
	consumers map[string]string
}

// NewModel indexes devs and validates their references. Every reference must
// name a device in devs, ids must be unique, and a device may be consumed by
// at most one constructed device. All problems are reported together.
func NewModel(devs ...Device) (*Model, error) {
	m := &Model{
		devices:   make([]Device, 0, len(devs)),
		byID:      make(map[string]Device, len(devs)),
		consumers: make(map[string]string),
	}

	var result *multierror.Error
	for _, d := range devs {
		if _, ok := d.(*Gap); ok {
			result = multierror.Append(result, fmt.Errorf("%w: gaps are derived and cannot be part of the graph", ErrInvalidGraph))
			continue
		}
		if d.ID() == "" {
			result = multierror.Append(result, fmt.Errorf("%w: %s has no id", ErrInvalidGraph, d.Kind()))
			continue
		}
		if _, dup := m.byID[d.ID()]; dup {
			result = multierror.Append(result, fmt.Errorf("%w: duplicate id %q", ErrInvalidGraph, d.ID()))
			continue
		}
		m.byID[d.ID()] = d
		m.devices = append(m.devices, d)
	}

	for _, d := range m.devices {
		for _, ref := range m.parentRefs(d) {
			if err := m.checkRef(d, ref); err != nil {
				result = multierror.Append(result, err)
			}
		}
		for _, member := range m.memberIDs(d) {
			if err := m.checkRef(d, member); err != nil {
				result = multierror.Append(result, err)
				continue
			}
			if prev, taken := m.consumers[member]; taken {
				result = multierror.Append(result, fmt.Errorf("%w: %q is consumed by both %q and %q", ErrInvalidGraph, member, prev, d.ID()))
				continue
			}
			m.consumers[member] = d.ID()
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) checkRef(from Device, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s %q has an empty reference", ErrInvalidGraph, from.Kind(), from.ID())
	}
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("%w: %s %q references unknown device %q", ErrInvalidGraph, from.Kind(), from.ID(), id)
	}
	return nil
}

// parentRefs returns the ids a device is contained in (not consumed by).
func (m *Model) parentRefs(d Device) []string {
	switch d := d.(type) {
	case *Partition:
		return []string{d.Device}
	case *LogicalVolume:
		return []string{d.VolGroup}
	case *ZFS:
		return []string{d.Pool}
	case *Raid:
		if d.Container != "" {
			return []string{d.Container}
		}
	}
	return nil
}

// memberIDs returns the ids a constructed device consumes.
func (m *Model) memberIDs(d Device) []string {
	switch d := d.(type) {
	case *Raid:
		return d.Devices
	case *VolGroup:
		return d.Devices
	case *ZPool:
		return d.VDevs
	case *DMCrypt:
		return []string{d.Volume}
	}
	return nil
}

// Device returns the device with the given id.
func (m *Model) Device(id string) (Device, bool) {
	d, ok := m.byID[id]
	return d, ok
}

// Devices returns all devices in document order.
func (m *Model) Devices() []Device {
	out := make([]Device, len(m.devices))
	copy(out, m.devices)
	return out
}

// Roots returns the disks and raids, which root the client view tree.
func (m *Model) Roots() []Device {
	var out []Device
	for _, d := range m.devices {
		switch d.(type) {
		case *Disk, *Raid:
			out = append(out, d)
		}
	}
	return out
}

// ZPools returns all zpools in document order.
func (m *Model) ZPools() []*ZPool {
	var out []*ZPool
	for _, d := range m.devices {
		if z, ok := d.(*ZPool); ok {
			out = append(out, z)
		}
	}
	return out
}

// ConstructedDevice returns the device that consumes d, or nil. With
// SkipEncryption a consuming dm-crypt layer is stepped over once.
func (m *Model) ConstructedDevice(d Device, mode EncryptionMode) Device {
	cd := m.consumer(d.ID())
	if cd == nil {
		return nil
	}
	if _, ok := cd.(*DMCrypt); ok && mode == SkipEncryption {
		return m.consumer(cd.ID())
	}
	return cd
}

func (m *Model) consumer(id string) Device {
	if id == "" {
		return nil
	}
	cid, ok := m.consumers[id]
	if !ok {
		return nil
	}
	return m.byID[cid]
}

// ParentOf returns the disk or raid a partition belongs to.
func (m *Model) ParentOf(p *Partition) (Device, bool) {
	return m.Device(p.Device)
}

// Partitions returns the partitions of a disk or raid ordered by offset,
// then number.
func (m *Model) Partitions(parent Device) []*Partition {
	var out []*Partition
	for _, d := range m.devices {
		if p, ok := d.(*Partition); ok && p.Device == parent.ID() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Offset != out[j].Offset {
			return out[i].Offset < out[j].Offset
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// Members returns the devices consumed by d in creation order.
func (m *Model) Members(d Device) []Device {
	ids := m.memberIDs(d)
	out := make([]Device, 0, len(ids))
	for _, id := range ids {
		if member, ok := m.byID[id]; ok {
			out = append(out, member)
		}
	}
	return out
}

// LogicalVolumes returns the logical volumes of a volume group.
func (m *Model) LogicalVolumes(vg *VolGroup) []*LogicalVolume {
	var out []*LogicalVolume
	for _, d := range m.devices {
		if lv, ok := d.(*LogicalVolume); ok && lv.VolGroup == vg.ID() {
			out = append(out, lv)
		}
	}
	return out
}

// Datasets returns the ZFS datasets of a pool.
func (m *Model) Datasets(pool *ZPool) []*ZFS {
	var out []*ZFS
	for _, d := range m.devices {
		if z, ok := d.(*ZFS); ok && z.Pool == pool.ID() {
			out = append(out, z)
		}
	}
	return out
}

// Container returns the IMSM container a raid belongs to, or nil.
func (m *Model) Container(r *Raid) *Raid {
	if r.Container == "" {
		return nil
	}
	c, _ := m.byID[r.Container].(*Raid)
	return c
}

// Subvolumes returns the raids recorded inside a container.
func (m *Model) Subvolumes(container *Raid) []*Raid {
	var out []*Raid
	for _, d := range m.devices {
		if r, ok := d.(*Raid); ok && r.Container == container.ID() {
			out = append(out, r)
		}
	}
	return out
}

// OnRemoteStorage reports whether d is a remote disk or a raid built on one.
func (m *Model) OnRemoteStorage(d Device) bool {
	switch d := d.(type) {
	case *Disk:
		return d.OnRemoteStorage()
	case *Raid:
		for _, member := range m.Members(d) {
			if m.OnRemoteStorage(member) {
				return true
			}
		}
	case *Partition:
		if parent, ok := m.ParentOf(d); ok {
			return m.OnRemoteStorage(parent)
		}
	}
	return false
}

// HasInUsePartition reports whether any partition of d is in use by the
// running system.
func (m *Model) HasInUsePartition(d Device) bool {
	for _, p := range m.Partitions(d) {
		if p.InUse {
			return true
		}
	}
	return false
}
