// Package gaps finds the unallocated regions of disks and raids and
// interleaves them with partitions in on-disk order.
package gaps

import (
	"github.com/jbweber/strata/internal/devices"
)

const (
	// Alignment is the partition alignment used for all partition tables.
	Alignment int64 = 1 << 20

	// EBRSpace is reserved before each logical partition for its extended
	// boot record.
	EBRSpace = Alignment
)

// graph is the subset of *devices.Model needed for gap analysis.
type graph interface {
	Partitions(parent devices.Device) []*devices.Partition
	ConstructedDevice(d devices.Device, mode devices.EncryptionMode) devices.Device
}

// tableInfo describes the layout constraints of a partition table kind.
type tableInfo struct {
	startReserve int64
	endReserve   int64
	maxPrimary   int
}

var tables = map[string]tableInfo{
	devices.PtableGPT:   {startReserve: Alignment, endReserve: Alignment, maxPrimary: 128},
	devices.PtableMSDOS: {startReserve: Alignment, maxPrimary: 4},
	devices.PtableVTOC:  {startReserve: Alignment, maxPrimary: 3},
}

func info(ptable string) tableInfo {
	if ti, ok := tables[ptable]; ok {
		return ti
	}
	return tables[devices.PtableGPT]
}

// Analyzer computes gaps over a device graph.
type Analyzer struct {
	graph graph
}

// New returns an Analyzer over g.
func New(g graph) *Analyzer {
	return &Analyzer{graph: g}
}

// PartsAndGaps returns the partitions and gaps of a disk or raid in on-disk
// order. Logical partitions and gaps inside an msdos extended partition follow
// the extended partition. Logical partitions outside any extended partition
// are listed in offset order with the primaries. Devices with an unsupported
// partition table report partitions only. Devices consumed whole or formatted
// whole have no gaps.
func (a *Analyzer) PartsAndGaps(d devices.Device) []devices.Device {
	size, ptable, ok := geometry(d)
	if !ok {
		return nil
	}

	parts := a.graph.Partitions(d)
	if ptable == devices.PtableUnsupported || !a.hasFreeSpace(d, parts) {
		out := make([]devices.Device, 0, len(parts))
		for _, p := range parts {
			out = append(out, p)
		}
		return out
	}

	ti := info(ptable)
	var primaries, logicals []*devices.Partition
	for _, p := range parts {
		if p.IsLogical() {
			logicals = append(logicals, p)
		} else {
			primaries = append(primaries, p)
		}
	}
	primaryFull := len(primaries) >= ti.maxPrimary

	// A logical partition outside every extended partition is laid out at
	// the top level so it is neither dropped nor covered by a gap.
	inside := make(map[*devices.Partition]bool, len(logicals))
	for _, l := range logicals {
		for _, p := range primaries {
			if p.Flag == devices.FlagExtended && l.Offset >= p.Offset && l.Offset < p.Offset+p.Size {
				inside[l] = true
				break
			}
		}
	}
	top := make([]*devices.Partition, 0, len(parts))
	for _, p := range parts {
		if !p.IsLogical() || !inside[p] {
			top = append(top, p)
		}
	}

	var out []devices.Device
	emit := func(lo, hi int64, inExtended bool) {
		lo = alignUp(lo)
		hi = alignDown(hi)
		if hi-lo < Alignment {
			return
		}
		out = append(out, &devices.Gap{
			Device:     d.ID(),
			Offset:     lo,
			Size:       hi - lo,
			Usable:     inExtended || !primaryFull,
			InExtended: inExtended,
		})
	}

	cursor := ti.startReserve
	for _, p := range top {
		emit(cursor, p.Offset, false)
		out = append(out, p)
		if p.Flag == devices.FlagExtended {
			end := p.Offset + p.Size
			inner := p.Offset + EBRSpace
			for _, l := range logicals {
				if !inside[l] || l.Offset < p.Offset || l.Offset >= end {
					continue
				}
				emit(inner, l.Offset-EBRSpace, true)
				out = append(out, l)
				inner = l.Offset + l.Size + EBRSpace
			}
			emit(inner, end, true)
		}
		if next := p.Offset + p.Size; next > cursor {
			cursor = next
		}
	}
	emit(cursor, size-ti.endReserve, false)

	return out
}

// LargestGap returns the largest usable gap on d, or nil.
func (a *Analyzer) LargestGap(d devices.Device) *devices.Gap {
	var largest *devices.Gap
	for _, item := range a.PartsAndGaps(d) {
		g, ok := item.(*devices.Gap)
		if !ok || !g.Usable {
			continue
		}
		if largest == nil || g.Size > largest.Size {
			largest = g
		}
	}
	return largest
}

func (a *Analyzer) hasFreeSpace(d devices.Device, parts []*devices.Partition) bool {
	if len(parts) > 0 {
		return true
	}
	if a.graph.ConstructedDevice(d, devices.ReportEncryption) != nil {
		return false
	}
	if f, ok := d.(devices.Formattable); ok && f.Filesystem() != nil {
		return false
	}
	return true
}

func geometry(d devices.Device) (size int64, ptable string, ok bool) {
	switch d := d.(type) {
	case *devices.Disk:
		return d.Size, d.Ptable, true
	case *devices.Raid:
		return d.Size, d.Ptable, true
	}
	return 0, "", false
}

func alignUp(v int64) int64 {
	return (v + Alignment - 1) / Alignment * Alignment
}

func alignDown(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v / Alignment * Alignment
}
