package gaps

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jbweber/strata/internal/devices"
)

const (
	miB = int64(1) << 20
	giB = int64(1) << 30
)

// layout renders PartsAndGaps as comparable strings.
func layout(items []devices.Device) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		switch d := item.(type) {
		case *devices.Partition:
			out = append(out, d.ID())
		case *devices.Gap:
			out = append(out, *d)
		}
	}
	return out
}

func newModel(t *testing.T, devs ...devices.Device) *devices.Model {
	t.Helper()
	m, err := devices.NewModel(devs...)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func TestPartsAndGaps(t *testing.T) {
	tests := []struct {
		name string
		devs []devices.Device
		want []any
	}{
		{
			name: "empty gpt disk",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableGPT},
			},
			want: []any{
				devices.Gap{Device: "d", Offset: miB, Size: 10*giB - 2*miB, Usable: true},
			},
		},
		{
			name: "empty disk without table uses gpt layout",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB},
			},
			want: []any{
				devices.Gap{Device: "d", Offset: miB, Size: 10*giB - 2*miB, Usable: true},
			},
		},
		{
			name: "gpt disk with trailing space",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableGPT},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
			},
			want: []any{
				"p1",
				devices.Gap{Device: "d", Offset: giB + miB, Size: 9*giB - 2*miB, Usable: true},
			},
		},
		{
			name: "gap between partitions",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 4*giB + 2*miB, Ptable: devices.PtableGPT},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
				&devices.Partition{PartitionID: "p2", Device: "d", Number: 2, Offset: 3*giB + miB, Size: giB},
			},
			want: []any{
				"p1",
				devices.Gap{Device: "d", Offset: giB + miB, Size: 2 * giB, Usable: true},
				"p2",
			},
		},
		{
			name: "sub-alignment slack is dropped",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: giB + 2*miB + 4096, Ptable: devices.PtableGPT},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
			},
			want: []any{"p1"},
		},
		{
			name: "msdos primary limit makes trailing gap unusable",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableMSDOS},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
				&devices.Partition{PartitionID: "p2", Device: "d", Number: 2, Offset: giB + miB, Size: giB},
				&devices.Partition{PartitionID: "p3", Device: "d", Number: 3, Offset: 2*giB + miB, Size: giB},
				&devices.Partition{PartitionID: "p4", Device: "d", Number: 4, Offset: 3*giB + miB, Size: giB},
			},
			want: []any{
				"p1", "p2", "p3", "p4",
				devices.Gap{Device: "d", Offset: 4*giB + miB, Size: 6*giB - miB, Usable: false},
			},
		},
		{
			name: "msdos extended with logical partition",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableMSDOS},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
				&devices.Partition{PartitionID: "p2", Device: "d", Number: 2, Offset: giB + miB, Size: 4 * giB, Flag: devices.FlagExtended},
				&devices.Partition{PartitionID: "p5", Device: "d", Number: 5, Offset: giB + 2*miB, Size: giB, Flag: devices.FlagLogical},
			},
			want: []any{
				"p1", "p2", "p5",
				devices.Gap{Device: "d", Offset: 2*giB + 3*miB, Size: 3*giB - 2*miB, Usable: true, InExtended: true},
				devices.Gap{Device: "d", Offset: 5*giB + miB, Size: 5*giB - miB, Usable: true},
			},
		},
		{
			name: "logical partition without extended is kept",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableMSDOS},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
				&devices.Partition{PartitionID: "p5", Device: "d", Number: 5, Offset: 2 * giB, Size: giB, Flag: devices.FlagLogical},
			},
			want: []any{
				"p1",
				devices.Gap{Device: "d", Offset: giB + miB, Size: giB - miB, Usable: true},
				"p5",
				devices.Gap{Device: "d", Offset: 3 * giB, Size: 7 * giB, Usable: true},
			},
		},
		{
			name: "logical partition beyond extended is kept",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableMSDOS},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: 2 * giB, Flag: devices.FlagExtended},
				&devices.Partition{PartitionID: "p5", Device: "d", Number: 5, Offset: 2*miB, Size: giB, Flag: devices.FlagLogical},
				&devices.Partition{PartitionID: "p6", Device: "d", Number: 6, Offset: 4 * giB, Size: giB, Flag: devices.FlagLogical},
			},
			want: []any{
				"p1", "p5",
				devices.Gap{Device: "d", Offset: giB + 3*miB, Size: giB - 2*miB, Usable: true, InExtended: true},
				devices.Gap{Device: "d", Offset: 2*giB + miB, Size: 2*giB - miB, Usable: true},
				"p6",
				devices.Gap{Device: "d", Offset: 5 * giB, Size: 5 * giB, Usable: true},
			},
		},
		{
			name: "unsupported table reports partitions only",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableUnsupported},
				&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: miB, Size: giB},
			},
			want: []any{"p1"},
		},
		{
			name: "raid member has no gaps",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB},
				&devices.Disk{DiskID: "e", Size: 10 * giB},
				&devices.Raid{RaidID: "md0", Name: "md0", RaidLevel: "raid1", Devices: []string{"d", "e"}},
			},
			want: []any{},
		},
		{
			name: "whole disk filesystem has no gaps",
			devs: []devices.Device{
				&devices.Disk{DiskID: "d", Size: 10 * giB, FS: &devices.Filesystem{Type: "ext4"}},
			},
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, tt.devs...)
			d, _ := m.Device("d")
			got := layout(New(m).PartsAndGaps(d))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PartsAndGaps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartsAndGaps_Raid(t *testing.T) {
	m := newModel(t,
		&devices.Disk{DiskID: "a", Size: 10 * giB},
		&devices.Disk{DiskID: "b", Size: 10 * giB},
		&devices.Raid{RaidID: "md0", Name: "md0", RaidLevel: "raid1", Size: 10 * giB, Ptable: devices.PtableGPT, Devices: []string{"a", "b"}},
	)
	md0, _ := m.Device("md0")

	got := New(m).PartsAndGaps(md0)
	if len(got) != 1 {
		t.Fatalf("expected one gap, got %d items", len(got))
	}
	if g, ok := got[0].(*devices.Gap); !ok || g.Device != "md0" {
		t.Errorf("expected gap on md0, got %#v", got[0])
	}
}

func TestPartsAndGaps_NotPartitionable(t *testing.T) {
	m := newModel(t,
		&devices.Disk{DiskID: "d", Size: 10 * giB},
		&devices.VolGroup{VolGroupID: "vg", Name: "vg0", Devices: []string{"d"}},
	)
	vg, _ := m.Device("vg")

	if got := New(m).PartsAndGaps(vg); got != nil {
		t.Errorf("expected nil for a volume group, got %v", got)
	}
}

func TestLargestGap(t *testing.T) {
	m := newModel(t,
		&devices.Disk{DiskID: "d", Size: 10 * giB, Ptable: devices.PtableGPT},
		&devices.Partition{PartitionID: "p1", Device: "d", Number: 1, Offset: 2 * giB, Size: giB},
	)
	d, _ := m.Device("d")

	g := New(m).LargestGap(d)
	if g == nil {
		t.Fatal("LargestGap() = nil, want gap")
	}
	if g.Offset != 3*giB || g.Size != 7*giB-miB {
		t.Errorf("LargestGap() = %+v, want offset %d size %d", g, 3*giB, 7*giB-miB)
	}
}
