package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/jbweber/strata/api/v1alpha1"
)

// TableFormatter formats snapshots as human-readable tables. Partitions and
// gaps are listed indented under their disk.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

const header = "NAME\tTYPE\tSIZE\tPTABLE\tBOOT\tGUIDED\tUSAGE"

// FormatView formats every disk and zpool of a StorageView.
func (f *TableFormatter) FormatView(v *v1alpha1.StorageView) (string, error) {
	if len(v.Status.Disks) == 0 && len(v.Status.ZPools) == 0 {
		return "No disks found\n", nil
	}

	var rows [][]string
	for i := range v.Status.Disks {
		rows = append(rows, diskRows(&v.Status.Disks[i])...)
	}
	for i := range v.Status.ZPools {
		rows = append(rows, zpoolRow(&v.Status.ZPools[i]))
	}
	return f.render(rows), nil
}

// FormatNode formats a single record.
func (f *TableFormatter) FormatNode(n v1alpha1.Node) (string, error) {
	switch n := n.(type) {
	case *v1alpha1.Disk:
		return f.render(diskRows(n)), nil
	case *v1alpha1.Partition:
		return f.render([][]string{partitionRow(n, "")}), nil
	case *v1alpha1.Gap:
		return f.render([][]string{gapRow(n, "")}), nil
	case *v1alpha1.ZPool:
		return f.render([][]string{zpoolRow(n)}), nil
	case *v1alpha1.ZFS:
		return f.render([][]string{zfsRow(n)}), nil
	default:
		return "", fmt.Errorf("unsupported record type %T", n)
	}
}

func (f *TableFormatter) render(rows [][]string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, header)
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
	return buf.String()
}

func diskRows(d *v1alpha1.Disk) [][]string {
	bootCol := "-"
	switch {
	case d.BootDevice:
		bootCol = "yes"
	case d.CanBeBootDevice:
		bootCol = "possible"
	}
	guided := "no"
	if d.OKForGuided {
		guided = "yes"
	}

	rows := [][]string{{
		d.Label, d.Type, size(d.Size), orDash(d.Ptable), bootCol, guided, join(d.UsageLabels),
	}}
	for _, child := range d.Partitions {
		switch c := child.(type) {
		case *v1alpha1.Partition:
			rows = append(rows, partitionRow(c, "  "))
		case *v1alpha1.Gap:
			rows = append(rows, gapRow(c, "  "))
		}
	}
	return rows
}

func partitionRow(p *v1alpha1.Partition, indent string) []string {
	name := p.Path
	if name == "" {
		name = fmt.Sprintf("partition %d", p.Number)
	}
	bootCol := "-"
	if p.GrubDevice {
		bootCol = "yes"
	}
	return []string{indent + name, "partition", size(p.Size), "-", bootCol, "-", join(p.Annotations)}
}

func gapRow(g *v1alpha1.Gap, indent string) []string {
	usage := "unusable"
	if g.Usable {
		usage = "usable"
	}
	return []string{indent + "free space", "gap", size(g.Size), "-", "-", "-", usage}
}

func zpoolRow(z *v1alpha1.ZPool) []string {
	usage := fmt.Sprintf("%d datasets", len(z.ZFSes))
	if z.Mountpoint != "" {
		usage = fmt.Sprintf("mounted at %s, %s", z.Mountpoint, usage)
	}
	return []string{z.Pool, "zpool", "-", "-", "-", "-", usage}
}

func zfsRow(z *v1alpha1.ZFS) []string {
	return []string{z.Volume, "zfs", "-", "-", "-", "-", "-"}
}

func size(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func join(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
