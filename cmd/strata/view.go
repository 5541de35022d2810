package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jbweber/strata/internal/boot"
	"github.com/jbweber/strata/internal/devices"
	"github.com/jbweber/strata/internal/gaps"
	"github.com/jbweber/strata/internal/labels"
	"github.com/jbweber/strata/internal/loader"
	"github.com/jbweber/strata/internal/output"
	"github.com/jbweber/strata/internal/view"
)

type viewOptions struct {
	outputFormat string
	noHeaders    bool
	minSize      string
	disk         string
}

func (o *viewOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outputFormat, "output", "o", "table", "Output format: table, yaml, json")
	cmd.Flags().BoolVar(&o.noHeaders, "no-headers", false, "Omit headers in table output")
	cmd.Flags().StringVar(&o.minSize, "min-size", "0", "Minimum disk size for guided partitioning, e.g. 20GB")
}

func (o *viewOptions) formatter() (output.Formatter, error) {
	if err := output.ValidateFormat(o.outputFormat); err != nil {
		return nil, err
	}
	return output.NewFormatter(output.Options{
		Format:    output.Format(o.outputFormat),
		NoHeaders: o.noHeaders,
	})
}

func (o *viewOptions) minSizeBytes() (int64, error) {
	n, err := humanize.ParseBytes(o.minSize)
	if err != nil {
		return 0, fmt.Errorf("invalid min-size %q: %w", o.minSize, err)
	}
	return int64(n), nil
}

// load reads a graph and returns a view builder over it.
func load(path string) (*loader.Graph, *view.Builder, error) {
	g, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load device graph: %w", err)
	}
	return g, view.ForModel(g.Model, g.Bootloader), nil
}

func newViewCmd() *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view <graph.yaml>",
		Short: "Show the storage view of a device graph",
		Long: `Show the disks, partitions, free space and zpools of a device graph
as an installer client would see them.

Use --disk to show a single disk or raid.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   Full StorageView resource
  -o json   Full StorageView resource`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := opts.formatter()
			if err != nil {
				return err
			}
			minSize, err := opts.minSizeBytes()
			if err != nil {
				return err
			}

			g, b, err := load(args[0])
			if err != nil {
				return err
			}
			v, err := b.Snapshot(g.Name, minSize)
			if err != nil {
				return fmt.Errorf("failed to build storage view: %w", err)
			}

			var result string
			if opts.disk != "" {
				disk, ok := v.FindDisk(opts.disk)
				if !ok {
					return fmt.Errorf("disk %s not found in storage view", opts.disk)
				}
				result, err = formatter.FormatNode(disk)
			} else {
				result, err = formatter.FormatView(v)
			}
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), result)
			return nil
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.disk, "disk", "", "Only show the disk or raid with this id")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "describe <graph.yaml> <device-id>",
		Short: "Describe a single device",
		Long: `Describe one device of a device graph: its description, labels,
annotations and usage, followed by its snapshot record when the
device has one.

Example:
  strata describe graph.yaml disk-vda-part1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := opts.formatter()
			if err != nil {
				return err
			}
			minSize, err := opts.minSizeBytes()
			if err != nil {
				return err
			}

			g, b, err := load(args[0])
			if err != nil {
				return err
			}
			d, ok := g.Model.Device(args[1])
			if !ok {
				return fmt.Errorf("device %s not found", args[1])
			}

			out := cmd.OutOrStdout()
			ga := gaps.New(g.Model)
			describe(out, labels.New(g.Model, boot.New(g.Model, ga, g.Bootloader)), d)

			node, err := b.ForClient(d, minSize)
			if errors.Is(err, labels.ErrUnsupportedDevice) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to build snapshot: %w", err)
			}
			result, err := formatter.FormatNode(node)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, result)
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// describe prints the resolver answers for d. Operations a device does not
// support are shown as "-".
func describe(w io.Writer, r *labels.Resolver, d devices.Device) {
	show := func(s string, err error) string {
		if err != nil {
			return "-"
		}
		return s
	}
	joined := func(items []string, err error) string {
		if err != nil || len(items) == 0 {
			return "-"
		}
		return strings.Join(items, ", ")
	}

	fmt.Fprintf(w, "Device: %s\n", d.ID())
	fmt.Fprintf(w, "Type: %s\n", d.Kind())
	fmt.Fprintf(w, "Description: %s\n", show(r.Desc(d)))
	fmt.Fprintf(w, "Label: %s\n", show(r.Label(d, labels.LongLabel)))
	fmt.Fprintf(w, "Short label: %s\n", show(r.Label(d, labels.ShortLabel)))
	fmt.Fprintf(w, "Annotations: %s\n", joined(r.Annotations(d), nil))
	fmt.Fprintf(w, "Usage: %s\n", joined(r.UsageLabels(d)))

	if p, ok := d.(*devices.Partition); ok {
		e := r.Effective(p)
		fmt.Fprintf(w, "Effective mount: %s\n", orDash(e.Mount))
		fmt.Fprintf(w, "Effective format: %s\n", orDash(e.Format))
		fmt.Fprintf(w, "Effectively encrypted: %t\n", e.Encrypted)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
