package output

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/strata/api/v1alpha1"
)

const giB = int64(1) << 30

// createTestView creates a StorageView with one partitioned disk and a zpool.
func createTestView() *v1alpha1.StorageView {
	v := v1alpha1.NewStorageView("test-view")
	v.Spec.Bootloader = "UEFI"
	v.Status.Disks = []v1alpha1.Disk{
		{
			Kind:            v1alpha1.DiskType,
			ID:              "disk-vda",
			Label:           "SER-vda",
			Path:            "/dev/vda",
			Type:            "local disk",
			Size:            20 * giB,
			Ptable:          "gpt",
			UsageLabels:     []string{},
			BootDevice:      true,
			CanBeBootDevice: true,
			OKForGuided:     true,
			Partitions: []v1alpha1.Node{
				&v1alpha1.Partition{
					Kind:        v1alpha1.PartitionType,
					Number:      1,
					Size:        giB,
					Path:        "/dev/vda1",
					GrubDevice:  true,
					Annotations: []string{"new", "ESP", "already formatted as vfat", "mounted at /boot/efi"},
				},
				&v1alpha1.Gap{Kind: v1alpha1.GapType, Offset: giB, Size: 19 * giB, Usable: true},
			},
		},
	}
	v.Status.ZPools = []v1alpha1.ZPool{
		{
			Kind:       v1alpha1.ZPoolType,
			Pool:       "rpool",
			Mountpoint: "/",
			ZFSes:      []v1alpha1.ZFS{{Kind: v1alpha1.ZFSType, Volume: "ROOT"}},
		},
	}
	return v
}

func TestTableFormatter_FormatView(t *testing.T) {
	f := &TableFormatter{}
	out, err := f.FormatView(createTestView())
	if err != nil {
		t.Fatalf("FormatView() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("expected header row, got %q", lines[0])
	}

	for _, want := range []string{"SER-vda", "local disk", "20 GiB", "gpt", "yes"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("disk row missing %q: %q", want, lines[1])
		}
	}
	if !strings.HasPrefix(lines[2], "  /dev/vda1") {
		t.Errorf("expected indented partition row, got %q", lines[2])
	}
	if !strings.Contains(lines[2], "new, ESP, already formatted as vfat, mounted at /boot/efi") {
		t.Errorf("partition row missing annotations: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "  free space") || !strings.Contains(lines[3], "usable") {
		t.Errorf("unexpected gap row %q", lines[3])
	}
	if !strings.Contains(lines[4], "mounted at /, 1 datasets") {
		t.Errorf("unexpected zpool row %q", lines[4])
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	f := &TableFormatter{NoHeaders: true}
	out, err := f.FormatView(createTestView())
	if err != nil {
		t.Fatalf("FormatView() error = %v", err)
	}

	if strings.Contains(out, "NAME") {
		t.Error("expected no header row")
	}
	if !strings.HasPrefix(out, "SER-vda") {
		t.Errorf("expected output to start with the disk row, got %q", out)
	}
}

func TestTableFormatter_EmptyView(t *testing.T) {
	f := &TableFormatter{}
	out, err := f.FormatView(v1alpha1.NewStorageView("empty"))
	if err != nil {
		t.Fatalf("FormatView() error = %v", err)
	}

	if out != "No disks found\n" {
		t.Errorf("expected 'No disks found', got %q", out)
	}
}

func TestTableFormatter_FormatNode(t *testing.T) {
	view := createTestView()
	tests := []struct {
		name string
		node v1alpha1.Node
		want string
	}{
		{name: "disk", node: &view.Status.Disks[0], want: "/dev/vda1"},
		{name: "partition", node: view.Status.Disks[0].Partitions[0], want: "/dev/vda1"},
		{name: "gap", node: view.Status.Disks[0].Partitions[1], want: "free space"},
		{name: "zpool", node: &view.Status.ZPools[0], want: "rpool"},
		{name: "zfs", node: &view.Status.ZPools[0].ZFSes[0], want: "ROOT"},
	}

	f := &TableFormatter{NoHeaders: true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.FormatNode(tt.node)
			if err != nil {
				t.Fatalf("FormatNode() error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected output to contain %q, got %q", tt.want, out)
			}
		})
	}
}

func TestTableFormatter_UnnumberedPartition(t *testing.T) {
	f := &TableFormatter{NoHeaders: true}
	out, err := f.FormatNode(&v1alpha1.Partition{Kind: v1alpha1.PartitionType, Number: 3})
	if err != nil {
		t.Fatalf("FormatNode() error = %v", err)
	}

	if !strings.HasPrefix(out, "partition 3") {
		t.Errorf("expected partition number as name, got %q", out)
	}
}

func TestJSONFormatter_FormatView(t *testing.T) {
	f := &JSONFormatter{}
	view := createTestView()
	view.TypeMeta = v1alpha1.TypeMeta{}

	out, err := f.FormatView(view)
	if err != nil {
		t.Fatalf("FormatView() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if decoded["kind"] != v1alpha1.StorageViewKind {
		t.Errorf("kind = %v, want %v", decoded["kind"], v1alpha1.StorageViewKind)
	}
	if !strings.Contains(out, `"$type": "Gap"`) {
		t.Errorf("expected gap discriminator in output:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestJSONFormatter_FormatNode(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.FormatNode(&v1alpha1.Gap{Kind: v1alpha1.GapType, Offset: 1 << 20, Size: giB, Usable: true})
	if err != nil {
		t.Fatalf("FormatNode() error = %v", err)
	}

	if !strings.Contains(out, `"usable": true`) {
		t.Errorf("expected usable field, got %s", out)
	}
}

func TestYAMLFormatter_FormatView(t *testing.T) {
	f := &YAMLFormatter{}
	out, err := f.FormatView(createTestView())
	if err != nil {
		t.Fatalf("FormatView() error = %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("failed to parse YAML output: %v", err)
	}
	if decoded["apiVersion"] != v1alpha1.APIVersion() {
		t.Errorf("apiVersion = %v, want %v", decoded["apiVersion"], v1alpha1.APIVersion())
	}
	if !strings.Contains(out, "pool: rpool") {
		t.Errorf("expected zpool in output:\n%s", out)
	}
}

func TestYAMLFormatter_FormatNode(t *testing.T) {
	f := &YAMLFormatter{}
	out, err := f.FormatNode(&v1alpha1.ZFS{Kind: v1alpha1.ZFSType, Volume: "ROOT"})
	if err != nil {
		t.Fatalf("FormatNode() error = %v", err)
	}

	if !strings.Contains(out, "volume: ROOT") {
		t.Errorf("expected volume in output, got %q", out)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{name: "table", format: FormatTable},
		{name: "yaml", format: FormatYAML},
		{name: "json", format: FormatJSON},
		{name: "invalid", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(Options{Format: tt.format})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && f == nil {
				t.Error("NewFormatter() returned nil formatter")
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, valid := range []string{"table", "yaml", "json"} {
		if err := ValidateFormat(valid); err != nil {
			t.Errorf("ValidateFormat(%q) error = %v", valid, err)
		}
	}
	if err := ValidateFormat("xml"); err == nil {
		t.Error("ValidateFormat(\"xml\") expected error")
	}
}
