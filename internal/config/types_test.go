package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name           string
		opts           ClientOptions
		wantSocket     string
		wantOutputBase string
		wantLogDir     string
	}{
		{
			name:           "installed",
			opts:           ClientOptions{},
			wantSocket:     DefaultSocket,
			wantOutputBase: DefaultOutputBase,
			wantLogDir:     DefaultLogDir,
		},
		{
			name:           "dry run",
			opts:           ClientOptions{DryRun: true},
			wantSocket:     ".strata/socket",
			wantOutputBase: DefaultOutputBase,
			wantLogDir:     DefaultOutputBase,
		},
		{
			name:           "dry run with output base",
			opts:           ClientOptions{DryRun: true, OutputBase: "/tmp/run1"},
			wantSocket:     "/tmp/run1/socket",
			wantOutputBase: "/tmp/run1",
			wantLogDir:     "/tmp/run1",
		},
		{
			name:           "explicit socket is kept",
			opts:           ClientOptions{DryRun: true, Socket: "/run/other.sock"},
			wantSocket:     "/run/other.sock",
			wantOutputBase: DefaultOutputBase,
			wantLogDir:     DefaultOutputBase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.ApplyDefaults()

			if opts.Socket != tt.wantSocket {
				t.Errorf("Socket = %v, want %v", opts.Socket, tt.wantSocket)
			}
			if opts.OutputBase != tt.wantOutputBase {
				t.Errorf("OutputBase = %v, want %v", opts.OutputBase, tt.wantOutputBase)
			}
			if opts.LogDir() != tt.wantLogDir {
				t.Errorf("LogDir() = %v, want %v", opts.LogDir(), tt.wantLogDir)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ClientOptions
		wantErr bool
	}{
		{name: "valid", opts: ClientOptions{Socket: DefaultSocket, ServerPID: "4242", Screens: []string{"filesystem"}}},
		{name: "non numeric pid", opts: ClientOptions{Socket: DefaultSocket, ServerPID: "abc"}, wantErr: true},
		{name: "negative pid", opts: ClientOptions{Socket: DefaultSocket, ServerPID: "-1"}, wantErr: true},
		{name: "empty screen", opts: ClientOptions{Socket: DefaultSocket, Screens: []string{" "}}, wantErr: true},
		{name: "missing socket", opts: ClientOptions{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSocketDir(t *testing.T) {
	opts := ClientOptions{Socket: "/run/strata/socket"}
	if got := opts.SocketDir(); got != "/run/strata" {
		t.Errorf("SocketDir() = %v, want /run/strata", got)
	}
}

func TestResolveAnswers(t *testing.T) {
	exists := func(path string) bool { return path == AutoAnswersFile }
	missing := func(string) bool { return false }

	tests := []struct {
		name   string
		opts   ClientOptions
		exists func(string) bool
		want   string
	}{
		{name: "explicit", opts: ClientOptions{Answers: "mine.yaml"}, exists: exists, want: "mine.yaml"},
		{name: "auto", opts: ClientOptions{}, exists: exists, want: AutoAnswersFile},
		{name: "none", opts: ClientOptions{}, exists: missing, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.ResolveAnswers(tt.exists); got != tt.want {
				t.Errorf("ResolveAnswers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "client.yaml")
	content := `
dry_run: true
output_base: /tmp/strata
screens:
  - welcome
  - filesystem
server_pid: "1234"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	opts, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !opts.DryRun || opts.OutputBase != "/tmp/strata" || opts.ServerPID != "1234" {
		t.Errorf("LoadFromFile() = %+v", opts)
	}
	if len(opts.Screens) != 2 || opts.Screens[1] != "filesystem" {
		t.Errorf("Screens = %v", opts.Screens)
	}

	if _, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("LoadFromFile() expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("screens: {"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("LoadFromFile() expected error for invalid YAML")
	}
}

func TestDefaultASCII(t *testing.T) {
	orig := ttyName
	t.Cleanup(func() { ttyName = orig })

	tests := []struct {
		name string
		tty  string
		err  error
		want bool
	}{
		{name: "sclp console", tty: "/dev/ttysclp0", want: true},
		{name: "vt", tty: "/dev/tty1", want: false},
		{name: "not a tty", err: errors.New("no such file"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ttyName = func() (string, error) { return tt.tty, tt.err }
			if got := DefaultASCII(); got != tt.want {
				t.Errorf("DefaultASCII() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildInfoFromEnv(t *testing.T) {
	env := map[string]string{"SNAP_REVISION": "4242", "SNAP": "/snap/strata/4242"}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	info := BuildInfoFromEnv(lookup)
	if got := info.String(); got != "revision 4242 of snap /snap/strata/4242" {
		t.Errorf("String() = %v", got)
	}

	empty := BuildInfoFromEnv(func(string) (string, bool) { return "", false })
	if empty.Revision != "unknown" || empty.Snap != "unknown" {
		t.Errorf("BuildInfoFromEnv() outside a snap = %+v", empty)
	}
}
