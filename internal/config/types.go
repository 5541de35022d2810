// Package config holds the client launcher options and build identification.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultSocket is where the server listens outside dry-run.
	DefaultSocket = "/run/strata/socket"

	// DefaultOutputBase is the dry-run base directory.
	DefaultOutputBase = ".strata"

	// DefaultLogDir is where logs go outside dry-run.
	DefaultLogDir = "/var/log/installer"

	// AutoAnswersFile is used when no answers file is given and it exists.
	AutoAnswersFile = "/strata_config/answers.yaml"

	// serialConsole is the s390x SCLP console, which cannot render unicode.
	serialConsole = "/dev/ttysclp0"
)

// ClientOptions are the options of the client launcher.
type ClientOptions struct {
	DryRun     bool     `yaml:"dry_run,omitempty"`
	Socket     string   `yaml:"socket,omitempty"`
	Serial     bool     `yaml:"serial,omitempty"`
	SSH        bool     `yaml:"ssh,omitempty"`
	ASCII      bool     `yaml:"ascii,omitempty"`
	Screens    []string `yaml:"screens,omitempty"`
	Answers    string   `yaml:"answers,omitempty"`
	ServerPID  string   `yaml:"server_pid,omitempty"`
	OutputBase string   `yaml:"output_base,omitempty"`
}

// ApplyDefaults fills in the socket path and output base. In dry-run the
// socket lives under the output base.
func (o *ClientOptions) ApplyDefaults() {
	if o.OutputBase == "" {
		o.OutputBase = DefaultOutputBase
	}
	if o.Socket == "" {
		if o.DryRun {
			o.Socket = filepath.Join(o.OutputBase, "socket")
		} else {
			o.Socket = DefaultSocket
		}
	}
}

// Validate checks the options for errors.
func (o *ClientOptions) Validate() error {
	if o.ServerPID != "" {
		pid, err := strconv.Atoi(o.ServerPID)
		if err != nil || pid <= 0 {
			return fmt.Errorf("server-pid must be a positive integer, got %q", o.ServerPID)
		}
	}
	for i, s := range o.Screens {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("screens[%d]: screen name is empty", i)
		}
	}
	if o.Socket == "" {
		return fmt.Errorf("socket is required")
	}
	return nil
}

// LogDir returns the directory client logs are written to.
func (o *ClientOptions) LogDir() string {
	if o.DryRun {
		return o.OutputBase
	}
	return DefaultLogDir
}

// SocketDir returns the directory that must exist for the socket.
func (o *ClientOptions) SocketDir() string {
	return filepath.Dir(o.Socket)
}

// ResolveAnswers returns the answers file to use: the configured one, or
// AutoAnswersFile when none is configured and it exists.
func (o *ClientOptions) ResolveAnswers(exists func(path string) bool) string {
	if o.Answers != "" {
		return o.Answers
	}
	if exists(AutoAnswersFile) {
		return AutoAnswersFile
	}
	return ""
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromFile loads client options from a YAML file.
func LoadFromFile(path string) (*ClientOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var opts ClientOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &opts, nil
}

// ttyName returns the terminal device on stdin.
var ttyName = func() (string, error) {
	return os.Readlink("/proc/self/fd/0")
}

// DefaultASCII reports whether ascii mode should be the default, which is
// the case on the SCLP console.
func DefaultASCII() bool {
	name, err := ttyName()
	return err == nil && name == serialConsole
}

// BuildInfo identifies the running build. Values come from the snap
// environment and are "unknown" outside a snap.
type BuildInfo struct {
	Revision string
	Snap     string
}

// BuildInfoFromEnv reads SNAP_REVISION and SNAP through lookup.
func BuildInfoFromEnv(lookup func(key string) (string, bool)) BuildInfo {
	get := func(key string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return "unknown"
	}
	return BuildInfo{Revision: get("SNAP_REVISION"), Snap: get("SNAP")}
}

// String returns the startup description of the build.
func (b BuildInfo) String() string {
	return fmt.Sprintf("revision %s of snap %s", b.Revision, b.Snap)
}
