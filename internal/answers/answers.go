// Package answers loads the auto-answers file that drives the client
// through its screens without interaction.
//
// The file is guarded by an advisory, non-blocking exclusive lock so only
// one client consumes it. A client that cannot take the lock runs
// interactively instead.
package answers

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Answers are the pre-seeded responses for each screen, keyed by screen name.
type Answers struct {
	path    string
	screens map[string]map[string]interface{}
	lock    *flock.Flock
}

// Open locks and parses the answers file at path. It returns nil without an
// error when path is empty or when another process holds the lock.
func Open(path string, log logrus.FieldLogger) (*Answers, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open answers file: %w", err)
	}

	lock := flock.New(path, flock.SetFlag(os.O_RDONLY))
	locked, err := lock.TryLock()
	if err != nil || !locked {
		if err == nil {
			err = fmt.Errorf("%s is locked by another process", path)
		}
		log.WithError(err).WithField("path", path).Warn("Failed to lock auto answers file, proceeding without it")
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	screens := make(map[string]map[string]interface{})
	if err := yaml.Unmarshal(data, &screens); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("failed to parse answers file %s: %w", path, err)
	}

	log.WithFields(logrus.Fields{"path": path, "screens": len(screens)}).Debug("Loaded auto answers")
	return &Answers{path: path, screens: screens, lock: lock}, nil
}

// Path returns the answers file path.
func (a *Answers) Path() string {
	return a.path
}

// For returns the answers for a screen, or nil.
func (a *Answers) For(screen string) map[string]interface{} {
	if a == nil {
		return nil
	}
	return a.screens[screen]
}

// Screens returns the number of screens with answers.
func (a *Answers) Screens() int {
	if a == nil {
		return 0
	}
	return len(a.screens)
}

// Close releases the lock.
func (a *Answers) Close() error {
	if a == nil {
		return nil
	}
	return a.lock.Unlock()
}
