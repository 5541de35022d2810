// Package logging sets up the client's log files.
//
// Every entry goes to <base>.debug. Entries at info level and above are also
// written to <base>.info, which is the file attached to crash reports.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Files are the paths of the log files written by a logger from Setup.
type Files struct {
	Debug string
	Info  string
}

// Setup creates dir and returns a logger writing to the debug and info files
// under it. The returned closer closes both files.
func Setup(dir, base string) (*logrus.Logger, Files, io.Closer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, Files{}, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	files := Files{
		Debug: filepath.Join(dir, base+".debug"),
		Info:  filepath.Join(dir, base+".info"),
	}
	debugFile, err := openLog(files.Debug)
	if err != nil {
		return nil, Files{}, nil, err
	}
	infoFile, err := openLog(files.Info)
	if err != nil {
		debugFile.Close()
		return nil, Files{}, nil, err
	}

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(debugFile)
	logger.SetFormatter(newFormatter())
	logger.AddHook(&writer.Hook{
		Writer:    infoFile,
		LogLevels: levelsFrom(logrus.InfoLevel),
	})

	return logger, files, closers{debugFile, infoFile}, nil
}

func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

func newFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	}
}

// levelsFrom returns min and every more severe level.
func levelsFrom(min logrus.Level) []logrus.Level {
	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= min {
			levels = append(levels, l)
		}
	}
	return levels
}

type closers []io.Closer

func (c closers) Close() error {
	var first error
	for _, cl := range c {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
