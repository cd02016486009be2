package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chartmeta/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	Development bool
	// Stderr replaces os.Stderr for the "stderr" output path.
	Stderr io.Writer
}

// New constructs a slog logger using the provided options. The returned
// closer releases any log files opened for OutputPaths.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	paths := opts.OutputPaths
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "json" && format != "console" {
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	writer, files, err := openWriters(paths, opts.Stderr)
	if err != nil {
		return nil, nil, err
	}

	addSource := opts.Development || level <= slog.LevelDebug

	var handler slog.Handler
	if format == "json" {
		handler = newJSONHandler(writer, levelVar, addSource)
	} else {
		handler = newConsoleHandler(writer, levelVar, addSource)
	}

	return slog.New(handler), files, nil
}

// NewFromConfig creates a logger from the [logging] section. A configured
// log file receives the same records as stderr. A nil stderr means os.Stderr.
// Callers close the returned closer once logging is done.
func NewFromConfig(cfg *config.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", Stderr: stderr})
	}

	outputPaths := []string{"stderr"}
	if file := strings.TrimSpace(cfg.Logging.File); file != "" {
		outputPaths = append(outputPaths, file)
	}
	return New(Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputPaths,
		Stderr:      stderr,
	})
}

// ParseLevel maps a level name to its slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}

// fileSet closes every log file opened by openWriters.
type fileSet []*os.File

func (fs fileSet) Close() error {
	var errs []error
	for _, f := range fs {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openWriters(paths []string, stderr io.Writer) (io.Writer, fileSet, error) {
	if stderr == nil {
		stderr = os.Stderr
	}
	seen := map[string]struct{}{}
	var writers []io.Writer
	var files fileSet

	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, stderr)
		default:
			if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					_ = files.Close()
					return nil, nil, fmt.Errorf("ensure log directory: %w", err)
				}
			}
			file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
			if err != nil {
				_ = files.Close()
				return nil, nil, fmt.Errorf("open log file %s: %w", trimmed, err)
			}
			files = append(files, file)
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return stderr, files, nil
	case 1:
		return writers[0], files, nil
	default:
		return io.MultiWriter(writers...), files, nil
	}
}
