package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Environment variables read by Options.WithEnv
const (
	EnvDebug       = "DYNFORM_DEBUG"
	EnvDebugFile   = "DYNFORM_DEBUG_FILE"
	EnvMaxLogFiles = "DYNFORM_MAX_LOG_FILES"
)

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize is called, so library code and
// tests can log without setup.
var Logger = discard()

// Options select where log records go. The zero value discards them.
type Options struct {
	Debug bool
	// File is an explicit log path. Rotation is skipped for it.
	File string
	// MaxFiles bounds the generated logs kept in the log directory, 0 keeps all
	MaxFiles int
}

// WithEnv overlays the DYNFORM_* variables found by lookup. DYNFORM_DEBUG=1
// always enables debug; the others apply only where o still holds its
// default, so flags win over the environment.
func (o Options) WithEnv(lookup func(string) (string, bool), defaultMaxFiles int) Options {
	if v, _ := lookup(EnvDebug); v == "1" {
		o.Debug = true
	}
	if v, ok := lookup(EnvDebugFile); ok && v != "" && o.File == "" {
		o.File = v
	}
	if v, ok := lookup(EnvMaxLogFiles); ok && o.MaxFiles == defaultMaxFiles {
		if n, err := strconv.Atoi(v); err == nil {
			o.MaxFiles = n
		}
	}
	return o
}

func (o Options) enabled() bool { return o.Debug || o.File != "" }

// Sink reports where Initialize sent the log. A zero Path means records
// are discarded.
type Sink struct {
	Path    string
	Removed int
	Run     string
}

// Initialize installs Logger for opts. Every record carries the run id, so
// one log file can be matched to one invocation.
func Initialize(opts Options) (Sink, error) {
	if !opts.enabled() {
		Logger = discard()
		return Sink{}, nil
	}

	sink := Sink{Path: opts.File, Run: uuid.NewString()}
	if sink.Path == "" {
		dir, err := getLogDir()
		if err != nil {
			return Sink{}, fmt.Errorf("failed to get log directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Sink{}, fmt.Errorf("failed to create log directory: %w", err)
		}
		if opts.MaxFiles > 0 {
			removed, err := rotateLogs(dir, opts.MaxFiles)
			if err != nil {
				// Rotation failure shouldn't prevent logging
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
			sink.Removed = removed
		}
		sink.Path = filepath.Join(dir, logFileName(time.Now(), sink.Run))
	} else if err := os.MkdirAll(filepath.Dir(sink.Path), 0755); err != nil {
		return Sink{}, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(sink.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return Sink{}, fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With("run", sink.Run)
	return sink, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// logFileName sorts generated logs by start time
func logFileName(start time.Time, run string) string {
	return fmt.Sprintf("%s-%s.log", start.UTC().Format("20060102T150405"), run[:8])
}

// rotateLogs deletes the oldest logs so that, with the one about to be
// created, at most maxFiles remain. Returns how many were deleted.
func rotateLogs(dir string, maxFiles int) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var logs []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logs = append(logs, logFile{path: filepath.Join(dir, entry.Name()), modTime: info.ModTime()})
	}
	if len(logs) < maxFiles {
		return 0, nil
	}

	slices.SortFunc(logs, func(a, b logFile) int { return a.modTime.Compare(b.modTime) })

	removed := 0
	for _, l := range logs[:len(logs)-maxFiles+1] {
		if err := os.Remove(l.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", l.path, err)
			continue
		}
		removed++
	}
	return removed, nil
}

// getLogDir returns the OS-specific log directory
func getLogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "dynform"), nil
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, "dynform", "logs"), nil
	default:
		state := os.Getenv("XDG_STATE_HOME")
		if state == "" {
			state = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(state, "dynform"), nil
	}
}
