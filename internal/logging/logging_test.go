package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestOptions_WithEnv(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		vars map[string]string
		want Options
	}{
		{"nothing set", Options{MaxFiles: 1000}, nil, Options{MaxFiles: 1000}},
		{"debug from env", Options{MaxFiles: 1000}, map[string]string{EnvDebug: "1"}, Options{Debug: true, MaxFiles: 1000}},
		{"debug needs 1", Options{MaxFiles: 1000}, map[string]string{EnvDebug: "yes"}, Options{MaxFiles: 1000}},
		{"file from env", Options{}, map[string]string{EnvDebugFile: "/tmp/x.log"}, Options{File: "/tmp/x.log"}},
		{"flag file wins", Options{File: "/a.log"}, map[string]string{EnvDebugFile: "/b.log"}, Options{File: "/a.log"}},
		{"max files from env", Options{MaxFiles: 1000}, map[string]string{EnvMaxLogFiles: "5"}, Options{MaxFiles: 5}},
		{"flag max files wins", Options{MaxFiles: 7}, map[string]string{EnvMaxLogFiles: "5"}, Options{MaxFiles: 7}},
		{"bad max files", Options{MaxFiles: 1000}, map[string]string{EnvMaxLogFiles: "many"}, Options{MaxFiles: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.WithEnv(env(tt.vars), 1000))
		})
	}
}

func TestInitialize_DiscardsWhenNotDebugging(t *testing.T) {
	sink, err := Initialize(Options{MaxFiles: 1000})

	require.NoError(t, err)
	assert.Equal(t, Sink{}, sink)
	assert.NotNil(t, Logger)
}

func TestInitialize_CustomFileTagsRecordsWithRun(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "debug.log")

	sink, err := Initialize(Options{File: logPath, MaxFiles: 1000})

	require.NoError(t, err)
	assert.Equal(t, logPath, sink.Path)
	assert.NotEmpty(t, sink.Run)
	assert.Zero(t, sink.Removed)
	Logger.Info("hello", "key", "value")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"run":"`+sink.Run+`"`)
}

func TestInitialize_GeneratedFileIsRotated(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv("HOME", state)
	dir, err := getLogDir()
	require.NoError(t, err)
	if !strings.HasPrefix(dir, state) {
		t.Skip("log directory does not follow XDG_STATE_HOME on this platform")
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range []string{"a.log", "b.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	sink, err := Initialize(Options{Debug: true, MaxFiles: 2})

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(sink.Path))
	assert.True(t, strings.HasSuffix(sink.Path, sink.Run[:8]+".log"))
	assert.Equal(t, 1, sink.Removed)
	assert.FileExists(t, sink.Path)
}

func TestLogFileName_SortsByStart(t *testing.T) {
	run := "0123456789abcdef"
	early := logFileName(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), run)
	late := logFileName(time.Date(2024, 11, 2, 3, 4, 5, 0, time.UTC), run)

	assert.Equal(t, "20240102T030405-01234567.log", early)
	assert.Less(t, early, late)
}

func TestRotateLogs_RemovesOldest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.log", "b.log", "c.log"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	removed, err := rotateLogs(dir, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	_, err = os.Stat(filepath.Join(dir, "a.log"))
	assert.True(t, os.IsNotExist(err), "oldest log should be removed")
	_, err = os.Stat(filepath.Join(dir, "b.log"))
	assert.True(t, os.IsNotExist(err), "second oldest log should be removed to make room")
	assert.FileExists(t, filepath.Join(dir, "c.log"))
	assert.FileExists(t, filepath.Join(dir, "keep.txt"))
}

func TestRotateLogs_UnderLimitKeepsAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.log"), []byte("x"), 0644))

	removed, err := rotateLogs(dir, 5)

	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.FileExists(t, filepath.Join(dir, "a.log"))
}
