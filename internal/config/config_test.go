// Package config tests configuration loading.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME, XDG_CONFIG_HOME and the working directory at fresh
// temp dirs and returns (home, workdir).
func isolate(t *testing.T) (string, string) {
	t.Helper()
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	fs.String(FlagConfig, "", "")
	fs.String(FlagLogLevel, DefaultLogLevel, "")
	fs.String(FlagLogFormat, DefaultLogFormat, "")
	fs.String(FlagColor, DefaultColor, "")
	return fs
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assert.Equal(t, DefaultTodoFile, cfg.TodoFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNoFiles(t *testing.T) {
	_, work := isolate(t)

	cws, err := LoadWithSources(nil)
	require.NoError(t, err)

	assert.Empty(t, cws.Files)
	for _, field := range configFields() {
		assert.Equal(t, SourceDefault, cws.Sources[field], field)
	}

	// Resolve symlinks so macOS /var -> /private/var doesn't break the comparison.
	wantDir, err := filepath.EvalSymlinks(work)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(filepath.Dir(cws.Config.TodoFile))
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)
	assert.Equal(t, DefaultTodoFile, filepath.Base(cws.Config.TodoFile))
}

func TestLoadLayering(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".todo", "todo.toml"), `
log_level = "info"
log_format = "json"
color = "never"
`)
	writeFile(t, filepath.Join(work, "todo.toml"), `
log_format = "logfmt"
`)

	t.Run("project overrides user", func(t *testing.T) {
		cws, err := LoadWithSources(nil)
		require.NoError(t, err)

		assert.Equal(t, "info", cws.Config.LogLevel)
		assert.Equal(t, "logfmt", cws.Config.LogFormat)
		assert.Equal(t, "never", cws.Config.Color)
		assert.Equal(t, SourceUserFile, cws.Sources["log_level"])
		assert.Equal(t, SourceProjFile, cws.Sources["log_format"])
		assert.Len(t, cws.Files, 2)
	})

	t.Run("flags override files", func(t *testing.T) {
		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--color=always"}))

		cws, err := LoadWithSources(fs)
		require.NoError(t, err)

		assert.Equal(t, "debug", cws.Config.LogLevel)
		assert.Equal(t, "always", cws.Config.Color)
		assert.Equal(t, "logfmt", cws.Config.LogFormat)
		assert.Equal(t, SourceFlag, cws.Sources["log_level"])
		assert.Equal(t, SourceFlag, cws.Sources["color"])
		assert.Equal(t, SourceProjFile, cws.Sources["log_format"])
	})

	t.Run("unset flags keep file values", func(t *testing.T) {
		fs := newFlagSet()
		require.NoError(t, fs.Parse(nil))

		cfg, err := Load(fs)
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("explicit config file", func(t *testing.T) {
		explicit := filepath.Join(t.TempDir(), "custom.toml")
		writeFile(t, explicit, `log_level = "error"`)

		fs := newFlagSet()
		require.NoError(t, fs.Parse([]string{"--config", explicit}))

		cws, err := LoadWithSources(fs)
		require.NoError(t, err)
		assert.Equal(t, "error", cws.Config.LogLevel)
		assert.Equal(t, SourceExplicit, cws.Sources["log_level"])
		assert.Equal(t, explicit, cws.Files[len(cws.Files)-1])
	})
}

func TestLoadXDGUserFile(t *testing.T) {
	isolate(t)
	dir := osUserConfigDir()
	if dir == "" {
		t.Skip("no OS config dir on this platform")
	}
	writeFile(t, filepath.Join(dir, "todo", "todo.toml"), `color = "always"`)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "always", cfg.Color)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bad toml", content: `log_level = `, want: "loading project config file"},
		{name: "unknown key", content: `verbose = true`, want: "unknown config keys: verbose"},
		{name: "todo file is not configurable", content: `todo_file = "other.json"`, want: "todo_file"},
		{name: "bad level", content: `log_level = "loud"`, want: "invalid log_level"},
		{name: "bad format", content: `log_format = "xml"`, want: "invalid log_format"},
		{name: "bad color", content: `color = "rainbow"`, want: "invalid color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, work := isolate(t)
			writeFile(t, filepath.Join(work, ".todo.toml"), tt.content)

			_, err := Load(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--config", "does-not-exist.toml"}))

	_, err := Load(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestNormalization(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "todo.toml"), `log_level = " DEBUG "`)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	require.NoError(t, err)
	assert.Empty(t, md.Undecoded())

	cfg.TodoFile = DefaultTodoFile
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)
	t.Setenv("TODO_TEST_DIR", "xyz")

	assert.Equal(t, "", expandPath(""))
	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, filepath.Join(home, "a.toml"), expandPath("~/a.toml"))
	assert.Equal(t, "/tmp/xyz/a.toml", expandPath("/tmp/$TODO_TEST_DIR/a.toml"))
}
