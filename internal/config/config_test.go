package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// godotenv treats a variable set to "" as present, so unset them outright.
	// t.Setenv registers the restore.
	for _, k := range []string{EnvInput, EnvOutput, EnvLogLevel, EnvLogFormat, EnvRunLog} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Input = "in/catalog.csv"
	cfg.RunLog.Enabled = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, filepath.Join("data", "products.csv"), cfg.Input)
	assert.Equal(t, filepath.Join("data", "transformed_products.csv"), cfg.Output)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.RunLog.Enabled)
	assert.Equal(t, filepath.Join("logs", "run-log.csv"), cfg.RunLog.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("input: other.csv\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.csv", cfg.Input)
	assert.Equal(t, Default().Output, cfg.Output)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("input: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "input: data/products.csv")
	assert.Contains(t, contents, "output: data/transformed_products.csv")
	assert.Contains(t, contents, "level: warn")
	assert.Contains(t, contents, "enabled: false")
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInput, "env-in.csv")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRunLog, "audit/runs.csv")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "env-in.csv", cfg.Input)
	assert.Equal(t, Default().Output, cfg.Output, "unset variables leave fields alone")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.RunLog.Enabled)
	assert.Equal(t, "audit/runs.csv", cfg.RunLog.Path)
}

func TestResolve_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_PicksUpWorkingDirFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("output: out/x.csv\n"), 0o644))

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "out/x.csv", cfg.Output)
}

func TestResolve_ExplicitFileMustExist(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	_, err := Resolve("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve_DotEnvAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("input: file.csv\noutput: file-out.csv\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CATALOGETL_INPUT=dotenv.csv\nCATALOGETL_OUTPUT=dotenv-out.csv\n"), 0o644))
	t.Setenv(EnvOutput, "real-env-out.csv")

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv.csv", cfg.Input, ".env overrides the file")
	assert.Equal(t, "real-env-out.csv", cfg.Output, "the real environment wins over .env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty input", func(c *Config) { c.Input = "" }, "input path is required"},
		{"empty output", func(c *Config) { c.Output = "" }, "output path is required"},
		{"same file", func(c *Config) { c.Output = "./" + c.Input }, "same file"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "unknown log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "unknown log format"},
		{"run log without path", func(c *Config) { c.RunLog = RunLogConfig{Enabled: true} }, "no path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

// chdir switches the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
