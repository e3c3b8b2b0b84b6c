package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func newFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.String("config", "", "")
	f.Int("workers", 0, "")
	f.String("failure-policy", "continue", "")
	f.StringSlice("extensions", []string{".dcm"}, "")
	f.Bool("sniff", false, "")
	f.StringSlice("include", nil, "")
	f.StringSlice("exclude", nil, "")
	f.Bool("resume", false, "")
	f.Bool("dry-run", false, "")
	f.String("report", "", "")
	f.String("log-level", "info", "")
	f.String("log-format", "console", "")
	f.Bool("quiet", false, "")
	return f
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", newFlags())
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "continue", cfg.FailurePolicy)
	assert.Equal(t, []string{".dcm"}, cfg.Extensions)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "redactor.yaml", `
workers: 3
failure_policy: abort
extensions: [".dcm", ".dicom"]
exclude: ["**/scout/**"]
log_format: json
`)
	t.Setenv("REDACTOR_WORKERS", "5")
	t.Setenv("REDACTOR_INCLUDE", "study1/**,study2/**")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--dry-run", "--log-level", "debug"}))

	cfg, err := Load(p, flags)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Workers, "env beats file")
	assert.Equal(t, "abort", cfg.FailurePolicy)
	assert.Equal(t, []string{".dcm", ".dicom"}, cfg.Extensions)
	assert.Equal(t, []string{"**/scout/**"}, cfg.Exclude)
	assert.Equal(t, []string{"study1/**", "study2/**"}, cfg.Include)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("REDACTOR_WORKERS", "5")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--workers", "2"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), newFlags())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	src := t.TempDir()
	file := writeTemp(t, src, "a.txt", "x")

	valid := func() *Config {
		return &Config{
			Source:        src,
			Target:        filepath.Join(t.TempDir(), "out"),
			FailurePolicy: "continue",
			LogFormat:     "console",
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"missing source", func(c *Config) { c.Source = "" }, "source directory is required"},
		{"missing target", func(c *Config) { c.Target = "" }, "target directory is required"},
		{"source not found", func(c *Config) { c.Source = filepath.Join(src, "nope") }, "does not exist"},
		{"source is a file", func(c *Config) { c.Source = file }, "not a directory"},
		{"target is a file", func(c *Config) { c.Target = file }, "target path is not a directory"},
		{"same dirs", func(c *Config) { c.Target = src + string(filepath.Separator) }, "must differ"},
		{"bad policy", func(c *Config) { c.FailurePolicy = "retry" }, "failure_policy"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
