package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. REDACTOR_WORKERS=4.
const EnvPrefix = "REDACTOR"

type Config struct {
	Source        string   `mapstructure:"source"`
	Target        string   `mapstructure:"target"`
	Workers       int      `mapstructure:"workers"`
	FailurePolicy string   `mapstructure:"failure_policy"`
	Extensions    []string `mapstructure:"extensions"`
	SniffMagic    bool     `mapstructure:"sniff"`
	Include       []string `mapstructure:"include"`
	Exclude       []string `mapstructure:"exclude"`
	Resume        bool     `mapstructure:"resume"`
	DryRun        bool     `mapstructure:"dry_run"`
	ReportFile    string   `mapstructure:"report"`
	LogLevel      string   `mapstructure:"log_level"`
	LogFormat     string   `mapstructure:"log_format"`
	Quiet         bool     `mapstructure:"quiet"`
}

// Load merges, from lowest to highest precedence: defaults, the YAML file at
// configFile (optional), REDACTOR_* environment variables and flags that were
// set explicitly. Flag names use dashes; keys use underscores.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("workers", 0)
	v.SetDefault("failure_policy", "continue")
	v.SetDefault("extensions", []string{".dcm"})
	v.SetDefault("sniff", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" || f.Name == "help" {
				return
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Extensions = splitList(cfg.Extensions)
	cfg.Include = splitList(cfg.Include)
	cfg.Exclude = splitList(cfg.Exclude)

	return cfg, nil
}

// splitList flattens comma-separated entries, which is how list values
// arrive from environment variables.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the run can start: the source must be an existing
// directory and the target must not be the source itself.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.New("source directory is required")
	}
	if c.Target == "" {
		return errors.New("target directory is required")
	}

	info, err := os.Stat(c.Source)
	if err != nil {
		return fmt.Errorf("source directory does not exist: %s", c.Source)
	}
	if !info.IsDir() {
		return fmt.Errorf("source path is not a directory: %s", c.Source)
	}

	if info, err := os.Stat(c.Target); err == nil && !info.IsDir() {
		return fmt.Errorf("target path is not a directory: %s", c.Target)
	}

	src, err := filepath.Abs(c.Source)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	dst, err := filepath.Abs(c.Target)
	if err != nil {
		return fmt.Errorf("resolve target: %w", err)
	}
	if src == dst {
		return errors.New("target directory must differ from source directory")
	}

	switch c.FailurePolicy {
	case "continue", "abort":
	default:
		return fmt.Errorf("failure_policy must be \"continue\" or \"abort\", got %q", c.FailurePolicy)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be \"console\" or \"json\", got %q", c.LogFormat)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	return nil
}
