package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"dicom-redactor/internal/anonymizer"
)

// Report is the YAML summary of one run. Dry runs fill WouldRedact instead
// of Success.
type Report struct {
	RunID       string    `yaml:"run_id"`
	Source      string    `yaml:"source"`
	Target      string    `yaml:"target"`
	DryRun      bool      `yaml:"dry_run,omitempty"`
	Started     time.Time `yaml:"started"`
	Duration    string    `yaml:"duration"`
	Found       int       `yaml:"found"`
	Success     int       `yaml:"success"`
	Failed      int       `yaml:"failed"`
	Skipped     int       `yaml:"skipped"`
	WouldRedact int       `yaml:"would_redact,omitempty"`
	Failures    []Failure `yaml:"failures,omitempty"`
}

// Failure names one file that produced no output and why.
type Failure struct {
	File  string `yaml:"file"`
	Error string `yaml:"error"`
}

// Build assembles a report from batch statistics.
func Build(runID, source, target string, dryRun bool, stats *anonymizer.Stats, started, finished time.Time) Report {
	r := Report{
		RunID:    runID,
		Source:   source,
		Target:   target,
		DryRun:   dryRun,
		Started:  started.UTC(),
		Duration: finished.Sub(started).Round(time.Millisecond).String(),
	}
	if stats == nil {
		return r
	}

	r.Found = stats.Found
	r.Success = stats.Success
	r.Failed = stats.Failed
	r.Skipped = stats.Skipped
	r.WouldRedact = stats.WouldRedact
	for _, fe := range stats.Failures {
		r.Failures = append(r.Failures, Failure{File: fe.Path, Error: fe.Err.Error()})
	}
	return r
}

// WriteFile writes r as YAML to path, creating parent directories.
func WriteFile(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}
