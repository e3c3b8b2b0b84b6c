package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dicom-redactor/internal/anonymizer"
	"dicom-redactor/internal/config"
	dcm "dicom-redactor/internal/dicom"
	"dicom-redactor/internal/report"
)

// Run executes one redaction batch described by cfg. Human-readable output
// (header, progress bar, summary) goes to out; diagnostics go to log.
//
// A non-nil error means the batch could not run or was aborted. Per-file
// failures under the continue policy are reported through Stats.Failed.
func Run(ctx context.Context, cfg *config.Config, out io.Writer, log zerolog.Logger) (*anonymizer.Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	if !cfg.Quiet {
		printHeader(out, cfg)
	}

	acfg := anonymizer.Config{
		SourceFolder:  cfg.Source,
		TargetFolder:  cfg.Target,
		Workers:       cfg.Workers,
		FailurePolicy: anonymizer.FailurePolicy(cfg.FailurePolicy),
		Finder: dcm.FinderOptions{
			Extensions: cfg.Extensions,
			SniffMagic: cfg.SniffMagic,
			Include:    cfg.Include,
			Exclude:    cfg.Exclude,
		},
		Resume: cfg.Resume,
		DryRun: cfg.DryRun,
		Logger: log,
	}

	var progressCb anonymizer.ProgressCallback
	if !cfg.Quiet && !cfg.DryRun {
		pb := newProgressBar(out, 50)
		progressCb = func(current, total int, filename, status string) {
			pb.update(current, total)
		}
	}

	started := time.Now()
	stats, err := anonymizer.ProcessFolder(ctx, acfg, progressCb)
	finished := time.Now()

	if stats != nil && !cfg.Quiet {
		if progressCb != nil && stats.Found > 0 {
			fmt.Fprintln(out)
		}
		printSummary(out, cfg, stats)
	}

	if cfg.ReportFile != "" && stats != nil {
		r := report.Build(runID, cfg.Source, cfg.Target, cfg.DryRun, stats, started, finished)
		if werr := report.WriteFile(cfg.ReportFile, r); werr != nil {
			log.Error().Err(werr).Str("report", cfg.ReportFile).Msg("could not write report")
		}
	}

	if err != nil {
		return stats, fmt.Errorf("processing failed: %w", err)
	}
	return stats, nil
}

// PrintFields writes the de-identification list, one keyword per line.
func PrintFields(out io.Writer) {
	for _, name := range anonymizer.SensitiveFields() {
		fmt.Fprintln(out, name)
	}
}

// printHeader prints the CLI header with configuration
func printHeader(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "DICOM Redactor")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Source:    %s\n", cfg.Source)
	fmt.Fprintf(out, "Target:    %s\n", cfg.Target)
	fmt.Fprintf(out, "Fields:    %d on the de-identification list\n", len(anonymizer.SensitiveFields()))

	var options []string
	options = append(options, "on failure: "+cfg.FailurePolicy)
	if cfg.Resume {
		options = append(options, "Resume")
	}
	if cfg.SniffMagic {
		options = append(options, "Sniff DICM")
	}
	if cfg.DryRun {
		options = append(options, "Dry run")
	}
	fmt.Fprintf(out, "Options:   %s\n", strings.Join(options, ", "))
	fmt.Fprintln(out)
}

// printSummary prints the processing summary
func printSummary(out io.Writer, cfg *config.Config, stats *anonymizer.Stats) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 50))
	if cfg.DryRun {
		fmt.Fprintf(out, "Dry run: %d would be redacted, %d would fail\n", stats.WouldRedact, stats.Failed)
	} else {
		fmt.Fprintf(out, "Complete! %d succeeded, %d failed, %d skipped\n",
			stats.Success, stats.Failed, stats.Skipped)
	}
	for _, fe := range stats.Failures {
		fmt.Fprintf(out, "  FAILED %s\n", fe.Error())
	}
	fmt.Fprintf(out, "Output:    %s\n", cfg.Target)
	if cfg.ReportFile != "" {
		fmt.Fprintf(out, "Report:    %s\n", cfg.ReportFile)
	}
}

// progressBar represents a terminal progress bar
type progressBar struct {
	out   io.Writer
	width int
}

// newProgressBar creates a new progress bar with specified width
func newProgressBar(out io.Writer, width int) *progressBar {
	return &progressBar{out: out, width: width}
}

// update updates the progress bar display
func (pb *progressBar) update(current, total int) {
	if total == 0 {
		return
	}

	percent := float64(current) / float64(total)
	filled := min(int(percent*float64(pb.width)), pb.width)

	bar := strings.Repeat("#", filled) + strings.Repeat("-", pb.width-filled)
	fmt.Fprintf(pb.out, "\r[%s] %3.0f%%  (%d/%d)", bar, percent*100, current, total)
}
