package anonymizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	dcm "dicom-redactor/internal/dicom"
	"dicom-redactor/internal/progress"
)

// FailurePolicy decides what happens to a batch when one file fails.
type FailurePolicy string

const (
	// FailContinue records the failure and keeps processing the other files.
	FailContinue FailurePolicy = "continue"
	// FailAbort stops the batch at the first failure.
	FailAbort FailurePolicy = "abort"
)

// ErrNameCollision is returned for an input whose base name was already
// claimed by another input in the same batch.
var ErrNameCollision = errors.New("output name collision")

// Config holds the batch configuration
type Config struct {
	SourceFolder  string
	TargetFolder  string
	Workers       int
	FailurePolicy FailurePolicy
	Finder        dcm.FinderOptions
	Resume        bool
	DryRun        bool
	Logger        zerolog.Logger
}

// FileError is a failure tied to one input file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Stats holds processing statistics. WouldRedact is only set by dry runs,
// which never count files under Success or Skipped.
type Stats struct {
	Found       int
	Success     int
	Failed      int
	Skipped     int
	WouldRedact int
	Failures    []*FileError
}

// ProgressCallback is called during processing to report progress
type ProgressCallback func(current, total int, filename, status string)

type job struct {
	input  string
	output string
	err    error
}

// planOutputs maps every input to <target>/<base name>. Later inputs whose
// base name is already taken get ErrNameCollision.
func planOutputs(files []string, target string) []job {
	claimed := make(map[string]string, len(files))
	jobs := make([]job, 0, len(files))

	for _, f := range files {
		base := filepath.Base(f)
		key := strings.ToLower(base)
		j := job{input: f, output: filepath.Join(target, base)}
		if first, ok := claimed[key]; ok {
			j.err = fmt.Errorf("%w: %s is already written from %s", ErrNameCollision, base, first)
		} else {
			claimed[key] = f
		}
		jobs = append(jobs, j)
	}

	return jobs
}

// ProcessFolder redacts every DICOM file under cfg.SourceFolder into cfg.TargetFolder.
//
// With FailContinue the returned error is nil even if files failed; inspect
// Stats.Failed. With FailAbort the first failure cancels the batch and is returned.
func ProcessFolder(ctx context.Context, cfg Config, progressCb ProgressCallback) (*Stats, error) {
	log := cfg.Logger

	finder := cfg.Finder
	finder.SkipDirs = append(append([]string(nil), finder.SkipDirs...), cfg.TargetFolder)

	files, err := dcm.FindDicomFiles(cfg.SourceFolder, finder)
	if err != nil {
		return nil, fmt.Errorf("could not find DICOM files: %w", err)
	}

	if len(files) == 0 {
		log.Info().Str("source", cfg.SourceFolder).Msg("no DICOM files found")
		return &Stats{}, nil
	}

	log.Info().Int("files", len(files)).Str("source", cfg.SourceFolder).Msg("found DICOM files")

	jobs := planOutputs(files, cfg.TargetFolder)

	if cfg.DryRun {
		return dryRun(ctx, jobs, log)
	}

	if err := os.MkdirAll(cfg.TargetFolder, 0755); err != nil {
		return nil, fmt.Errorf("could not create target folder: %w", err)
	}

	tracker := progress.NewTracker(filepath.Join(cfg.TargetFolder, progress.FileName), log)
	errorLogger, err := progress.NewErrorLogger(filepath.Join(cfg.TargetFolder, progress.ErrorLogName))
	if err != nil {
		return nil, fmt.Errorf("could not create error logger: %w", err)
	}
	defer errorLogger.Close()

	if cfg.Resume {
		tracker.ClearFailed()
		done, _ := tracker.GetStats()
		log.Info().Int("previously_redacted", done).Msg("resuming")
	}

	b := &batch{
		cfg:         cfg,
		log:         log,
		tracker:     tracker,
		errorLogger: errorLogger,
		progressCb:  progressCb,
		total:       len(jobs),
		stats:       &Stats{Found: len(jobs)},
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			return b.run(gctx, j)
		})
	}
	waitErr := g.Wait()

	stats := b.stats
	// Files never started because the batch stopped early.
	stats.Skipped += stats.Found - stats.Success - stats.Failed - stats.Skipped

	log.Info().
		Int("success", stats.Success).
		Int("failed", stats.Failed).
		Int("skipped", stats.Skipped).
		Int("errors_logged", errorLogger.ErrorCount()).
		Str("errors", errorLogger.Summary()).
		Msg("batch complete")

	if waitErr != nil {
		return stats, fmt.Errorf("batch aborted: %w", multierr.Combine(b.causes(waitErr)...))
	}
	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("batch cancelled: %w", err)
	}

	return stats, nil
}

type batch struct {
	cfg         Config
	log         zerolog.Logger
	tracker     *progress.Tracker
	errorLogger *progress.ErrorLogger
	progressCb  ProgressCallback

	mu    sync.Mutex
	index int
	total int
	stats *Stats
}

func (b *batch) run(ctx context.Context, j job) error {
	// Cancellation is honoured between files only.
	if ctx.Err() != nil {
		return nil
	}

	name := filepath.Base(j.input)

	if j.err != nil {
		return b.fail(j, j.err)
	}

	if b.cfg.Resume && b.tracker.IsProcessed(j.input) {
		b.mu.Lock()
		b.stats.Skipped++
		b.report(name, "skipped")
		b.mu.Unlock()
		return nil
	}

	res, err := RedactFile(j.input, j.output)
	if err != nil {
		// Drop a same-named output left over from an earlier run.
		if rmErr := os.Remove(j.output); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = multierr.Append(err, rmErr)
		}
		return b.fail(j, err)
	}

	b.tracker.MarkSuccess(j.input, j.output)

	b.mu.Lock()
	b.stats.Success++
	b.report(name, "success")
	b.mu.Unlock()

	b.log.Debug().
		Str("file", j.input).
		Str("output", j.output).
		Str("modality", res.Modality).
		Str("transfer_syntax", res.TransferSyntax).
		Strs("removed", res.Removed).
		Msg("redacted")
	return nil
}

func (b *batch) fail(j job, err error) error {
	fe := &FileError{Path: j.input, Err: err}

	b.tracker.MarkError(j.input, err.Error())
	b.errorLogger.Log(j.input, err)
	b.log.Error().Str("file", j.input).Err(err).Msg("could not redact file")

	b.mu.Lock()
	b.stats.Failed++
	b.stats.Failures = append(b.stats.Failures, fe)
	b.report(filepath.Base(j.input), "failed")
	b.mu.Unlock()

	if b.cfg.FailurePolicy == FailAbort {
		return fe
	}
	return nil
}

// report must be called with b.mu held.
func (b *batch) report(name, status string) {
	b.index++
	if b.progressCb != nil {
		b.progressCb(b.index, b.total, name, status)
	}
}

// causes returns every failure recorded before the batch stopped, with the
// error that stopped it first.
func (b *batch) causes(first error) []error {
	b.mu.Lock()
	defer b.mu.Unlock()

	errs := []error{first}
	for _, fe := range b.stats.Failures {
		if fe != first {
			errs = append(errs, fe)
		}
	}
	return errs
}

// dryRun parses every file metadata-only and logs what would be removed.
func dryRun(ctx context.Context, jobs []job, log zerolog.Logger) (*Stats, error) {
	stats := &Stats{Found: len(jobs)}

	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("dry run cancelled: %w", err)
		}

		if j.err != nil {
			stats.Failed++
			stats.Failures = append(stats.Failures, &FileError{Path: j.input, Err: j.err})
			log.Warn().Str("file", j.input).Err(j.err).Msg("would fail")
			continue
		}

		fields, err := PreviewFile(j.input)
		if err != nil {
			stats.Failed++
			stats.Failures = append(stats.Failures, &FileError{Path: j.input, Err: err})
			log.Warn().Str("file", j.input).Err(err).Msg("would fail")
			continue
		}

		stats.WouldRedact++
		log.Info().
			Str("file", j.input).
			Str("output", j.output).
			Strs("fields", fields).
			Msg("would redact")
	}

	return stats, nil
}
