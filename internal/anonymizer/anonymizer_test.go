package anonymizer_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicom-redactor/internal/anonymizer"
	dcm "dicom-redactor/internal/dicom"
	"dicom-redactor/internal/dicom/dicomtest"
	"dicom-redactor/internal/progress"
)

func newConfig(src, dst string) anonymizer.Config {
	return anonymizer.Config{
		SourceFolder:  src,
		TargetFolder:  dst,
		Workers:       2,
		FailurePolicy: anonymizer.FailContinue,
		Logger:        zerolog.Nop(),
	}
}

// outputs lists the DICOM files written to dir.
func outputs(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".dcm" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func assertRedacted(t *testing.T, path string) {
	t.Helper()
	ds, err := dcm.ReadDicom(path)
	require.NoError(t, err)
	for _, kw := range ds.Keywords() {
		assert.False(t, anonymizer.IsSensitive(kw), "%s still carries %s", path, kw)
	}
	assert.Equal(t, "CT", ds.GetModality())
}

func TestProcessFolderBatchWithCorruptFile(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	dicomtest.WriteFile(t, filepath.Join(src, "one.dcm"), dicomtest.Patient(t)...)
	dicomtest.WriteFile(t, filepath.Join(src, "series", "two.dcm"), dicomtest.Patient(t)...)
	dicomtest.WriteCorrupt(t, filepath.Join(src, "series", "corrupt.dcm"))

	var statuses []string
	stats, err := anonymizer.ProcessFolder(context.Background(), newConfig(src, dst),
		func(current, total int, filename, status string) {
			assert.Equal(t, 3, total)
			statuses = append(statuses, filename+":"+status)
		})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Found)
	assert.Equal(t, 2, stats.Success)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, stats.Failures, 1)
	assert.Equal(t, filepath.Join(src, "series", "corrupt.dcm"), stats.Failures[0].Path)
	assert.ErrorIs(t, stats.Failures[0], dcm.ErrParse)
	assert.ElementsMatch(t, []string{"one.dcm:success", "two.dcm:success", "corrupt.dcm:failed"}, statuses)

	assert.Equal(t, []string{"one.dcm", "two.dcm"}, outputs(t, dst))
	assertRedacted(t, filepath.Join(dst, "one.dcm"))
	assertRedacted(t, filepath.Join(dst, "two.dcm"))

	logData, err := os.ReadFile(filepath.Join(dst, progress.ErrorLogName))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "corrupt.dcm")
}

func TestProcessFolderAbortPolicy(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	dicomtest.WriteCorrupt(t, filepath.Join(src, "a-corrupt.dcm"))
	dicomtest.WriteFile(t, filepath.Join(src, "b.dcm"), dicomtest.Patient(t)...)

	cfg := newConfig(src, dst)
	cfg.Workers = 1
	cfg.FailurePolicy = anonymizer.FailAbort

	stats, err := anonymizer.ProcessFolder(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dcm.ErrParse)
	assert.Contains(t, err.Error(), "a-corrupt.dcm")

	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, stats.Found, stats.Success+stats.Failed+stats.Skipped)
	assert.NotContains(t, outputs(t, dst), "a-corrupt.dcm")
}

func TestProcessFolderNameCollision(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	dicomtest.WriteFile(t, filepath.Join(src, "a", "img.dcm"), dicomtest.Patient(t)...)
	dicomtest.WriteFile(t, filepath.Join(src, "b", "img.dcm"), dicomtest.Patient(t)...)

	stats, err := anonymizer.ProcessFolder(context.Background(), newConfig(src, dst), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Success)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, stats.Failures, 1)
	assert.Equal(t, filepath.Join(src, "b", "img.dcm"), stats.Failures[0].Path)
	assert.ErrorIs(t, stats.Failures[0], anonymizer.ErrNameCollision)
	assert.Equal(t, []string{"img.dcm"}, outputs(t, dst))
}

func TestProcessFolderRemovesStaleOutputOnFailure(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	dicomtest.WriteCorrupt(t, filepath.Join(src, "scan.dcm"))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "scan.dcm"), []byte("stale"), 0644))

	stats, err := anonymizer.ProcessFolder(context.Background(), newConfig(src, dst), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Failed)
	assert.Empty(t, outputs(t, dst))
}

func TestProcessFolderResume(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	dicomtest.WriteFile(t, filepath.Join(src, "a.dcm"), dicomtest.Patient(t)...)
	dicomtest.WriteFile(t, filepath.Join(src, "b.dcm"), dicomtest.Patient(t)...)

	cfg := newConfig(src, dst)
	cfg.Resume = true

	stats, err := anonymizer.ProcessFolder(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Success)

	// Losing an output forces that file to be redone.
	require.NoError(t, os.Remove(filepath.Join(dst, "b.dcm")))

	stats, err = anonymizer.ProcessFolder(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Success)
	assert.Equal(t, []string{"a.dcm", "b.dcm"}, outputs(t, dst))
}

func TestProcessFolderTargetInsideSource(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(src, "clean")
	dicomtest.WriteFile(t, filepath.Join(src, "a.dcm"), dicomtest.Patient(t)...)

	for i := 0; i < 2; i++ {
		stats, err := anonymizer.ProcessFolder(context.Background(), newConfig(src, dst), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Found)
		assert.Equal(t, 1, stats.Success)
	}
}

func TestProcessFolderDryRun(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	dicomtest.WriteFile(t, filepath.Join(src, "a.dcm"), dicomtest.Patient(t)...)
	dicomtest.WriteCorrupt(t, filepath.Join(src, "bad.dcm"))

	cfg := newConfig(src, dst)
	cfg.DryRun = true

	stats, err := anonymizer.ProcessFolder(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.WouldRedact)
	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, stats.Success)
	assert.Zero(t, stats.Skipped)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the target")
}

func TestProcessFolderCancelled(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	dicomtest.WriteFile(t, filepath.Join(src, "a.dcm"), dicomtest.Patient(t)...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := anonymizer.ProcessFolder(ctx, newConfig(src, dst), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Skipped)
	assert.Empty(t, outputs(t, dst))
}

func TestProcessFolderEmpty(t *testing.T) {
	stats, err := anonymizer.ProcessFolder(context.Background(), newConfig(t.TempDir(), t.TempDir()), nil)
	require.NoError(t, err)
	assert.Equal(t, &anonymizer.Stats{}, stats)
}
