package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
)

// FileName is the name of the progress file kept in the target directory.
const FileName = ".redactor-progress.json"

// FileStatus represents the processing status of a file
type FileStatus string

const (
	StatusSuccess FileStatus = "success"
	StatusError   FileStatus = "error"
)

// FileEntry represents a processed file entry
type FileEntry struct {
	Status    FileStatus `json:"status"`
	Hash      string     `json:"hash"`
	Output    string     `json:"output,omitempty"`
	Error     string     `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// TrackerData is the JSON structure for persistence
type TrackerData struct {
	Files   map[string]*FileEntry `json:"files"`
	Updated string                `json:"updated"`
	Summary struct {
		Success int `json:"success"`
		Error   int `json:"error"`
		Total   int `json:"total"`
	} `json:"summary"`
}

// Tracker tracks processing progress for resumable runs.
type Tracker struct {
	mu           sync.Mutex
	progressFile string
	processed    map[string]*FileEntry
	log          zerolog.Logger
}

// NewTracker creates a new progress tracker, loading previous state from
// progressFile when it exists. An empty progressFile keeps state in memory only.
func NewTracker(progressFile string, log zerolog.Logger) *Tracker {
	t := &Tracker{
		progressFile: progressFile,
		processed:    make(map[string]*FileEntry),
		log:          log,
	}

	if progressFile != "" {
		t.load()
	}

	return t
}

func (t *Tracker) load() {
	data, err := os.ReadFile(t.progressFile)
	if err != nil {
		return // File doesn't exist, start fresh
	}

	var trackerData TrackerData
	if err := json.Unmarshal(data, &trackerData); err != nil {
		t.log.Warn().Err(err).Str("file", t.progressFile).Msg("could not load progress file")
		return
	}

	t.processed = trackerData.Files
	if t.processed == nil {
		t.processed = make(map[string]*FileEntry)
	}

	t.log.Debug().
		Int("success", t.countStatus(StatusSuccess)).
		Int("error", t.countStatus(StatusError)).
		Msg("loaded progress")
}

func (t *Tracker) save() {
	if t.progressFile == "" {
		return
	}

	trackerData := TrackerData{
		Files:   t.processed,
		Updated: time.Now().Format(time.RFC3339),
	}
	trackerData.Summary.Success = t.countStatus(StatusSuccess)
	trackerData.Summary.Error = t.countStatus(StatusError)
	trackerData.Summary.Total = len(t.processed)

	data, err := json.MarshalIndent(trackerData, "", "  ")
	if err != nil {
		t.log.Warn().Err(err).Msg("could not marshal progress data")
		return
	}

	if err := os.MkdirAll(filepath.Dir(t.progressFile), 0755); err != nil {
		t.log.Warn().Err(err).Msg("could not create progress directory")
		return
	}
	if err := os.WriteFile(t.progressFile, data, 0644); err != nil {
		t.log.Warn().Err(err).Msg("could not save progress")
	}
}

func (t *Tracker) countStatus(status FileStatus) int {
	count := 0
	for _, entry := range t.processed {
		if entry.Status == status {
			count++
		}
	}
	return count
}

// Fingerprint returns a quick hash of a file's size and modification time,
// or an empty string if the file cannot be stat'ed.
func Fingerprint(filePath string) string {
	info, err := os.Stat(filePath)
	if err != nil {
		return ""
	}
	sum := xxhash.Sum64String(fmt.Sprintf("%d_%d", info.Size(), info.ModTime().UnixNano()))
	return strconv.FormatUint(sum, 16)
}

// IsProcessed checks if a file was redacted successfully before, has not
// changed since, and its output still exists.
func (t *Tracker) IsProcessed(filePath string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.processed[filePath]
	if !ok || entry.Status != StatusSuccess {
		return false
	}

	if entry.Output != "" {
		if _, err := os.Stat(entry.Output); err != nil {
			return false
		}
	}

	return entry.Hash == Fingerprint(filePath)
}

// MarkSuccess marks a file as successfully processed.
func (t *Tracker) MarkSuccess(filePath, outputPath string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed[filePath] = &FileEntry{
		Status:    StatusSuccess,
		Hash:      Fingerprint(filePath),
		Output:    outputPath,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	t.save()
}

// MarkError marks a file as failed.
func (t *Tracker) MarkError(filePath, errorMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed[filePath] = &FileEntry{
		Status:    StatusError,
		Hash:      Fingerprint(filePath),
		Error:     errorMsg,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	t.save()
}

// ClearFailed removes all failed entries for retry.
func (t *Tracker) ClearFailed() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for key, entry := range t.processed {
		if entry.Status == StatusError {
			delete(t.processed, key)
			count++
		}
	}

	if count > 0 {
		t.save()
		t.log.Debug().Int("count", count).Msg("cleared failed entries")
	}

	return count
}

// GetStats returns success and error counts.
func (t *Tracker) GetStats() (success, errors int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countStatus(StatusSuccess), t.countStatus(StatusError)
}
