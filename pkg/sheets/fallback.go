package sheets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	filePrefix = "submissions-"
	fileSuffix = ".jsonl"
	dayLayout  = "2006-01-02"
)

// FallbackWriter appends submissions to one JSON-lines file per calendar
// day. It exists for local development only.
type FallbackWriter struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

type fallbackRecord struct {
	ReceivedAt time.Time              `json:"receivedAt"`
	Data       map[string]interface{} `json:"data"`
}

func NewFallbackWriter(dir string) *FallbackWriter {
	return &FallbackWriter{dir: dir, now: time.Now}
}

// PathFor returns the file used for submissions received on day t.
func (w *FallbackWriter) PathFor(t time.Time) string {
	return filepath.Join(w.dir, filePrefix+t.Format(dayLayout)+fileSuffix)
}

// Append writes payload as one line and returns the file it went to.
func (w *FallbackWriter) Append(payload map[string]interface{}) (string, error) {
	now := w.now()
	line, err := json.Marshal(fallbackRecord{ReceivedAt: now.UTC(), Data: payload})
	if err != nil {
		return "", fmt.Errorf("encode submission: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create submissions dir: %w", err)
	}

	path := w.PathFor(now)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Prune removes daily files older than retention days and returns how
// many were deleted. Files that don't follow the naming scheme are left.
func (w *FallbackWriter) Prune(retention int) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	today := w.now()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -retention)

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		day, err := time.ParseInLocation(dayLayout,
			strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix), today.Location())
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(w.dir, name)); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}
