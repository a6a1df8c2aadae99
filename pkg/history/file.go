package history

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	errs "github.com/matzehuels/highway/pkg/errors"
)

// FileStore is a file-based report store for CLI use.
// Reports are stored as indented JSON files named by ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, defaults to ~/.local/share/highway/reports/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "highway", "reports")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) reportPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, r *Report) error {
	if err := errs.ValidateReportID(r.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(s.reportPath(r.ID), data, 0600); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Report, error) {
	if err := errs.ValidateReportID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := readReport(s.reportPath(id))
	if os.IsNotExist(err) {
		return nil, errs.New(errs.ErrCodeNotFound, "report %s not found", id)
	}
	return r, err
}

func (s *FileStore) List(ctx context.Context, limit int) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read report dir: %w", err)
	}

	var reports []*Report
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		r, err := readReport(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		reports = append(reports, r)
	}

	slices.SortFunc(reports, func(a, b *Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := limitOrDefault(limit); len(reports) > n {
		reports = reports[:n]
	}
	return reports, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errs.ValidateReportID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.reportPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove report file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for report files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func readReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

var _ Store = (*FileStore)(nil)

// NullStore discards reports.
type NullStore struct{}

func (NullStore) Save(context.Context, *Report) error { return nil }

func (NullStore) Get(_ context.Context, id string) (*Report, error) {
	return nil, errs.New(errs.ErrCodeNotFound, "report %s not found (history disabled)", id)
}

func (NullStore) List(context.Context, int) ([]*Report, error) { return nil, nil }
func (NullStore) Delete(context.Context, string) error          { return nil }
func (NullStore) Close() error                                  { return nil }

var _ Store = NullStore{}
