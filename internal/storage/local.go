package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BackupDir is the subdirectory ledger exports are archived under
const BackupDir = "backups"

// LocalStorage keeps archived exports on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveBackup writes data under backups/YYYY/MM and returns its relative path
func (s *LocalStorage) SaveBackup(data []byte, ext string, at time.Time) (string, error) {
	dir := filepath.Join(s.basePath, BackupDir, at.Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filename := fmt.Sprintf("cabinet-%s-%s%s", at.Format("20060102-150405"), uuid.NewString()[:8], ext)
	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// Backups lists archived exports, newest first
func (s *LocalStorage) Backups() ([]string, error) {
	root := filepath.Join(s.basePath, BackupDir)
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), "cabinet-") {
			return nil
		}
		rel, _ := filepath.Rel(s.basePath, path)
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

// Read returns the contents of a stored file
func (s *LocalStorage) Read(relativePath string) ([]byte, error) {
	f, err := s.Open(relativePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxFileSize()))
}

// Open returns a stored file for reading
func (s *LocalStorage) Open(relativePath string) (*os.File, error) {
	return os.Open(s.GetFullPath(relativePath))
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(s.GetFullPath(relativePath))
	return err == nil
}

// GetFullPath returns the absolute path of a stored file. Paths cannot climb out of the base directory.
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, filepath.Clean("/"+relativePath))
}

// MaxFileSize returns the maximum accepted size of an imported snapshot (20MB)
func MaxFileSize() int64 {
	return 20 * 1024 * 1024
}
