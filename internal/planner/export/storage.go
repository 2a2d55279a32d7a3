package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ============================================================
// File Storage
// ============================================================

// Storage кладет артефакты экспорта в каталог root под стандартными именами.
type Storage struct {
	root string
}

func NewStorage(root string) *Storage {
	return &Storage{root: root}
}

func (s *Storage) Root() string {
	return s.root
}

func (s *Storage) Path(ext string, at time.Time) string {
	return filepath.Join(s.root, Filename(ext, at))
}

func (s *Storage) EnsureDir() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("mkdir export dir: %w", err)
	}
	return nil
}

// Save перезаписывает файл за ту же дату.
func (s *Storage) Save(ext string, at time.Time, data []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}
	target := s.Path(ext, at)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	return target, nil
}
