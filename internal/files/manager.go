package files

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644

	// Extension is appended to every entry file name.
	Extension = ".coach"
)

// Manager centralizes where entries live on disk and how they are read and
// written. It deals in whole files; callers hand it complete text.
type Manager struct {
	basePath string
	maxBytes int
}

// NewManager constructs a Manager rooted at basePath that refuses to read
// files of maxBytes or more.
func NewManager(basePath string, maxBytes int) (*Manager, error) {
	if basePath == "" {
		return nil, errors.New("files: base path is empty")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("files: max bytes must be positive, got %d", maxBytes)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	return &Manager{basePath: abs, maxBytes: maxBytes}, nil
}

// BasePath returns the root directory storing all entries.
func (m *Manager) BasePath() string {
	return m.basePath
}

// EntryPath resolves the file for the day containing t. The file may not exist yet.
func (m *Manager) EntryPath(t time.Time) string {
	yearDir := filepath.Join(m.basePath, fmt.Sprintf("%04d", t.Year()))
	return filepath.Join(yearDir, t.Format("2006-01-02")+Extension)
}

// Read returns the contents of path. Missing files produce an error matching
// os.ErrNotExist.
func (m *Manager) Read(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, int64(m.maxBytes)))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) >= m.maxBytes {
		return "", fmt.Errorf("%s: %w (%d bytes)", path, ErrTooLarge, m.maxBytes)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

// CreateNew writes content to path, failing with ErrExists if path is present.
func (m *Manager) CreateNew(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		return fmt.Errorf("create entry file: %w", err)
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Replace atomically swaps the contents of path for content by writing a
// temporary sibling and renaming it into place.
func (m *Manager) Replace(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	temp, err := os.CreateTemp(dir, "coach-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.WriteString(content); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
