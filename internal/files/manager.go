package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPermissions = 0o755

	databaseFileName = "effortum.db"
	backupsDirName   = "backups"
)

// Manager centralizes where the database and backup files live on disk.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If
// basePath is empty, it falls back to ~/.effortum (or another location
// determined by ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing the database and backups.
func (m *Manager) BasePath() string {
	return m.basePath
}

// DatabasePath resolves the absolute path of the sqlite database file. The
// file may not exist yet; the store creates it on first open.
func (m *Manager) DatabasePath() string {
	return filepath.Join(m.basePath, databaseFileName)
}

// BackupsPath resolves the directory backup documents are written to.
func (m *Manager) BackupsPath() string {
	return filepath.Join(m.basePath, backupsDirName)
}

// EnsureDatabaseDir guarantees the directory tree for the database exists and
// returns the database path.
func (m *Manager) EnsureDatabaseDir() (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return "", fmt.Errorf("create directories: %w", err)
	}
	return m.DatabasePath(), nil
}

// EnsureBackupsDir guarantees the backups directory exists and returns it.
func (m *Manager) EnsureBackupsDir() (string, error) {
	if m == nil {
		return "", errors.New("files.Manager is nil")
	}
	dir := m.BackupsPath()
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("create backups directory: %w", err)
	}
	return dir, nil
}
