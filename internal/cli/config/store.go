package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/infra/confloader"
)

// FileName is the configuration file created in the home directory.
const FileName = ".ota.conf"

// DefaultPath returns ~/.ota.conf.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Store loads and saves the configuration record.
type Store interface {
	Load() (*domain.Config, error)
	Save(cfg *domain.Config) error
}

// FileStore keeps the configuration in a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a store at path, or at DefaultPath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the configuration. A missing file is reported as not found with
// a hint to run init.
func (s *FileStore) Load() (*domain.Config, error) {
	var cfg domain.Config
	if err := confloader.NewLoader(confloader.WithConfigFile(s.path)).Load(&cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NotFound("Config file", "Please run `ota init` first.")
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, domain.ErrFilesystem.WithCause(err)
		}
		return nil, domain.ErrParse.WithDetails(s.path).WithCause(err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save replaces the file contents atomically. Concurrent writers do not
// block each other; the last rename wins.
func (s *FileStore) Save(cfg *domain.Config) error {
	data, err := confloader.Encode(s.path, cfg)
	if err != nil {
		return domain.ErrParse.WithCause(err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return domain.ErrFilesystem.WithCause(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.ErrFilesystem.WithCause(err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return domain.ErrFilesystem.WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ErrFilesystem.WithCause(err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return domain.ErrFilesystem.WithCause(err)
	}
	return nil
}
