package service

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/yndnr/ota-go/internal/core/domain"
)

// Archive entry names inside credentials.zip.
const (
	TreehubEntry = "treehub.json"
	TufRepoEntry = "tufrepo.url"
)

// CredentialSource parses credentials from an archive path.
type CredentialSource interface {
	Parse(path string) (*domain.Credentials, error)
}

// ArchiveStore reads authentication material from a credentials archive.
type ArchiveStore struct{}

// NewArchiveStore creates an ArchiveStore.
func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{}
}

// Parse reads and validates the treehub.json entry of the archive at path.
func (s *ArchiveStore) Parse(path string) (*domain.Credentials, error) {
	var creds domain.Credentials
	err := readEntry(path, TreehubEntry, func(r io.Reader) error {
		if err := json.NewDecoder(r).Decode(&creds); err != nil {
			return domain.ErrParse.WithDetails(TreehubEntry).WithCause(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := domain.Validate(&creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// RepoURL reads the repository server URL stored in the tufrepo.url entry.
func (s *ArchiveStore) RepoURL(path string) (string, error) {
	var raw string
	err := readEntry(path, TufRepoEntry, func(r io.Reader) error {
		b, err := io.ReadAll(r)
		if err != nil {
			return domain.ErrArchive.WithCause(err)
		}
		raw = strings.TrimSpace(string(b))
		return nil
	})
	if err != nil {
		return "", err
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", domain.ErrParse.WithDetailsf("%s does not hold a URL: %q", TufRepoEntry, raw)
	}
	return raw, nil
}

// readEntry opens the archive, hands the named entry to fn and releases both
// on every return path.
func readEntry(path, name string, fn func(io.Reader) error) error {
	archive, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NotFound("Credentials archive "+path, "Check the path given to `ota init --credentials`.")
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return domain.ErrFilesystem.WithCause(err)
		}
		return domain.ErrArchive.WithDetails(path).WithCause(err)
	}
	defer archive.Close()

	var entry *zip.File
	for _, f := range archive.File {
		if f.Name == name {
			entry = f
			break
		}
	}
	if entry == nil {
		return domain.NotFound(name+" in "+path, "")
	}

	rc, err := entry.Open()
	if err != nil {
		return domain.ErrArchive.WithDetails(name).WithCause(err)
	}
	defer rc.Close()

	return fn(rc)
}
