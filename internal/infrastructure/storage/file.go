// Package storage persists the client session snapshot between process runs.
// It is the Go-side stand-in for the browser's localStorage.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

// stateFile is the on-disk layout. All keys live in one document so a write
// replaces the whole snapshot atomically.
type stateFile struct {
	Token                string             `json:"token,omitempty"`
	User                 *domain.UserRecord `json:"user,omitempty"`
	LastVisitedAdminPath string             `json:"lastVisitedAdminPath,omitempty"`
}

// FileStore is a file-backed SessionStorage. Writes go through a temp file
// and rename so a crash mid-write never leaves a torn snapshot.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at path. An empty path resolves to
// $HOME/.svcdesk/state.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state path: %w", err)
		}
		path = filepath.Join(home, ".svcdesk", "state.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) SaveSession(token string, user *domain.UserRecord) error {
	st, err := f.read()
	if err != nil {
		return err
	}
	st.Token = token
	st.User = user
	return f.write(st)
}

func (f *FileStore) LoadSession() (string, *domain.UserRecord, error) {
	st, err := f.read()
	if err != nil {
		return "", nil, err
	}
	return st.Token, st.User, nil
}

func (f *FileStore) ClearSession() error {
	// Clearing drops the last visited admin path too, matching logout.
	return f.write(stateFile{})
}

func (f *FileStore) SaveLastAdminPath(path string) error {
	st, err := f.read()
	if err != nil {
		return err
	}
	st.LastVisitedAdminPath = path
	return f.write(st)
}

func (f *FileStore) LastAdminPath() (string, error) {
	st, err := f.read()
	if err != nil {
		return "", err
	}
	return st.LastVisitedAdminPath, nil
}

func (f *FileStore) read() (stateFile, error) {
	var st stateFile
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt snapshot is treated as empty rather than fatal; the
		// worst outcome is a fresh login.
		return stateFile{}, nil
	}
	return st, nil
}

func (f *FileStore) write(st stateFile) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
