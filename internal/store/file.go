package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/stepupp/account-server-go/internal/errors"
	"github.com/stepupp/account-server-go/internal/model"
)

const (
	pendingUsersFile = "pending-users.json"
	usersFile        = "users.json"
)

// FileStore persists each collection as a JSON file under a data
// directory. A missing file reads as an empty collection; any other I/O
// failure surfaces as a storage error.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadPending(ctx context.Context) ([]model.PendingUser, error) {
	var users []model.PendingUser
	if err := s.readFile(pendingUsersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FileStore) SavePending(ctx context.Context, users []model.PendingUser) error {
	return s.writeFile(pendingUsersFile, users)
}

func (s *FileStore) LoadUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.readFile(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *FileStore) SaveUsers(ctx context.Context, users []model.User) error {
	return s.writeFile(usersFile, users)
}

func (s *FileStore) readFile(name string, dest any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return apperrors.Storage(err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return apperrors.Storage(fmt.Errorf("decode %s: %w", name, err))
	}
	return nil
}

// writeFile rewrites the whole snapshot. The write goes to a temp file
// first and is renamed into place so a crash mid-write never leaves a
// truncated collection.
func (s *FileStore) writeFile(name string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return apperrors.Storage(fmt.Errorf("encode %s: %w", name, err))
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return apperrors.Storage(err)
	}

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.Storage(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.Storage(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return apperrors.Storage(err)
	}
	return nil
}
