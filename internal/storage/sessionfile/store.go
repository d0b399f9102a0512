// Package sessionfile persists one YAML document per session id. The files
// are the long-lived owner of session state; the in-memory store is only a
// cache in front of them. Round-trips are exact, including element order.
package sessionfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/researchbot/internal/core"
	"github.com/sandevgo/researchbot/pkg/log"
	"gopkg.in/yaml.v3"
)

type FileStore struct {
	root string
}

var _ core.SessionStorage = (*FileStore)(nil)

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FileStore{root: root}, nil
}

func (s *FileStore) Save(ctx context.Context, id string, record *core.SessionRecord) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return core.NewPersistenceError("save", id, fmt.Errorf("marshal: %w", err))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return core.NewPersistenceError("save", id, err)
	}

	log.FromCtx(ctx).Debug().Str("session", id).Int("bytes", len(data)).Msg("session persisted")
	return nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*core.SessionRecord, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNotFound
		}
		return nil, core.NewPersistenceError("load", id, err)
	}

	var record core.SessionRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, core.NewPersistenceError("load", id, fmt.Errorf("unmarshal: %w", err))
	}

	return &record, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return core.NewPersistenceError("delete", id, err)
	}
	return nil
}

// path maps a session id onto a file under the root. Ids that could escape
// the root are rejected.
func (s *FileStore) path(id string) (string, error) {
	if id == "" {
		return "", core.NewValidationError("session_id", "must not be empty")
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return "", core.NewValidationError("session_id", "must not contain path separators")
	}
	return filepath.Join(s.root, id+".yaml"), nil
}
