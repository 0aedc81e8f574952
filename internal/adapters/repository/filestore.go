package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/venuematch/internal/domain/model"
)

const (
	defaultFileMode os.FileMode = 0o644
	defaultDirMode  os.FileMode = 0o755
)

// FileStore keeps each document as a tab-indented JSON file. Writes go to a
// temporary file in the same directory and are renamed over the target, so
// readers only ever see a complete document.
type FileStore struct {
	paths    Paths
	fileMode os.FileMode
	dirMode  os.FileMode
}

// NewFileStore creates a store for the given document paths.
func NewFileStore(paths Paths, opts ...Option) *FileStore {
	s := &FileStore{
		paths:    paths,
		fileMode: defaultFileMode,
		dirMode:  defaultDirMode,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadState implements Store. A missing document reads as empty; when both
// are missing the state does not exist yet.
func (s *FileStore) LoadState(ctx context.Context) (*model.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matched []model.MatchRecord
	foundMatched, err := readJSON(s.paths.Matched, &matched)
	if err != nil {
		return nil, err
	}

	var unmatched []string
	foundUnmatched, err := readJSON(s.paths.Unmatched, &unmatched)
	if err != nil {
		return nil, err
	}

	if !foundMatched && !foundUnmatched {
		return nil, ErrStateNotFound
	}
	if matched == nil {
		matched = []model.MatchRecord{}
	}
	if unmatched == nil {
		unmatched = []string{}
	}
	return &model.State{Matched: matched, Unmatched: unmatched}, nil
}

// SaveMatched implements Store.
func (s *FileStore) SaveMatched(ctx context.Context, matched []model.MatchRecord) error {
	if matched == nil {
		matched = []model.MatchRecord{}
	}
	return s.write(ctx, DocMatched, s.paths.Matched, matched)
}

// SaveUnmatched implements Store.
func (s *FileStore) SaveUnmatched(ctx context.Context, unmatched []string) error {
	if unmatched == nil {
		unmatched = []string{}
	}
	return s.write(ctx, DocUnmatched, s.paths.Unmatched, unmatched)
}

// SaveFinal implements Store.
func (s *FileStore) SaveFinal(ctx context.Context, final []model.FinalVenue) error {
	if final == nil {
		final = []model.FinalVenue{}
	}
	return s.write(ctx, DocFinal, s.paths.Final, final)
}

func readJSON(path string, dst any) (bool, error) {
	if path == "" {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrCorruptState, path, err)
	}
	return true, nil
}

func (s *FileStore) write(ctx context.Context, doc, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, doc, err)
	}
	if path == "" {
		return fmt.Errorf("%w: %s: no path configured", ErrWrite, doc)
	}

	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, doc, err)
	}
	if err := s.replace(path, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, doc, err)
	}
	return nil
}

// replace writes data next to path and renames it into place.
func (s *FileStore) replace(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, s.dirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), s.fileMode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
