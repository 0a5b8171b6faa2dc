// Package store provides the default file-backed VersionStore. State
// lives in a small JSON document under the user config directory, one
// file per host application.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hervehildenbrand/whatsnew/pkg/whatsnew"
)

// stateFileName is the fixed namespace key for presented-version state.
const stateFileName = "presented.json"

// state is the on-disk document.
type state struct {
	Presented []whatsnew.Version `json:"presented"`
}

// FileStore persists the presented-version set to a JSON file. It
// implements whatsnew.VersionStore. The file is loaded once at
// construction; Save rewrites it atomically.
type FileStore struct {
	path      string
	presented []whatsnew.Version
	log       zerolog.Logger
}

// New returns a FileStore for the named application, storing state at
// <user config dir>/<app>/presented.json.
func New(app string, log zerolog.Logger) (*FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config dir: %w", err)
	}
	return NewAtPath(filepath.Join(dir, app, stateFileName), log), nil
}

// NewAtPath returns a FileStore backed by an explicit file path. A
// missing file means nothing has been presented; a corrupt file is
// logged and treated the same, so a host app never fails to start over
// release-notes state.
func NewAtPath(path string, log zerolog.Logger) *FileStore {
	s := &FileStore{path: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("cannot read version state")
		}
		return s
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt version state, starting fresh")
		return s
	}
	s.presented = st.Presented
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// PresentedVersions returns a snapshot of the presented set.
func (s *FileStore) PresentedVersions() []whatsnew.Version {
	out := make([]whatsnew.Version, len(s.presented))
	copy(out, s.presented)
	return out
}

// HasPresented reports whether v has been presented before.
func (s *FileStore) HasPresented(v whatsnew.Version) bool {
	for _, p := range s.presented {
		if p == v {
			return true
		}
	}
	return false
}

// Save marks v as presented and rewrites the state file. Saving an
// already-present version is a no-op.
func (s *FileStore) Save(v whatsnew.Version) error {
	if s.HasPresented(v) {
		return nil
	}
	s.presented = append(s.presented, v)
	sort.Slice(s.presented, func(i, j int) bool {
		return s.presented[i].Compare(s.presented[j]) < 0
	})
	return s.write()
}

// write replaces the state file atomically: write to a temp file, sync,
// then rename over the old state.
func (s *FileStore) write() error {
	data, err := json.Marshal(state{Presented: s.presented})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("cannot create state dir: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.path)
}

// Reset removes the state file and clears the in-memory set.
func (s *FileStore) Reset() error {
	s.presented = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
