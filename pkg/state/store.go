package state

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// stateVersion is written to the state file for future format changes
const stateVersion = 1

// Store persists the single backup record slot
type Store interface {
	Load() (types.BackupRecord, bool, error)
	Save(record types.BackupRecord) error
	Clear() error
}

type stateFile struct {
	Version int                 `toml:"version"`
	Backup  *types.BackupRecord `toml:"backup,omitempty"`
}

// FileStore keeps the record in a TOML file
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a store backed by the file at path on fs
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the state file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted record. A missing file is not an error.
func (s *FileStore) Load() (types.BackupRecord, bool, error) {
	logger := logging.GetLogger("state.store")

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.BackupRecord{}, false, nil
		}
		return types.BackupRecord{}, false, errors.Wrapf(err, errors.ErrIO, "failed to read state file %s", s.path)
	}

	var sf stateFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return types.BackupRecord{}, false, errors.Wrapf(err, errors.ErrIO, "failed to parse state file %s", s.path)
	}

	if sf.Backup == nil || sf.Backup.BackupPath == "" {
		return types.BackupRecord{}, false, nil
	}

	logger.Debug().
		Str("id", sf.Backup.ID).
		Str("backup", sf.Backup.BackupPath).
		Msg("Backup record loaded")

	return *sf.Backup, true, nil
}

// Save replaces the persisted record
func (s *FileStore) Save(record types.BackupRecord) error {
	data, err := toml.Marshal(stateFile{Version: stateVersion, Backup: &record})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode backup record")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to create state directory for %s", s.path)
	}

	// write then rename so a crash never leaves a half written record
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to write state file %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "failed to replace state file %s", s.path)
	}
	return nil
}

// Clear forgets the persisted record
func (s *FileStore) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrIO, "failed to clear state file %s", s.path)
	}
	return nil
}

// MemoryStore keeps the record in process memory only
type MemoryStore struct {
	mu     sync.Mutex
	record *types.BackupRecord
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (types.BackupRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return types.BackupRecord{}, false, nil
	}
	return *m.record, true, nil
}

func (m *MemoryStore) Save(record types.BackupRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = &record
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = nil
	return nil
}
