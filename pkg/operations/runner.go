package operations

import (
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/fileops"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/link"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/state"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/rs/zerolog"
)

// Files is the file layer operations build on. *fileops.Ops implements it.
type Files interface {
	EnsureDirectory(path string) error
	CopyContents(src, dst string, overwrite bool) error
	BackupFolder(src, backupRoot string) (types.BackupRecord, error)
	RemovePath(path string) error
}

// Options configures a Runner. Zero values pick the platform defaults.
type Options struct {
	Links  link.Strategy
	Files  Files
	Store  state.Store
	Sink   Sink
	Logger *zerolog.Logger
}

// Runner executes operations one at a time and owns the backup record slot
type Runner struct {
	links  link.Strategy
	files  Files
	store  state.Store
	sink   Sink
	logger zerolog.Logger

	busy atomic.Bool

	mu     sync.Mutex
	backup *types.BackupRecord
}

// NewRunner creates a Runner
func NewRunner(opts Options) *Runner {
	r := &Runner{
		links: opts.Links,
		files: opts.Files,
		store: opts.Store,
		sink:  opts.Sink,
	}

	if r.links == nil {
		r.links = link.ForPlatform()
	}
	if r.files == nil {
		r.files = fileops.New(filesystem.NewOS(), r.links)
	}
	if r.store == nil {
		r.store = state.NewMemoryStore()
	}
	if opts.Logger != nil {
		r.logger = *opts.Logger
	} else {
		r.logger = logging.GetLogger("operations")
	}

	return r
}

// LinkStrategy returns the strategy links are created with
func (r *Runner) LinkStrategy() link.Strategy {
	return r.links
}

// LoadBackup fills the slot from the store
func (r *Runner) LoadBackup() error {
	record, ok, err := r.store.Load()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.backup = &record
	} else {
		r.backup = nil
	}
	return nil
}

// HasBackup reports whether a backup record is known
func (r *Runner) HasBackup() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backup != nil
}

// CurrentBackup returns a copy of the record in the slot
func (r *Runner) CurrentBackup() (types.BackupRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backup == nil {
		return types.BackupRecord{}, false
	}
	return *r.backup, true
}

// Busy reports whether an operation is in flight
func (r *Runner) Busy() bool {
	return r.busy.Load()
}

// setBackup replaces the slot. The previous backup folder stays on disk.
func (r *Runner) setBackup(j *journal, record types.BackupRecord) {
	r.mu.Lock()
	r.backup = &record
	r.mu.Unlock()

	if err := r.store.Save(record); err != nil {
		j.add(TagWarning, "Backup record could not be saved, it will be forgotten when savelink exits: %s", errors.Message(err))
	}
}

func (r *Runner) clearBackup(j *journal) {
	r.mu.Lock()
	r.backup = nil
	r.mu.Unlock()

	if err := r.store.Clear(); err != nil {
		j.add(TagWarning, "Backup record could not be cleared: %s", errors.Message(err))
	}
}

// acquire claims the runner for one operation
func (r *Runner) acquire() bool {
	return r.busy.CompareAndSwap(false, true)
}

func (r *Runner) release() {
	r.busy.Store(false)
}

func errBusy() error {
	return errors.New(errors.ErrPrecondition, "another operation is already running")
}

// normalizeAll normalizes inputs in order, stopping at the first bad one
func normalizeAll(inputs ...string) ([]string, error) {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		p, err := paths.Normalize(in)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// checkSourceDirectory requires source to be a real directory
func checkSourceDirectory(source string) error {
	st, err := paths.Classify(source)
	if err != nil {
		return err
	}

	switch st.Kind {
	case types.StateRegularDirectory:
		return nil
	case types.StateLink:
		return errors.Newf(errors.ErrPrecondition,
			"%s is already linked. Use Restore first.", source).
			WithDetail("target", st.Target)
	case types.StateMissing:
		return errors.Newf(errors.ErrPrecondition, "save folder %s does not exist", source)
	default:
		return errors.Newf(errors.ErrPrecondition, "save folder %s is not a directory", source)
	}
}

// checkOverlap rejects a cloud target inside the source or the other way round
func checkOverlap(source, cloudTarget string) error {
	if paths.IsWithin(source, cloudTarget) || paths.IsWithin(cloudTarget, source) {
		return errors.Newf(errors.ErrPrecondition,
			"cloud folder %s and save folder %s must not contain each other", cloudTarget, source)
	}
	return nil
}
