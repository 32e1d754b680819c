package fileops

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/google/uuid"
)

// BackupTimeFormat is the timestamp layout used in backup folder names
const BackupTimeFormat = "20060102-150405"

// BackupName returns the folder name for a backup of src stamped with stamp
func BackupName(src, stamp string) string {
	return fmt.Sprintf("%s-backup-%s", filepath.Base(src), stamp)
}

// BackupFolder copies the contents of src into a new timestamped folder
// under backupRoot and returns the record describing it. src is only read.
func (o *Ops) BackupFolder(src, backupRoot string) (types.BackupRecord, error) {
	info, err := o.fs.Stat(src)
	if err != nil {
		return types.BackupRecord{}, errors.Wrapf(err, errors.ErrIO, "cannot back up %s", src)
	}
	if !info.IsDir() {
		return types.BackupRecord{}, errors.Newf(errors.ErrPrecondition, "cannot back up %s: not a directory", src)
	}

	if err := o.EnsureDirectory(backupRoot); err != nil {
		return types.BackupRecord{}, err
	}

	now := o.clock.Now()
	backupPath := filepath.Join(backupRoot, BackupName(src, now.Format(BackupTimeFormat)))
	if _, err := filesystem.Lstat(o.fs, backupPath); err == nil {
		// two backups within the same second
		backupPath = fmt.Sprintf("%s-%s", backupPath, uuid.NewString()[:8])
	}

	if err := o.fs.Mkdir(backupPath, 0755); err != nil {
		return types.BackupRecord{}, errors.Wrapf(err, errors.ErrIO, "failed to create backup folder %s", backupPath)
	}

	if err := o.CopyContents(src, backupPath, true); err != nil {
		return types.BackupRecord{}, err
	}

	record := types.BackupRecord{
		ID:             uuid.NewString(),
		OriginalSource: src,
		BackupPath:     backupPath,
		CreatedAt:      now,
	}

	o.logger.Info().
		Str("id", record.ID).
		Str("source", src).
		Str("backup", backupPath).
		Msg("Backup created")

	return record, nil
}
