package operations

import (
	"fmt"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Restore replaces the link at source with a real directory filled from the
// backup record. Without a usable record the link is still removed and the
// result carries a warning; nothing is made up to fill source.
func (r *Runner) Restore(source string) types.OperationResult {
	j := newJournal(types.OperationRestore, r.sink, r.logger)
	if !r.acquire() {
		return j.fail(errBusy())
	}
	defer r.release()
	defer logging.LogOperationStart(r.logger, "restore")()

	j.add(TagRestore, "Starting restore...")

	src, err := paths.Normalize(source)
	if err != nil {
		return j.fail(err)
	}

	st, err := paths.Classify(src)
	if err != nil {
		return j.fail(err)
	}
	if !st.IsLink() {
		return j.fail(errors.Newf(errors.ErrPrecondition, "%s is not a link, nothing to restore", src))
	}

	record, ok := r.usableBackup(j, src)

	j.add(TagRestore, "Removing %s at %s...", r.links.Name(), src)
	if err := r.links.RemoveLink(src); err != nil {
		return j.fail(err)
	}

	if !ok {
		j.add(TagWarning, "No backup available to restore. %s was left empty; copy your saves back from the cloud folder %s if needed.", src, st.Target)
		return j.succeed("Link removed.", "Link removed. No backup was available to restore.")
	}

	j.add(TagRestore, "Restoring from %s...", record.BackupPath)
	if err := r.files.EnsureDirectory(src); err != nil {
		return j.fail(err)
	}
	if err := r.files.CopyContents(record.BackupPath, src, true); err != nil {
		return j.failWith(err, fmt.Sprintf("%s. The backup is still available at %s.", errors.Message(err), record.BackupPath))
	}

	r.clearBackup(j)
	return j.succeed("Restore complete!", "Backup restored successfully!")
}

// usableBackup returns the slot's record if it belongs to source and its
// folder is still on disk
func (r *Runner) usableBackup(j *journal, source string) (types.BackupRecord, bool) {
	record, ok := r.CurrentBackup()
	if !ok {
		return types.BackupRecord{}, false
	}

	if record.OriginalSource != source {
		j.add(TagWarning, "The known backup was taken from %s, not from %s; it will not be used.", record.OriginalSource, source)
		return types.BackupRecord{}, false
	}

	if !paths.IsDir(record.BackupPath) {
		j.add(TagWarning, "Backup folder %s no longer exists.", record.BackupPath)
		r.clearBackup(j)
		return types.BackupRecord{}, false
	}

	return record, true
}
