package operations

import (
	"fmt"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Link moves source into cloudTarget and leaves a link behind.
//
// The cloud copy and the backup are both made before source is removed, so
// any failure up to and including the backup leaves source intact. The only
// state needing manual repair is a link creation failure after removal; the
// failed result then names both places the saves can be recovered from.
func (r *Runner) Link(source, cloudTarget, backupRoot string) types.OperationResult {
	j := newJournal(types.OperationLink, r.sink, r.logger)
	if !r.acquire() {
		return j.fail(errBusy())
	}
	defer r.release()
	defer logging.LogOperationStart(r.logger, "link")()

	j.add(TagLink, "Starting link setup...")

	p, err := normalizeAll(source, cloudTarget, backupRoot)
	if err != nil {
		return j.fail(err)
	}
	src, dst, root := p[0], p[1], p[2]

	if err := checkSourceDirectory(src); err != nil {
		return j.fail(err)
	}
	if err := checkOverlap(src, dst); err != nil {
		return j.fail(err)
	}
	if paths.IsWithin(src, root) {
		return j.fail(errors.Newf(errors.ErrPrecondition,
			"backup folder %s must not be inside the save folder %s", root, src))
	}

	j.add(TagLink, "Preparing cloud folder %s", dst)
	if err := r.files.EnsureDirectory(dst); err != nil {
		return j.fail(err)
	}

	j.add(TagLink, "Copying saves to cloud folder...")
	if err := r.files.CopyContents(src, dst, true); err != nil {
		return j.fail(err)
	}

	j.add(TagLink, "Creating backup...")
	record, err := r.files.BackupFolder(src, root)
	if err != nil {
		return j.fail(err)
	}
	r.setBackup(j, record)
	j.add(TagBackup, "Created: %s", record.BackupPath)

	j.add(TagLink, "Removing original saves folder...")
	if err := r.files.RemovePath(src); err != nil {
		return j.failWith(err, fmt.Sprintf(
			"%s. Complete copies are in the cloud folder %s and the backup %s.",
			errors.Message(err), dst, record.BackupPath))
	}

	j.add(TagLink, "Creating %s %s -> %s...", r.links.Name(), src, dst)
	if err := r.links.CreateLink(src, dst); err != nil {
		j.add(TagWarning, "%s no longer exists: it is neither the original folder nor a link", src)
		return j.failWith(err, fmt.Sprintf(
			"Link creation failed after the original folder was removed: %s. "+
				"%s now does not exist. Recover your saves from the cloud folder %s or the backup %s.",
			errors.Message(err), src, dst, record.BackupPath))
	}

	return j.succeed("Link created successfully! Saves are now synced via cloud.", "Link created successfully!")
}
