package operations

import (
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/types"
)

// Migrate copies the contents of source into cloudTarget. source is left
// exactly as it was: no link, no removal.
func (r *Runner) Migrate(source, cloudTarget string) types.OperationResult {
	j := newJournal(types.OperationMigrate, r.sink, r.logger)
	if !r.acquire() {
		return j.fail(errBusy())
	}
	defer r.release()
	defer logging.LogOperationStart(r.logger, "migrate")()

	j.add(TagMigrate, "Starting migration to cloud...")

	p, err := normalizeAll(source, cloudTarget)
	if err != nil {
		return j.fail(err)
	}
	src, dst := p[0], p[1]

	if err := checkSourceDirectory(src); err != nil {
		return j.fail(err)
	}
	if err := checkOverlap(src, dst); err != nil {
		return j.fail(err)
	}

	j.add(TagMigrate, "Preparing cloud folder %s", dst)
	if err := r.files.EnsureDirectory(dst); err != nil {
		return j.fail(err)
	}

	j.add(TagMigrate, "Copying saves from %s to cloud folder...", src)
	if err := r.files.CopyContents(src, dst, true); err != nil {
		return j.fail(err)
	}

	return j.succeed("Migration complete! Saves copied to cloud.", "Saves migrated to cloud successfully!")
}
