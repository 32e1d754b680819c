package savelink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Keep game saves in a cloud-synced folder"
	MsgDetectShort     = "Find the game installation and save folder"
	MsgStatusShort     = "Show whether a save folder is linked"
	MsgMigrateShort    = "Copy the save folder into the cloud folder"
	MsgLinkShort       = "Move the save folder to the cloud and link it back"
	MsgRestoreShort    = "Remove the link and restore the last backup"
	MsgOpenShort       = "Open a folder in the file manager"
	MsgVersionShort    = "Print version information"
	MsgGenConfigShort  = "Print the default configuration file"
	MsgCompletionShort = "Generate shell completion script"

	// Prompts and notices
	MsgConfirmLink = "%s will be copied to %s and then replaced by a link. Continue?"
	MsgLinkAborted = "Link cancelled, nothing was changed."

	// Error messages
	MsgErrCloudRootMissing = "cloud folder %s does not exist"
	MsgErrNoBackup         = "no backup is known for %s. Use --force to remove the link anyway."
	MsgErrNoSavesFound     = "no save folder given and none was detected"
	MsgErrOpenMissing      = "%s does not exist"
	MsgErrOpen             = "failed to open %s"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Configuration file (default is config.toml in the savelink config dir)"
	MsgFlagBackupRoot = "Folder backups are written to"
	MsgFlagFormat     = "Output format: auto, term, text, json or yaml"
	MsgFlagYes        = "Do not ask for confirmation"
	MsgFlagForce      = "Remove the link even when no backup is known"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/migrate-long.txt
	msgMigrateLongRaw string
	MsgMigrateLong    = strings.TrimSpace(msgMigrateLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
