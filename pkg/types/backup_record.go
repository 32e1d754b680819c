package types

import "time"

// BackupRecord points at the most recent point-in-time copy of a source
// folder. Only the pointer is ever discarded: the backup directory itself
// stays on disk when a newer record replaces it.
type BackupRecord struct {
	ID             string    `json:"id" yaml:"id" toml:"id"`
	OriginalSource string    `json:"original_source" yaml:"original_source" toml:"original_source"`
	BackupPath     string    `json:"backup_path" yaml:"backup_path" toml:"backup_path"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
}
