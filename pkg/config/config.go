package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/paths"
)

// Config is the effective configuration after all layers are merged
type Config struct {
	Backup    Backup    `koanf:"backup" yaml:"backup" json:"backup"`
	Cloud     Cloud     `koanf:"cloud" yaml:"cloud" json:"cloud"`
	Detection Detection `koanf:"detection" yaml:"detection" json:"detection"`
	UI        UI        `koanf:"ui" yaml:"ui" json:"ui"`

	// File is the user configuration file that was read, if any
	File string `koanf:"-" yaml:"-" json:"-"`
}

// Backup holds where pre-link backups are written
type Backup struct {
	Root string `koanf:"root" yaml:"root" json:"root"`
}

// Cloud controls how the cloud target is derived from the cloud root
type Cloud struct {
	Subdir string `koanf:"subdir" yaml:"subdir" json:"subdir"`
}

// Detection adds locations that are tried before the built-in ones
type Detection struct {
	SavesPaths   []string `koanf:"saves_paths" yaml:"savesPaths" json:"savesPaths"`
	InstallPaths []string `koanf:"install_paths" yaml:"installPaths" json:"installPaths"`
}

// UI holds interaction settings
type UI struct {
	Confirm bool `koanf:"confirm" yaml:"confirm" json:"confirm"`
}

// CloudTarget returns the folder inside cloudRoot that saves are copied to
func (c *Config) CloudTarget(cloudRoot string) string {
	if c.Cloud.Subdir == "" {
		return cloudRoot
	}
	return filepath.Join(cloudRoot, c.Cloud.Subdir)
}

// DefaultContent returns the embedded defaults file
func DefaultContent() string {
	return string(defaultConfig)
}

func postProcess(cfg *Config) error {
	cfg.Backup.Root = strings.TrimSpace(cfg.Backup.Root)
	if cfg.Backup.Root == "" {
		cfg.Backup.Root = paths.DefaultBackupRoot()
	} else {
		cfg.Backup.Root = filepath.Clean(paths.ExpandHome(cfg.Backup.Root))
	}

	subdir := strings.TrimSpace(cfg.Cloud.Subdir)
	if subdir != "" {
		subdir = filepath.Clean(subdir)
		if filepath.IsAbs(subdir) || subdir == ".." || strings.HasPrefix(subdir, ".."+string(filepath.Separator)) {
			return errors.Newf(errors.ErrConfigLoad, "cloud.subdir %q must be a relative folder name", cfg.Cloud.Subdir)
		}
		if subdir == "." {
			subdir = ""
		}
	}
	cfg.Cloud.Subdir = subdir

	cfg.Detection.SavesPaths = compact(cfg.Detection.SavesPaths)
	cfg.Detection.InstallPaths = compact(cfg.Detection.InstallPaths)
	return nil
}

func compact(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
