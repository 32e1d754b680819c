package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration keys.
// SAVELINK_BACKUP_ROOT maps to backup.root, SAVELINK_DETECTION_SAVES_PATHS
// to detection.saves_paths.
const EnvPrefix = "SAVELINK_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions selects the user file and the flag overrides
type LoadOptions struct {
	// ConfigFile is an explicit file that must exist. Empty uses
	// paths.ConfigFilePath and tolerates it being absent.
	ConfigFile string

	// Overrides use dotted keys ("backup.root") and win over every other layer
	Overrides map[string]interface{}
}

// Load merges the embedded defaults, the user file, SAVELINK_* environment
// variables and overrides, in that order.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	path, err := userConfigPath(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded user config")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := postProcess(&cfg); err != nil {
		return nil, err
	}
	cfg.File = path

	logger.Debug().
		Str("backup_root", cfg.Backup.Root).
		Str("cloud_subdir", cfg.Cloud.Subdir).
		Bool("confirm", cfg.UI.Confirm).
		Msg("configuration loaded")
	return &cfg, nil
}

func userConfigPath(explicit string) (string, error) {
	if explicit != "" {
		explicit = paths.ExpandHome(explicit)
		info, err := os.Stat(explicit)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		if info.IsDir() {
			return "", errors.Newf(errors.ErrConfigLoad, "config file %s is a directory", explicit)
		}
		return explicit, nil
	}

	path := paths.ConfigFilePath()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// envKey turns SAVELINK_DETECTION_SAVES_PATHS into detection.saves_paths.
// Only the first underscore separates the section from the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
