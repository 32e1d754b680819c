package savelink

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/savelink/internal/version"
	"github.com/arthur-debert/savelink/pkg/config"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/state"
	"github.com/arthur-debert/savelink/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "savelink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.backupRoot, "backup-root", "", MsgFlagBackupRoot)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newDetectCmd(g, d))
	rootCmd.AddCommand(newStatusCmd(g, d))
	rootCmd.AddCommand(newMigrateCmd(g, d))
	rootCmd.AddCommand(newLinkCmd(g, d))
	rootCmd.AddCommand(newRestoreCmd(g, d))
	rootCmd.AddCommand(newOpenCmd(g, d))
	rootCmd.AddCommand(newVersionCmd(g))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	setupHelpTopics(rootCmd, g)

	return rootCmd
}

func newDetectCmd(g *globals, d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app(cmd, d)
			if err != nil {
				return err
			}
			result := d.detection(a.cfg).Detect()
			log.Info().
				Str("saves", result.Saves).
				Str("installation", result.Installation).
				Msg("Detection finished")
			return a.renderer.RenderResult(&result)
		},
	}
}

func newStatusCmd(g *globals, d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "status [source] [cloud-root]",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Args:    cobra.MaximumNArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app(cmd, d)
			if err != nil {
				return err
			}

			var input string
			if len(args) > 0 {
				input = args[0]
			} else {
				found, ok := d.detection(a.cfg).FindSavesPath()
				if !ok {
					return a.report(errors.New(errors.ErrInvalidPath, MsgErrNoSavesFound))
				}
				input = found
			}

			source, err := paths.Normalize(input)
			if err != nil {
				return a.report(err)
			}

			var expected string
			if len(args) > 1 {
				root, err := cloudRoot(args[1])
				if err != nil {
					return a.report(err)
				}
				expected = a.cfg.CloudTarget(root)
			}

			report, err := state.Inspect(source, expected)
			if err != nil {
				return a.report(err)
			}

			record, ok := a.runner().CurrentBackup()
			hasBackup := ok && sameSource(record.OriginalSource, source)
			return a.renderer.RenderResult(display.NewStatusView(report, record, hasBackup))
		},
	}
}

func newMigrateCmd(g *globals, d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "migrate <source> <cloud-root>",
		Short:   MsgMigrateShort,
		Long:    MsgMigrateLong,
		Args:    cobra.ExactArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app(cmd, d)
			if err != nil {
				return err
			}
			root, err := cloudRoot(args[1])
			if err != nil {
				return a.report(err)
			}
			return a.finish(a.runner().Migrate(args[0], a.cfg.CloudTarget(root)))
		},
	}
}

func newLinkCmd(g *globals, d deps) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "link <source> <cloud-root>",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		Args:    cobra.ExactArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app(cmd, d)
			if err != nil {
				return err
			}
			root, err := cloudRoot(args[1])
			if err != nil {
				return a.report(err)
			}
			target := a.cfg.CloudTarget(root)

			if a.cfg.UI.Confirm && !yes && a.canPrompt() {
				ok, err := a.confirmer().Confirm(fmt.Sprintf(MsgConfirmLink, args[0], target))
				if err != nil {
					return a.report(errors.Wrap(err, errors.ErrIO, "failed to read the answer"))
				}
				if !ok {
					return a.renderer.RenderMessage(MsgLinkAborted)
				}
			}

			return a.finish(a.runner().Link(args[0], target, a.cfg.Backup.Root))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	return cmd
}

func newRestoreCmd(g *globals, d deps) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "restore <source>",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app(cmd, d)
			if err != nil {
				return err
			}
			source, err := paths.Normalize(args[0])
			if err != nil {
				return a.report(err)
			}

			runner := a.runner()
			record, ok := runner.CurrentBackup()
			if !force && !(ok && sameSource(record.OriginalSource, source)) {
				return a.report(errors.Newf(errors.ErrPrecondition, MsgErrNoBackup, source))
			}
			return a.finish(runner.Restore(source))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newOpenCmd(g *globals, d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "open <path>",
		Short:   MsgOpenShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.app(cmd, d)
			if err != nil {
				return err
			}
			path, err := paths.Normalize(args[0])
			if err != nil {
				return a.report(err)
			}
			if !paths.Exists(path) {
				return a.report(errors.Newf(errors.ErrInvalidPath, MsgErrOpenMissing, path))
			}
			if err := d.opener(path); err != nil {
				return a.report(errors.Wrapf(err, errors.ErrIO, MsgErrOpen, path))
			}
			return nil
		},
	}
}

func newVersionCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, renderer, err := g.output(cmd)
			if err != nil {
				return err
			}
			info := version.Get()
			if format.Interactive() {
				return renderer.RenderMessage(info.String())
			}
			return renderer.RenderResult(info)
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// cloudRoot normalizes the cloud root argument, which must already exist
func cloudRoot(input string) (string, error) {
	root, err := paths.Normalize(input)
	if err != nil {
		return "", err
	}
	if !paths.IsDir(root) {
		return "", errors.Newf(errors.ErrPrecondition, MsgErrCloudRootMissing, root)
	}
	return root, nil
}

func sameSource(recorded, source string) bool {
	return filepath.Clean(recorded) == filepath.Clean(source)
}
