package savelink

import (
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/arthur-debert/savelink/pkg/config"
	"github.com/arthur-debert/savelink/pkg/detection"
	"github.com/arthur-debert/savelink/pkg/fileops"
	"github.com/arthur-debert/savelink/pkg/filesystem"
	"github.com/arthur-debert/savelink/pkg/link"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/operations"
	"github.com/arthur-debert/savelink/pkg/paths"
	"github.com/arthur-debert/savelink/pkg/state"
	"github.com/arthur-debert/savelink/pkg/types"
	"github.com/arthur-debert/savelink/pkg/ui"
	"github.com/arthur-debert/savelink/pkg/ui/confirmations"
	"github.com/arthur-debert/savelink/pkg/ui/display"
	"github.com/spf13/cobra"
)

// ErrFailed is returned after a failure has already been shown to the user
var ErrFailed = stderrors.New("command failed")

// deps are the parts of the environment the commands reach out to
type deps struct {
	links       link.Strategy
	confirmer   confirmations.Confirmer
	interactive func(out io.Writer) bool
	opener      func(path string) error
	detection   func(cfg *config.Config) *detection.Service
}

func defaultDeps() deps {
	return deps{
		interactive: stdioIsTerminal,
		opener:      openInFileManager,
		detection: func(cfg *config.Config) *detection.Service {
			return detection.ForPlatform(cfg.Detection.SavesPaths, cfg.Detection.InstallPaths)
		},
	}
}

// globals holds the persistent flag values
type globals struct {
	verbosity  int
	configFile string
	backupRoot string
	format     string
}

// app is what a command runs with once flags and configuration are resolved
type app struct {
	deps     deps
	cfg      *config.Config
	format   ui.Format
	out      io.Writer
	renderer ui.Renderer
}

func (g *globals) output(cmd *cobra.Command) (ui.Format, ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return 0, nil, err
	}
	out := cmd.OutOrStdout()
	format = ui.Resolve(format, out)
	renderer, err := ui.NewRenderer(format, out)
	if err != nil {
		return 0, nil, err
	}
	return format, renderer, nil
}

func (g *globals) app(cmd *cobra.Command, d deps) (*app, error) {
	format, renderer, err := g.output(cmd)
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if g.backupRoot != "" {
		overrides["backup.root"] = g.backupRoot
	}
	cfg, err := config.Load(config.LoadOptions{ConfigFile: g.configFile, Overrides: overrides})
	if err != nil {
		_ = renderer.RenderError(err)
		return nil, ErrFailed
	}

	return &app{
		deps:     d,
		cfg:      cfg,
		format:   format,
		out:      cmd.OutOrStdout(),
		renderer: renderer,
	}, nil
}

// report shows err and returns ErrFailed
func (a *app) report(err error) error {
	_ = a.renderer.RenderError(err)
	return ErrFailed
}

// runner wires the operations runner to the real filesystem and the
// persisted backup slot. Interactive output gets the log line by line.
func (a *app) runner() *operations.Runner {
	logger := logging.GetLogger("cli")
	fs := filesystem.NewOS()

	links := a.deps.links
	if links == nil {
		links = link.ForPlatform()
	}

	opts := operations.Options{
		Links: links,
		Files: fileops.New(fs, links),
		Store: state.NewFileStore(fs, paths.StateFilePath()),
	}
	if a.format.Interactive() {
		opts.Sink = func(line string) { _ = a.renderer.RenderMessage(line) }
	}

	r := operations.NewRunner(opts)
	if err := r.LoadBackup(); err != nil {
		logger.Warn().Err(err).Msg("could not read the backup record")
	}
	return r
}

// finish renders result and turns an unsuccessful one into ErrFailed
func (a *app) finish(result types.OperationResult) error {
	var err error
	if a.format.Interactive() {
		err = a.renderer.RenderResult(&display.Outcome{Success: result.Success, Message: result.Message})
	} else {
		err = a.renderer.RenderResult(&result)
	}
	if err != nil {
		return err
	}
	if !result.Success {
		return ErrFailed
	}
	return nil
}

func (a *app) confirmer() confirmations.Confirmer {
	if a.deps.confirmer != nil {
		return a.deps.confirmer
	}
	return confirmations.NewPrompt()
}

// canPrompt reports whether someone is there to answer a question
func (a *app) canPrompt() bool {
	return a.format.Interactive() && a.deps.interactive != nil && a.deps.interactive(a.out)
}

func stdioIsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && ui.IsTerminal(f) && ui.IsTerminal(os.Stdin)
}

func openInFileManager(path string) error {
	var name string
	switch runtime.GOOS {
	case "windows":
		name = "explorer"
	case "darwin":
		name = "open"
	default:
		name = "xdg-open"
	}
	return exec.Command(name, path).Start()
}
