package savelink

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/savelink/pkg/cobrax/topics"
	"github.com/arthur-debert/savelink/pkg/logging"
	"github.com/arthur-debert/savelink/pkg/ui"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// topicRenderer decides between styled markdown and plain text when a topic
// is shown, after --format has been parsed
type topicRenderer struct {
	g    *globals
	root *cobra.Command
}

func (r *topicRenderer) Render(content, format string) string {
	f, err := ui.ParseFormat(r.g.format)
	if err != nil {
		f = ui.FormatAuto
	}
	if ui.Resolve(f, r.root.OutOrStdout()) == ui.FormatTerminal {
		return topics.NewGlamourRenderer().Render(content, format)
	}
	return content
}

func setupHelpTopics(rootCmd *cobra.Command, g *globals) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Renderer: &topicRenderer{g: g, root: rootCmd},
		})
	}
	if err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("help topics unavailable")
	}
}
