package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/arthur-debert/savelink/cmd/savelink"
	"github.com/arthur-debert/savelink/pkg/errors"
	"github.com/arthur-debert/savelink/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := savelink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// already rendered by the command
		if !stderrors.Is(err, savelink.ErrFailed) {
			sheet := styles.Default(lipgloss.NewRenderer(os.Stderr))
			fmt.Fprintln(os.Stderr, sheet.Render(styles.Error, "Error:")+" "+errors.Message(err))
		}
		os.Exit(1)
	}
}
