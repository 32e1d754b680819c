package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/savelink/cmd/savelink"
)

// Writes a shell completion script to stdout, used by packaging
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	shell := os.Args[1]
	rootCmd := savelink.NewRootCmd()
	rootCmd.SetArgs([]string{"completion", shell})
	rootCmd.SetOut(os.Stdout)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		fmt.Fprintf(os.Stderr, "Supported shells: bash, zsh, fish, powershell\n")
		os.Exit(1)
	}
}
