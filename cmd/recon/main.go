package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "recon",
		Short:         "recon reconstructs the constant term of a threshold-shared polynomial",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newRecoverCommand(),
		newVersionCommand(),
	)

	return root
}
