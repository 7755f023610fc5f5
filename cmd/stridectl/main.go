package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := newRootCmd(openStore)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(open storeOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stridectl",
		Short:         "Inspect the stride dataset from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(dueCmd(open))
	rootCmd.AddCommand(usersCmd(open))
	rootCmd.AddCommand(dumpCmd(open))

	return rootCmd
}
