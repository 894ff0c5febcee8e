package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden by -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "show version name",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "xrbt %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
