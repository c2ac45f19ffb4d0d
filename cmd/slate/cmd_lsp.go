package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/slate-lang/slate/lang/lsp"
)

func newLSPCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			server := lsp.NewServer("0.1.0")
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	return cmd
}
