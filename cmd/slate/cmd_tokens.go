package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slate-lang/slate/lang/scanner"
	"github.com/slate-lang/slate/lang/token"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Scan a .slate file and dump the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			s := scanner.New(string(data), filename)
			for {
				tok := s.Next()
				if tok.Kind == token.Error {
					return fmt.Errorf("%s:%d: scan error: %s", filename, s.LineNumber(), s.ErrCode())
				}
				if tok.Literal != "" {
					fmt.Printf("%d:%d\t%s\t%q\n", tok.Start.Line, tok.Start.Column, tok.Kind, tok.Literal)
				} else {
					fmt.Printf("%d:%d\t%s\n", tok.Start.Line, tok.Start.Column, tok.Kind)
				}
				if tok.Kind == token.EndMarker {
					return nil
				}
			}
		},
	}

	return cmd
}
