package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slate-lang/slate/format"
	"github.com/slate-lang/slate/lang/compile"
	"github.com/slate-lang/slate/lang/parse"
)

func newCompileCmd() *cobra.Command {
	var optimize int
	var flags uint

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a .slate file and report the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			code, err := compile.Compile(string(data), filename, parse.ModeFile, compile.Flags(flags), optimize)
			if err != nil {
				pos, _ := compile.ErrorPosition(err)
				fmt.Fprint(os.Stderr, format.ErrorSnippet(compile.ErrorMessage(err), pos))
				return err
			}

			fmt.Printf("compiled %s (flags=%#x, optimize=%d)\n", code.Filename, code.Flags, code.Optimize)
			if code.Module.Encoding != "" {
				fmt.Printf("declared encoding: %s\n", code.Module.Encoding)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&optimize, "optimize", "O", 0, "optimization level")
	cmd.Flags().UintVar(&flags, "flags", 0, "compiler flag bitmask")

	return cmd
}
