package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slate-lang/slate/format"
	"github.com/slate-lang/slate/lang/compile"
	"github.com/slate-lang/slate/lang/parse"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var modeName string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .slate file and dump the parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			mode, err := parseMode(modeName)
			if err != nil {
				return err
			}

			tree, err := compile.Parse(string(data), filename, mode)
			if err != nil {
				pos, _ := compile.ErrorPosition(err)
				fmt.Fprint(os.Stderr, format.ErrorSnippet(compile.ErrorMessage(err), pos))
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")
	cmd.Flags().StringVarP(&modeName, "mode", "m", "file", "parse mode (file, single, eval)")

	return cmd
}

func parseMode(name string) (parse.Mode, error) {
	switch name {
	case "file":
		return parse.ModeFile, nil
	case "single":
		return parse.ModeSingle, nil
	case "eval":
		return parse.ModeEval, nil
	}
	return 0, fmt.Errorf("unknown mode: %s", name)
}
