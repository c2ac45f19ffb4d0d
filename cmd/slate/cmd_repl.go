package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/slate-lang/slate/format"
	"github.com/slate-lang/slate/lang/compile"
	"github.com/slate-lang/slate/lang/exc"
	"github.com/slate-lang/slate/lang/parse"
)

const (
	historyFile = ".slate_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive parse loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, err := readStatement(ln)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.TrimRight(input, "\n"))

		tree, perr := compile.Parse(input, "<stdin>", parse.ModeSingle)
		if perr != nil {
			pos, _ := compile.ErrorPosition(perr)
			fmt.Fprint(os.Stderr, format.ErrorSnippet(compile.ErrorMessage(perr), pos))
			continue
		}
		enc := format.NewTextEncoder(os.Stdout)
		if err := enc.Encode(tree); err != nil {
			return err
		}
	}
}

// readStatement reads one statement, prompting for continuation lines while
// the input still fails with an unexpected-EOF error, the way an
// indentation-aware shell grows a block until it closes.
func readStatement(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteString("\n")

		if needsMore(b.String()) {
			continue
		}
		// A block statement ends at the first blank continuation line.
		if isBlockOpener(b.String()) && line != "" {
			continue
		}
		return b.String(), nil
	}
}

func needsMore(input string) bool {
	_, err := compile.Parse(input, "<stdin>", parse.ModeSingle)
	if err == nil {
		return false
	}
	ex, ok := err.(*exc.Exception)
	if !ok {
		return false
	}
	msg := compile.ErrorMessage(ex)
	return msg == "unexpected EOF while parsing" || msg == "expected an indented block"
}

func isBlockOpener(input string) bool {
	first := input
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return strings.HasSuffix(strings.TrimRight(first, " \t"), ":")
}
