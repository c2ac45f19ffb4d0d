// Package lsp serves Slate parse diagnostics over the Language Server
// Protocol. Every open/change/save reparses the buffer and publishes the
// classified syntax error, if any, at its reported position.
package lsp

import (
	"net/url"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/slate-lang/slate/lang/compile"
	"github.com/slate-lang/slate/lang/parse"
)

const lsName = "slate"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewServer(version string) *Server {
	s := &Server{version: version}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.publishDiagnostics(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.publishDiagnostics(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string, text string) {
	diagnostics := []protocol.Diagnostic{}
	if d, ok := Diagnose(text, uriToFilename(uri)); ok {
		diagnostics = append(diagnostics, d)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// Diagnose parses text and converts a classified syntax error into an LSP
// diagnostic. The second result reports whether there was an error.
func Diagnose(text, filename string) (protocol.Diagnostic, bool) {
	_, err := compile.Parse(text, filename, parse.ModeFile)
	if err == nil {
		return protocol.Diagnostic{}, false
	}

	message := compile.ErrorMessage(err)
	pos, _ := compile.ErrorPosition(err)

	line := uint32(0)
	if pos.Line > 0 {
		line = uint32(pos.Line - 1)
	}
	char := uint32(0)
	if pos.Offset > 0 {
		char = uint32(pos.Offset - 1)
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: char},
			End:   protocol.Position{Line: line, Character: char + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}, true
}

func uriToFilename(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return uri
	}
	return strings.TrimPrefix(parsed.Path, "//")
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
