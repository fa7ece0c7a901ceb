// Package lsp serves the language server carried on the interactive stream. Each stream is one
// editor session with its own open documents.
package lsp

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf16"

	tally "github.com/uber-go/tally/v4"
	"github.com/uber/buildd/src/buildd/api"
	"github.com/uber/buildd/src/buildd/entity"
	"github.com/uber/buildd/src/buildd/internal/dispatch"
	"github.com/uber/buildd/src/buildd/internal/fs"
	"github.com/uber/buildd/src/buildd/mapper"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _serverName = "buildd"

// Build files are probed in this order when resolving a package label.
var _buildFileNames = []string{"BUCK", "BUILD", "BUILD.bazel", "TARGETS"}

// A quoted string literal in a build file.
var _stringLiteral = regexp.MustCompile(`"[^"\n]*"|'[^'\n]*'`)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Controller opens language server sessions.
type Controller interface {
	NewSession(ec *entity.EngineContext, emit dispatch.Emitter) Session
}

// Session is one editor connection. It is not safe for concurrent use; a stream has a single reader.
type Session interface {
	// Handle processes one JSON-RPC message. Replies are emitted as LspMessage events.
	// An error is returned only when a reply could not be delivered.
	Handle(ctx context.Context, req *api.LspRequest) error
	// Exited reports whether the editor sent the exit notification.
	Exited() bool
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Identity *entity.DaemonIdentity
	FS       fs.BuilddFS
	Logger   *zap.SugaredLogger
	Stats    tally.Scope
}

type controller struct {
	version string
	fs      fs.BuilddFS
	logger  *zap.SugaredLogger
	stats   tally.Scope
}

// New creates a new lsp controller.
func New(p Params) Controller {
	return &controller{
		version: p.Identity.Version,
		fs:      p.FS,
		logger:  p.Logger,
		stats:   p.Stats.SubScope("lsp"),
	}
}

func (c *controller) NewSession(ec *entity.EngineContext, emit dispatch.Emitter) Session {
	return &session{
		c:           c,
		projectRoot: ec.ProjectRoot,
		emit:        emit,
		docs:        make(map[protocol.DocumentURI]string),
	}
}

type session struct {
	c           *controller
	projectRoot string
	emit        dispatch.Emitter

	docs     map[protocol.DocumentURI]string
	shutdown bool
	exited   bool
}

func (s *session) Exited() bool {
	return s.exited
}

func (s *session) Handle(ctx context.Context, req *api.LspRequest) error {
	msg, err := mapper.LspJSONToMessage(req.LspJSON)
	if err != nil {
		s.c.logger.Warnw("dropping malformed lsp message", zap.Error(err))
		return s.emit.Console("warn", fmt.Sprintf("malformed language server message: %v", err))
	}

	switch m := msg.(type) {
	case *jsonrpc2.Call:
		s.c.stats.Tagged(map[string]string{"method": m.Method()}).Counter("calls").Inc(1)
		result, err := s.call(ctx, m)
		return s.reply(m.ID(), result, err)
	case *jsonrpc2.Notification:
		s.c.stats.Tagged(map[string]string{"method": m.Method()}).Counter("notifications").Inc(1)
		if err := s.notify(m); err != nil {
			s.c.logger.Warnw("handling lsp notification", "method", m.Method(), zap.Error(err))
		}
		return nil
	case *jsonrpc2.Response:
		// The server never issues requests to the editor.
		s.c.logger.Debugw("ignoring lsp response", "id", m.ID())
		return nil
	}
	return nil
}

func (s *session) call(ctx context.Context, m *jsonrpc2.Call) (interface{}, error) {
	if s.shutdown {
		return nil, jsonrpc2.ErrInvalidRequest
	}
	switch m.Method() {
	case protocol.MethodInitialize:
		return s.initialize(), nil
	case protocol.MethodShutdown:
		s.shutdown = true
		return nil, nil
	case protocol.MethodTextDocumentDefinition:
		params, err := mapper.RequestToDefinitionParams(m)
		if err != nil {
			return nil, err
		}
		return s.definition(ctx, params)
	}
	return nil, jsonrpc2.ErrMethodNotFound
}

func (s *session) notify(m *jsonrpc2.Notification) error {
	switch m.Method() {
	case protocol.MethodInitialized:
		return nil
	case protocol.MethodExit:
		s.exited = true
		return nil
	case protocol.MethodTextDocumentDidOpen:
		params, err := mapper.RequestToDidOpenTextDocumentParams(m)
		if err != nil {
			return err
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return nil
	case protocol.MethodTextDocumentDidChange:
		params, err := mapper.RequestToDidChangeTextDocumentParams(m)
		if err != nil {
			return err
		}
		if _, ok := s.docs[params.TextDocument.URI]; !ok {
			return fmt.Errorf("change to unopened document %q", params.TextDocument.URI)
		}
		// Full sync: the last change holds the whole text.
		if n := len(params.ContentChanges); n > 0 {
			s.docs[params.TextDocument.URI] = params.ContentChanges[n-1].Text
		}
		return nil
	case protocol.MethodTextDocumentDidClose:
		params, err := mapper.RequestToDidCloseTextDocumentParams(m)
		if err != nil {
			return err
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	}
	// Unknown notifications are ignored.
	return nil
}

func (s *session) initialize() *protocol.InitializeResult {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			DefinitionProvider: &protocol.DefinitionOptions{},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    _serverName,
			Version: s.c.version,
		},
	}
}

// definition resolves the target label under the cursor to the build file that declares it.
// A null result means the cursor is not on a resolvable label.
func (s *session) definition(_ context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	text, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}
	label := labelAt(text, params.Position)
	if label == "" {
		return nil, nil
	}

	var dir string
	switch {
	case strings.HasPrefix(label, "//"):
		pkg, _, _ := strings.Cut(strings.TrimPrefix(label, "//"), ":")
		dir = filepath.Join(s.projectRoot, filepath.FromSlash(pkg))
	case strings.HasPrefix(label, ":"):
		dir = filepath.Dir(params.TextDocument.URI.Filename())
	default:
		return nil, nil
	}

	for _, name := range _buildFileNames {
		path := filepath.Join(dir, name)
		exists, err := s.c.fs.FileExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			return []protocol.Location{{URI: protocol.DocumentURI(uri.File(path))}}, nil
		}
	}
	return nil, nil
}

// labelAt returns the contents of the string literal enclosing pos, if any.
func labelAt(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	col := byteOffset(line, int(pos.Character))
	for _, loc := range _stringLiteral.FindAllStringIndex(line, -1) {
		if col > loc[0] && col < loc[1] {
			return line[loc[0]+1 : loc[1]-1]
		}
	}
	return ""
}

// byteOffset converts a column counted in UTF-16 code units to a byte offset into line.
func byteOffset(line string, col int) int {
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

func (s *session) reply(id jsonrpc2.ID, result interface{}, err error) error {
	resp, rerr := jsonrpc2.NewResponse(id, result, err)
	if rerr != nil {
		return rerr
	}
	raw, rerr := mapper.MessageToLspJSON(resp)
	if rerr != nil {
		return rerr
	}
	return s.emit.Emit(&api.LspMessage{LspJSON: raw})
}
