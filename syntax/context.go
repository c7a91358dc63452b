// Package syntax implements a POSIX/dash-dialect shell tokeniser and
// recursive-descent parser: a restartable source stack, a
// context-sensitive lexer producing control-byte-encoded words, and a
// grammar driver producing an AST. It intentionally stops at syntax:
// alias expansion, arithmetic evaluation, word expansion (globbing,
// tilde, parameter substitution) and execution are all out of scope.
package syntax

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Context is the top-level, non-concurrency-safe handle the package's
// public facade is built around: one Context parses one logical input stream
// (which may itself be a stack of pushed sources) into a sequence of
// top-level commands, handing each one back from NextCommand.
//
// Every Node a Context returns is owned by that Context: its lifetime is
// the Context's lifetime, because every node is allocated from one of
// the arenas below. Callers that need a command tree to outlive the
// Context that produced it must copy what they need out of it first.
type Context struct {
	src sourceStack
	syn stack[syntaxFrame]

	text      textArena
	hereQueue fifo[*Here]

	tok        token
	pushedBack bool
	flags      tokFlags
	quoteflag  bool

	backquoteList []Node
	parseErr      *ParseError

	cmdArena        batch[Cmd]
	pipeArena       batch[Pipe]
	redirArena      batch[Redir]
	binaryArena     batch[Binary]
	ifArena         batch[If]
	forArena        batch[For]
	caseArena       batch[Case]
	caseClauseArena batch[CaseClause]
	defunArena      batch[Defun]
	notArena        batch[Not]
	argArena        batch[Arg]
	fileRedirArena  batch[FileRedir]
	dupRedirArena   batch[DupRedir]
	hereArena       batch[Here]
}

// NewContext returns an empty Context with no source pushed. Callers
// must push at least one source (PushString or PushFile) before calling
// NextCommand.
func NewContext() *Context {
	return &Context{}
}

// Close releases every file source still on the stack. It is safe to
// call more than once.
func (c *Context) Close() error {
	var err error
	for !c.src.empty() {
		if e := c.src.top().close(); e != nil && err == nil {
			err = e
		}
		c.src.pop()
	}
	return err
}

// PushString pushes an in-memory source onto the stack. The pushed
// source becomes the one the tokeniser reads from until it is
// exhausted or explicitly popped; name is used only for diagnostics.
func (c *Context) PushString(name string, data []byte) {
	c.src.push(newStringSource(name, data))
}

// PushFile opens path and pushes it as a source.
func (c *Context) PushFile(path string) error {
	f, err := newFileSource(path)
	if err != nil {
		return err
	}
	c.src.push(f)
	return nil
}

// reset discards every per-command arena and transient tokeniser state,
// but keeps the source stack, so the next NextCommand call starts a
// fresh top-level parse.
func (c *Context) reset() {
	c.text.reset()
	c.hereQueue.clear()
	c.tok = token{}
	c.pushedBack = false
	c.flags = tokFlags{}
	c.quoteflag = false
	c.backquoteList = nil
	c.parseErr = nil

	c.cmdArena.reset()
	c.pipeArena.reset()
	c.redirArena.reset()
	c.binaryArena.reset()
	c.ifArena.reset()
	c.forArena.reset()
	c.caseArena.reset()
	c.caseClauseArena.reset()
	c.defunArena.reset()
	c.notArena.reset()
	c.argArena.reset()
	c.fileRedirArena.reset()
	c.dupRedirArena.reset()
	c.hereArena.reset()
	c.syn.reset()
}

// NextCommand parses and returns the next top-level command, or the
// EOFNode sentinel (see IsEOF) once every pushed source is exhausted.
// Each call resets the per-command state and starts fresh arena
// storage, so trees returned by earlier calls stay intact.
func (c *Context) NextCommand() Node {
	c.reset()
	if c.src.empty() {
		return eofNode
	}

	node := c.parseList(nil)
	// ErrNoSource only marks that the last source ran dry: that is the
	// normal end of input, not an error.
	if c.parseErr == nil && !errors.Is(c.src.intErr, ErrNoSource) {
		c.parseErr = parseErrorFrom(c.src.intErr, c.curSourceName())
	}
	c.src.intErr = nil
	if node == nil || c.parseErr != nil {
		return eofNode
	}
	return node
}

func parseErrorFrom(err error, filename string) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Filename: filename, Text: err.Error()}
}

// ErrString returns the text of the most recent parse error, or "" if
// the last NextCommand call succeeded. This mirrors
// parse_internal_errstr's role as the facade's sole error-reporting
// path: Contexts do not panic on malformed shell input.
func (c *Context) ErrString() string {
	if c.parseErr == nil {
		return ""
	}
	return c.parseErr.Error()
}

// LastError returns the *ParseError produced by the most recent
// NextCommand call, or nil. Unlike ErrString this preserves the
// structured Position/Filename fields for callers that want them.
func (c *Context) LastError() *ParseError {
	return c.parseErr
}

// ParseFiles parses path once per file, concurrently, each into its own
// Context, and returns one command slice per input file in path order
// (not completion order). It exists because a single Context is
// inherently single-threaded (its source stack and arenas are not
// synchronized), but a caller with many independent scripts to parse
// has no reason to serialize that work.
func ParseFiles(paths []string) ([][]Node, error) {
	results := make([][]Node, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			cmds, err := parseOneFile(p)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			results[i] = cmds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseOneFile(path string) ([]Node, error) {
	c := NewContext()
	defer c.Close()
	if err := c.PushFile(path); err != nil {
		return nil, err
	}
	var cmds []Node
	for {
		n := c.NextCommand()
		if err := c.LastError(); err != nil {
			return nil, err
		}
		if IsEOF(n) {
			break
		}
		cmds = append(cmds, n)
	}
	return cmds, nil
}
