package syntax

// The recursive-descent grammar driver, built on top of the tokeniser in
// lexer.go. Each production reads tokens with
// readToken/pushBack (one token of lookahead, exactly as the tokeniser
// exposes) and allocates its result from the Context's node arenas.

func containsTok(stops []TokID, id TokID) bool {
	for _, t := range stops {
		if t == id {
			return true
		}
	}
	return false
}

// peekKw reads one token with the keyword-recognition flag set, then
// immediately pushes it back. It is how every production decides what
// comes next without committing to consuming it.
func (c *Context) peekKw() TokID {
	c.flags.chkkwd = true
	id := c.readToken()
	c.pushBack()
	return id
}

// skipNewlines consumes a run of blank/empty lines, the way dash allows
// free newlines after "&&", "||", "|", "(", "{", "do", "then" and so on.
func (c *Context) skipNewlines() {
	for {
		id := c.readToken()
		if id != TNL {
			c.pushBack()
			return
		}
	}
}

// expectKw consumes the next keyword token, recording a syntax error if
// it doesn't match want.
func (c *Context) expectKw(want TokID) bool {
	c.flags.chkkwd = true
	id := c.readToken()
	if id == want {
		return true
	}
	if id == TEOF {
		c.syntaxErr(seExpected, "unexpected end of file (expected %q)", want)
	} else {
		c.syntaxErr(seExpected, "unexpected %q (expected %q)", id, want)
	}
	c.pushBack()
	return false
}

// expectRP consumes a ")"; unlike expectKw it doesn't set chkkwd, since
// "(" / ")" are recognised as plain operators regardless of that flag.
func (c *Context) expectRP() bool {
	id := c.readToken()
	if id == TRP {
		return true
	}
	if id == TEOF {
		c.syntaxErr(seMissing, `missing ")"`)
	} else {
		c.syntaxErr(seExpected, `unexpected %q (expected ")")`, id)
	}
	c.pushBack()
	return false
}

// ---- node constructors (arena-backed) ----

func (c *Context) appendSeq(result, node Node) Node {
	if result == nil {
		return node
	}
	b := c.binaryArena.next()
	b.Op = OpSemi
	b.Ch1 = result
	b.Ch2 = node
	return b
}

func (c *Context) newBackgroundPipe(child Node) *Pipe {
	p := c.pipeArena.next()
	p.Background = true
	p.Cmds = []Node{child}
	return p
}

// ---- list / and-or / pipeline ----

// parseList parses a sequence of and-or lists separated by ";", "&" or
// newline, stopping (without consuming) at EOF or any token in stops. It
// is the entry point for both top-level programs (stops == nil) and
// every compound command's body. At top level a newline directly after
// an and-or list is consumed and ends the list, so each NextCommand call
// returns one line's commands; with a non-nil stops, newlines only
// separate items.
func (c *Context) parseList(stops []TokID) Node {
	var result Node
	for {
		c.skipNewlines()
		if id := c.peekKw(); id == TEOF || containsTok(stops, id) {
			break
		}

		andor := c.parseAndOr()
		if andor == nil {
			break
		}

		switch sep := c.peekKw(); sep {
		case TBACKGND:
			c.readToken()
			if p, ok := andor.(*Pipe); ok {
				p.Background = true
			} else {
				andor = c.newBackgroundPipe(andor)
			}
			result = c.appendSeq(result, andor)
		case TSEMI, TNL:
			c.readToken()
			result = c.appendSeq(result, andor)
			if sep == TNL && stops == nil {
				return result
			}
		default:
			return c.appendSeq(result, andor)
		}
	}
	return result
}

// parseAndOr folds a left-associative chain of "&&"/"||" over pipelines.
func (c *Context) parseAndOr() Node {
	left := c.parsePipeline()
	if left == nil {
		return nil
	}
	for {
		id := c.readToken()
		var op BinaryOp
		switch id {
		case TAND:
			op = OpAnd
		case TOR:
			op = OpOr
		default:
			c.pushBack()
			return left
		}
		c.skipNewlines()
		right := c.parsePipeline()
		if right == nil {
			c.syntaxErr(seExpected, "expected command after %q", id)
			return left
		}
		b := c.binaryArena.next()
		b.Op, b.Ch1, b.Ch2 = op, left, right
		left = b
	}
}

// parsePipeline parses an optionally "!"-negated "|"-separated chain of
// commands.
func (c *Context) parsePipeline() Node {
	c.flags.chkkwd = true
	negate := c.readToken() == TNOT
	if !negate {
		c.pushBack()
	}

	first := c.parseCommand()
	if first == nil {
		if negate {
			c.syntaxErr(seExpected, "expected command after \"!\"")
		}
		return nil
	}
	cmds := []Node{first}

	for {
		id := c.readToken()
		if id != TPIPE {
			c.pushBack()
			break
		}
		c.skipNewlines()
		cmd := c.parseCommand()
		if cmd == nil {
			c.syntaxErr(seExpected, "expected command after \"|\"")
			break
		}
		cmds = append(cmds, cmd)
	}

	var node Node = cmds[0]
	if len(cmds) > 1 {
		p := c.pipeArena.next()
		p.Cmds = cmds
		node = p
	}
	if negate {
		n := c.notArena.next()
		n.Child = node
		node = n
	}
	return node
}

// ---- command dispatch ----

// parseCommand parses one compound or simple command plus any trailing
// redirections attached to it as a whole.
func (c *Context) parseCommand() Node {
	c.flags.chkkwd = true
	id := c.readToken()
	switch id {
	case TBEGIN:
		return c.parseRedirSuffix(c.parseBraceGroupTail())
	case TLP:
		return c.parseRedirSuffix(c.parseSubshellTail())
	case TIF:
		return c.parseRedirSuffix(c.parseIfTail())
	case TWHILE:
		return c.parseRedirSuffix(c.parseLoopTail(OpWhile))
	case TUNTIL:
		return c.parseRedirSuffix(c.parseLoopTail(OpUntil))
	case TFOR:
		return c.parseRedirSuffix(c.parseForTail())
	case TCASE:
		return c.parseRedirSuffix(c.parseCaseTail())
	default:
		c.pushBack()
		return c.parseSimpleCommand()
	}
}

// parseRedirSuffix consumes zero or more trailing redirections and, if
// any were found, wraps child in a Redir.
func (c *Context) parseRedirSuffix(child Node) Node {
	var redirs []Redirect
	for {
		id := c.readToken()
		if id != TREDIR {
			c.pushBack()
			break
		}
		redirs = append(redirs, c.readRedir())
	}
	if len(redirs) == 0 {
		return child
	}
	r := c.redirArena.next()
	r.Child = child
	r.Redirect = redirs
	return r
}

func (c *Context) parseBraceGroupTail() Node {
	body := c.parseList([]TokID{TEND})
	c.expectKw(TEND)
	return body
}

func (c *Context) parseSubshellTail() Node {
	line := c.src.line()
	body := c.parseList([]TokID{TRP})
	c.expectRP()
	r := c.redirArena.next()
	r.Line, r.Subshell, r.Child = line, true, body
	return r
}

func (c *Context) parseIfTail() Node {
	test := c.parseList([]TokID{TTHEN})
	if !c.expectKw(TTHEN) {
		n := c.ifArena.next()
		n.Test = test
		return n
	}
	then := c.parseList([]TokID{TELIF, TELSE, TFI})

	n := c.ifArena.next()
	n.Test, n.Then = test, then

	switch c.peekKw() {
	case TELIF:
		c.readToken()
		n.Else = c.parseIfTail()
	case TELSE:
		c.expectKw(TELSE)
		n.Else = c.parseList([]TokID{TFI})
		c.expectKw(TFI)
	default:
		c.expectKw(TFI)
	}
	return n
}

func (c *Context) parseLoopTail(op BinaryOp) Node {
	test := c.parseList([]TokID{TDO})
	c.expectKw(TDO)
	body := c.parseList([]TokID{TDONE})
	c.expectKw(TDONE)

	b := c.binaryArena.next()
	b.Op, b.Ch1, b.Ch2 = op, test, body
	return b
}

// forWithoutInArg is the synthetic "$@" word substituted for a for-loop
// with no explicit "in word...", matching dash's for-without-in
// desugaring (see the For doc comment in nodes.go).
func forWithoutInArg() *Arg {
	return &Arg{Text: []byte{ctlVAR, byte(VSBit) | byte(VSNormal), '@', '=', ctlENDVAR, 0}}
}

func (c *Context) parseForTail() Node {
	line := c.src.line()

	id := c.readToken()
	if id != TWORD || c.quoteflag || !isValidNameArg(c.tok.word) {
		c.syntaxErr(seBadForVar, "bad for loop variable")
		return nil
	}
	varName := string(trimNUL(c.tok.word.Text))

	c.skipNewlines()
	var args []*Arg
	if c.peekKw() == TIN {
		c.readToken()
		for {
			wid := c.readToken()
			if wid != TWORD {
				c.pushBack()
				break
			}
			args = append(args, c.tok.word)
		}
		switch sep := c.readToken(); sep {
		case TSEMI, TNL:
		default:
			c.pushBack()
		}
	} else {
		args = []*Arg{forWithoutInArg()}
		// an optional ';' may follow the bare loop variable
		if c.readToken() != TSEMI {
			c.pushBack()
		}
	}

	c.skipNewlines()
	c.expectKw(TDO)
	body := c.parseList([]TokID{TDONE})
	c.expectKw(TDONE)

	n := c.forArena.next()
	n.Line, n.Var, n.Args, n.Body = line, varName, args, body
	return n
}

func (c *Context) parseCaseTail() Node {
	line := c.src.line()

	wid := c.readToken()
	if wid != TWORD {
		c.syntaxErr(seExpected, "expected word after \"case\"")
		return nil
	}
	word := c.tok.word

	c.skipNewlines()
	n := c.caseArena.next()
	n.Line, n.Word = line, word
	if !c.expectKw(TIN) {
		return n
	}
	c.skipNewlines()

	for {
		if c.peekKw() == TESAC {
			break
		}

		if c.readToken() == TLP {
			// optional leading "(" before a pattern list
		} else {
			c.pushBack()
		}

		var patterns []*Arg
		for {
			pid := c.readToken()
			if pid != TWORD {
				c.syntaxErr(seExpected, "expected case pattern")
				return n
			}
			patterns = append(patterns, c.tok.word)
			if c.readToken() != TPIPE {
				c.pushBack()
				break
			}
		}
		if !c.expectRP() {
			return n
		}

		c.skipNewlines()
		body := c.parseList([]TokID{TENDCASE, TESAC})
		clause := c.caseClauseArena.next()
		clause.Pattern, clause.Body = patterns, body
		n.Clause = append(n.Clause, clause)

		c.flags.chkkwd = true
		if c.readToken() == TENDCASE {
			c.skipNewlines()
			continue
		}
		c.pushBack()
		break
	}

	c.expectKw(TESAC)
	return n
}

// ---- simple commands and function definitions ----

func isAssignment(w *Arg) bool {
	text := w.Text
	if len(text) == 0 || !nameStart(text[0]) {
		return false
	}
	i := 1
	for i < len(text) && nameCont(text[i]) {
		i++
	}
	return i < len(text) && text[i] == '='
}

func isValidNameArg(w *Arg) bool {
	text := trimNUL(w.Text)
	if len(text) == 0 || !nameStart(text[0]) {
		return false
	}
	for _, b := range text[1:] {
		if !nameCont(b) {
			return false
		}
	}
	return true
}

// parseSimpleCommand parses assignments, arguments and redirections in
// whatever order they appear, detecting a "name() compound-command"
// function definition the first time a bare command word would
// otherwise be read. Returns nil if no token at all belonged to it (so
// callers can tell "no command here" from "an empty command").
func (c *Context) parseSimpleCommand() Node {
	cmd := c.cmdArena.next()
	cmd.Line = c.src.line()
	sawCmdWord := false

	for {
		id := c.readToken()
		switch id {
		case TWORD:
			w := c.tok.word
			if !sawCmdWord && !c.quoteflag && isAssignment(w) {
				cmd.Assign = append(cmd.Assign, w)
				continue
			}
			if !sawCmdWord && !c.quoteflag && isValidNameArg(w) {
				if node, isDefun := c.tryParseDefun(w, cmd.Line); isDefun {
					return node
				}
			}
			sawCmdWord = true
			cmd.Args = append(cmd.Args, w)
		case TREDIR:
			cmd.Redirect = append(cmd.Redirect, c.readRedir())
		default:
			c.pushBack()
			if len(cmd.Assign) == 0 && len(cmd.Args) == 0 && len(cmd.Redirect) == 0 {
				return nil
			}
			return cmd
		}
	}
}

// tryParseDefun looks ahead for "(" ")" right after a bare name; if seen,
// it consumes the whole function definition and returns it. Otherwise it
// pushes back whatever it peeked and returns (nil, false) so the caller
// keeps building a simple command.
func (c *Context) tryParseDefun(nameWord *Arg, line int) (Node, bool) {
	nid := c.readToken()
	if nid != TLP {
		c.pushBack()
		return nil, false
	}
	if !c.expectRP() {
		return nil, true
	}

	name := string(trimNUL(nameWord.Text))
	if isSpecialBuiltin(name) {
		c.syntaxErr(seBadFuncName, "%q is a special builtin and cannot be redefined as a function", name)
	}
	c.skipNewlines()
	body := c.parseCommand()

	n := c.defunArena.next()
	n.Line, n.Name, n.Body = line, name, body
	return n, true
}

// ---- redirections (attached at the grammar level) ----

// delimText strips here-doc control-byte escaping from a delimiter word,
// yielding the literal bytes the matching line must equal.
func delimText(w *Arg) string {
	text := trimNUL(w.Text)
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b == ctlESC {
			i++
			if i < len(text) {
				out = append(out, text[i])
			}
			continue
		}
		if isCtlByte(b) {
			continue
		}
		out = append(out, b)
	}
	return string(out)
}

func parseFdWord(text []byte) (int, bool) {
	if len(text) == 0 {
		return 0, false
	}
	n := 0
	for _, b := range text {
		if !isDigit(b) {
			return 0, false
		}
		n = n*10 + int(b-'0')
	}
	return n, true
}

// readRedir is called immediately after readToken produced TREDIR: it
// reads the following word (a filename, dup target, or here-doc
// delimiter) to complete the Redirect the tokeniser started building.
func (c *Context) readRedir() Redirect {
	r := c.tok.redir
	switch rr := r.(type) {
	case *Here:
		wid := c.readToken()
		if wid != TWORD {
			c.syntaxErr(seExpected, "expected word after here-document operator")
			return r
		}
		rr.Delim = delimText(c.tok.word)
		rr.ExpandQuoted = !c.quoteflag
		c.queueHeredoc(rr)
	case *FileRedir:
		wid := c.readToken()
		if wid != TWORD {
			c.syntaxErr(seExpected, "expected word after redirection operator")
			return r
		}
		rr.Name = c.tok.word
	case *DupRedir:
		wid := c.readToken()
		if wid != TWORD {
			c.syntaxErr(seExpected, "expected file descriptor or \"-\" after dup redirection")
			return r
		}
		text := trimNUL(c.tok.word.Text)
		switch {
		case string(text) == "-":
			rr.DupFd = -1
		default:
			if n, ok := parseFdWord(text); ok {
				rr.DupFd = n
			} else {
				rr.DupFd = -1
				rr.Name = c.tok.word
			}
		}
	}
	return r
}
