package syntax

import (
	"errors"
	"fmt"
)

// Internal errors: structural faults in the source stack, not the user's
// shell program. They are sentinel values so callers can compare with
// errors.Is.
var (
	// ErrNoSource is recorded when next_char is called with an empty
	// source stack.
	ErrNoSource = errors.New("syntax: no source to read from")
	// ErrNoUnget is recorded when an unget finds no room: the top source
	// can neither rewind nor take the byte in its own 4-slot ring, and the
	// context-level 4-slot ring is full too.
	ErrNoUnget = errors.New("syntax: unget buffer exhausted")
	// ErrNoGetChr is recorded when the underlying byte stream itself
	// failed (e.g. a file read error).
	ErrNoGetChr = errors.New("syntax: underlying read failed")
)

// Position is the location attached to ParseError. Line is the 1-based
// line of the source being read when the error was raised, or 0 when every
// source had already been exhausted; Column is not tracked and stays 0.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is mostly a syntax error: the user's shell program was
// malformed. NextCommand also uses it to report an internal error
// (ErrNoUnget, ErrNoGetChr), whose message then becomes Text.
type ParseError struct {
	Position
	Filename string
	Text     string
}

func (e *ParseError) Error() string {
	prefix := ""
	if e.Filename != "" {
		prefix = e.Filename + ":"
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Position, e.Text)
}
