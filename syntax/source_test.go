package syntax

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestSourceStackReadsInPushOrder(t *testing.T) {
	c := qt.New(t)
	var ss sourceStack
	ss.push(newStringSource("a", []byte("ab")))

	b, ok := ss.nextChar()
	c.Assert(ok, qt.IsTrue)
	c.Assert(b, qt.Equals, byte('a'))

	b, ok = ss.nextChar()
	c.Assert(ok, qt.IsTrue)
	c.Assert(b, qt.Equals, byte('b'))

	_, ok = ss.nextChar()
	c.Assert(ok, qt.IsFalse)
	c.Assert(ss.intErr, qt.Equals, ErrNoSource)
}

func TestSourceStackPopsExhaustedSources(t *testing.T) {
	c := qt.New(t)
	var ss sourceStack
	ss.push(newStringSource("outer", []byte("x")))
	ss.push(newStringSource("inner", []byte("")))

	b, ok := ss.nextChar()
	c.Assert(ok, qt.IsTrue)
	c.Assert(b, qt.Equals, byte('x'))
	c.Assert(ss.top().name(), qt.Equals, "outer")
}

func TestUngetPrefersGlobalRingWhenStackEmpty(t *testing.T) {
	c := qt.New(t)
	var ss sourceStack
	ss.ungetChar('z')
	ss.push(newStringSource("s", []byte("y")))

	// The global ring is drained first, ahead of the freshly pushed
	// source, matching the context-level unget semantics.
	b, ok := ss.nextChar()
	c.Assert(ok, qt.IsTrue)
	c.Assert(b, qt.Equals, byte('z'))

	b, ok = ss.nextChar()
	c.Assert(ok, qt.IsTrue)
	c.Assert(b, qt.Equals, byte('y'))
}

func TestStringSourceUngetRewindsCursor(t *testing.T) {
	c := qt.New(t)
	s := newStringSource("s", []byte("ab"))
	b, st := s.readByte()
	c.Assert(st, qt.Equals, sfByte)
	c.Assert(b, qt.Equals, byte('a'))

	c.Assert(s.ungetByte('a'), qt.IsTrue)
	c.Assert(s.pos, qt.Equals, 0)

	b, st = s.readByte()
	c.Assert(st, qt.Equals, sfByte)
	c.Assert(b, qt.Equals, byte('a'))
}

func TestUngetRingCapacity(t *testing.T) {
	c := qt.New(t)
	var r ungotRing
	for i := 0; i < maxUnget; i++ {
		c.Assert(r.push(byte(i)), qt.IsTrue)
	}
	c.Assert(r.push(99), qt.IsFalse)

	for i := maxUnget - 1; i >= 0; i-- {
		b, ok := r.pop()
		c.Assert(ok, qt.IsTrue)
		c.Assert(b, qt.Equals, byte(i))
	}
	_, ok := r.pop()
	c.Assert(ok, qt.IsFalse)
}
