package syntax

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestContextNextCommandYieldsEachTopLevelCommand(t *testing.T) {
	c := qt.New(t)
	ctx := NewContext()
	defer ctx.Close()
	ctx.PushString("test", []byte("echo a\necho b\n"))

	n1 := ctx.NextCommand()
	c.Assert(IsEOF(n1), qt.IsFalse)
	cmd1, ok := n1.(*Cmd)
	c.Assert(ok, qt.IsTrue)
	c.Assert(len(cmd1.Args), qt.Equals, 2)

	n2 := ctx.NextCommand()
	c.Assert(IsEOF(n2), qt.IsFalse)
	_, ok = n2.(*Cmd)
	c.Assert(ok, qt.IsTrue)

	n3 := ctx.NextCommand()
	c.Assert(IsEOF(n3), qt.IsTrue)
}

func TestContextErrStringEmptyOnSuccess(t *testing.T) {
	c := qt.New(t)
	ctx := NewContext()
	defer ctx.Close()
	ctx.PushString("test", []byte("true\n"))
	ctx.NextCommand()
	c.Assert(ctx.ErrString(), qt.Equals, "")
}

func TestContextErrStringOnMalformedInput(t *testing.T) {
	c := qt.New(t)
	ctx := NewContext()
	defer ctx.Close()
	ctx.PushString("test", []byte("if true\n"))
	ctx.NextCommand()
	c.Assert(ctx.ErrString(), qt.Not(qt.Equals), "")
}

func TestContextPushFileAndClose(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "script.sh")
	c.Assert(os.WriteFile(path, []byte("true\n"), 0o644), qt.IsNil)

	ctx := NewContext()
	c.Assert(ctx.PushFile(path), qt.IsNil)
	n := ctx.NextCommand()
	c.Assert(IsEOF(n), qt.IsFalse)
	c.Assert(ctx.Close(), qt.IsNil)
}

func TestParseFilesReturnsOneResultPerInputInOrder(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	var paths []string
	for i, body := range []string{"true\n", "false\n", "echo hi\n"} {
		p := filepath.Join(dir, string(rune('a'+i))+".sh")
		c.Assert(os.WriteFile(p, []byte(body), 0o644), qt.IsNil)
		paths = append(paths, p)
	}

	results, err := ParseFiles(paths)
	c.Assert(err, qt.IsNil)
	c.Assert(len(results), qt.Equals, 3)
	c.Assert(len(results[0]), qt.Equals, 1)
	c.Assert(len(results[1]), qt.Equals, 1)
	c.Assert(len(results[2]), qt.Equals, 1)
}

func TestParseFilesPropagatesSyntaxErrors(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.sh")
	c.Assert(os.WriteFile(path, []byte("if true\n"), 0o644), qt.IsNil)

	_, err := ParseFiles([]string{path})
	c.Assert(err, qt.Not(qt.IsNil))
}
