// dashdump parses POSIX/dash-dialect shell scripts and prints their
// parsed command trees. It exercises nothing beyond syntax: alias
// expansion, arithmetic evaluation, word expansion and execution are all
// out of scope for the package it drives.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/nimbleshell/dashparse/syntax"
)

var command = flag.String("c", "", "parse this command string instead of reading files")

func main() {
	os.Exit(main1())
}

func main1() int {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run() error {
	if *command != "" {
		return dumpSource("cmd", []byte(*command))
	}
	if flag.NArg() == 0 {
		return dumpStdin()
	}
	for _, path := range flag.Args() {
		if err := dumpPath(path); err != nil {
			return err
		}
	}
	return nil
}

func dumpStdin() error {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "reading shell source from stdin (Ctrl-D to end)")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	ctx := syntax.NewContext()
	defer ctx.Close()
	ctx.PushString("<stdin>", data)
	return drain(ctx)
}

func dumpPath(path string) error {
	ctx := syntax.NewContext()
	defer ctx.Close()
	if err := ctx.PushFile(path); err != nil {
		return err
	}
	return drain(ctx)
}

func dumpSource(name string, data []byte) error {
	ctx := syntax.NewContext()
	defer ctx.Close()
	ctx.PushString(name, data)
	return drain(ctx)
}

// drain calls NextCommand until EOF, dumping each top-level command tree
// as it's produced and stopping at the first syntax error.
func drain(ctx *syntax.Context) error {
	for {
		n := ctx.NextCommand()
		if msg := ctx.ErrString(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		if syntax.IsEOF(n) {
			return nil
		}
		syntax.Dump(os.Stdout, n)
	}
}
