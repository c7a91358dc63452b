package syntax

import (
	"fmt"
	"io"
)

// Dump writes an indented tree representation of node to w, one line per
// node, primarily useful for inspecting how a script was parsed.
func Dump(w io.Writer, node Node) {
	Walk(&dumper{w: w}, node)
}

type dumper struct {
	w     io.Writer
	depth int
}

func (d *dumper) Visit(node Node) Visitor {
	if node == nil {
		return nil
	}
	fmt.Fprintf(d.w, "%*s%s%s\n", d.depth*2, "", node.Kind(), dumpDetail(node))
	return &dumper{w: d.w, depth: d.depth + 1}
}

// dumpDetail returns a short, node-specific annotation appended after the
// node kind on its Dump line.
func dumpDetail(node Node) string {
	switch x := node.(type) {
	case *Cmd:
		if len(x.Args) > 0 {
			return " " + Raw(x.Args[0])
		}
	case *Arg:
		return " " + Raw(x)
	case *Defun:
		return " " + x.Name
	case *For:
		return " " + x.Var
	case *Binary:
		return " " + x.Op.String()
	case *Pipe:
		if x.Background {
			return " &"
		}
	case *Redir:
		if x.Subshell {
			return " (subshell)"
		}
	case *FileRedir:
		return fmt.Sprintf(" fd=%d %s", x.FdNum, x.Op)
	case *DupRedir:
		arrow := "<&"
		if x.Op == DupTo {
			arrow = ">&"
		}
		return fmt.Sprintf(" fd=%d %s", x.FdNum, arrow)
	case *Here:
		return " <<" + x.Delim
	}
	return ""
}
