package syntax

import "fmt"

// Visitor holds a Visit method which is invoked for each node
// encountered by Walk. If the result visitor w is not nil, Walk visits
// each of the children of node with the visitor w, followed by a call
// of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

func walkArgs(v Visitor, args []*Arg) {
	for _, a := range args {
		Walk(v, a)
	}
}

func walkRedirects(v Visitor, redirs []Redirect) {
	for _, r := range redirs {
		Walk(v, r)
	}
}

// Walk traverses an AST in depth-first order: it starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor w
// for each of the non-nil children of node, followed by a call of
// w.Visit(nil).
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch x := node.(type) {
	case *Cmd:
		walkArgs(v, x.Assign)
		walkArgs(v, x.Args)
		walkRedirects(v, x.Redirect)
	case *Pipe:
		for _, cmd := range x.Cmds {
			Walk(v, cmd)
		}
	case *Redir:
		if x.Child != nil {
			Walk(v, x.Child)
		}
		walkRedirects(v, x.Redirect)
	case *Binary:
		Walk(v, x.Ch1)
		Walk(v, x.Ch2)
	case *If:
		Walk(v, x.Test)
		Walk(v, x.Then)
		if x.Else != nil {
			Walk(v, x.Else)
		}
	case *For:
		walkArgs(v, x.Args)
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *Case:
		Walk(v, x.Word)
		for _, cl := range x.Clause {
			Walk(v, cl)
		}
	case *CaseClause:
		walkArgs(v, x.Pattern)
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *Defun:
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *Not:
		Walk(v, x.Child)
	case *Arg:
		for _, sub := range x.Backquote {
			Walk(v, sub)
		}
	case *FileRedir:
		if x.Name != nil {
			Walk(v, x.Name)
		}
	case *DupRedir:
		if x.Name != nil {
			Walk(v, x.Name)
		}
	case *Here:
		if x.Body != nil {
			Walk(v, x.Body)
		}
	case *EOFNode:
		// leaf sentinel, no children
	default:
		panic(fmt.Sprintf("syntax: Walk: unexpected node type %T", x))
	}

	v.Visit(nil)
}
