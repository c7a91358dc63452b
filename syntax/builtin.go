package syntax

import "strings"

// builtinFlag mirrors the bit layout of builtin.c's "flags" column: bit 0
// is special, bit 1 is regular, bit 2 is assignment-preserving.
type builtinFlag uint8

const (
	bltinSpecial builtinFlag = 1 << iota
	bltinRegular
	bltinAssign
)

type builtinCmd struct {
	name  string
	flags builtinFlag
}

// builtins is sorted by name (ASCII, case-insensitively) so lookupBuiltin
// can binary search it, exactly as builtin.c's bsearch/bltin_compare
// does.
var builtins = []builtinCmd{
	{".", bltinSpecial | bltinRegular},
	{":", bltinSpecial | bltinRegular},
	{"[", 0},
	{"alias", bltinRegular | bltinAssign},
	{"bg", bltinRegular},
	{"break", bltinSpecial | bltinRegular},
	{"cd", bltinRegular},
	{"chdir", 0},
	{"command", bltinRegular},
	{"continue", bltinSpecial | bltinRegular},
	{"echo", 0},
	{"eval", bltinSpecial | bltinRegular},
	{"exec", bltinSpecial | bltinRegular},
	{"exit", bltinSpecial | bltinRegular},
	{"export", bltinSpecial | bltinRegular | bltinAssign},
	{"false", bltinRegular},
	{"fg", bltinRegular},
	{"getopts", bltinRegular},
	{"hash", bltinRegular},
	{"jobs", bltinRegular},
	{"kill", bltinRegular},
	{"local", bltinSpecial | bltinRegular | bltinAssign},
	{"printf", 0},
	{"pwd", bltinRegular},
	{"read", bltinRegular},
	{"readonly", bltinSpecial | bltinRegular | bltinAssign},
	{"return", bltinSpecial | bltinRegular},
	{"set", bltinSpecial | bltinRegular},
	{"shift", bltinSpecial | bltinRegular},
	{"test", 0},
	{"times", bltinSpecial | bltinRegular},
	{"trap", bltinSpecial | bltinRegular},
	{"true", bltinRegular},
	{"type", bltinRegular},
	{"ulimit", bltinRegular},
	{"umask", bltinRegular},
	{"unalias", bltinRegular},
	{"unset", bltinSpecial | bltinRegular},
	{"wait", bltinRegular},
}

// lookupBuiltin performs the case-insensitive binary search find_builtin
// does; it returns (entry, true) on a hit.
func lookupBuiltin(name string) (builtinCmd, bool) {
	lo, hi := 0, len(builtins)
	for lo < hi {
		mid := (lo + hi) / 2
		c := strings.Compare(strings.ToLower(builtins[mid].name), strings.ToLower(name))
		switch {
		case c == 0:
			return builtins[mid], true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return builtinCmd{}, false
}

// isSpecialBuiltin is the only predicate the parser consults: a function
// definition whose name collides with a special builtin is a parse error,
// because a special builtin's semantics can never be shadowed by a
// function.
func isSpecialBuiltin(name string) bool {
	b, ok := lookupBuiltin(name)
	return ok && b.flags&bltinSpecial != 0
}
