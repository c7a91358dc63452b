package syntax

// Raw decodes a's control-byte-encoded Text back into an approximate
// literal spelling, for diagnostics and dumps. It is not a substitute for
// expansion: parameter expansions are rendered as "${name...}", command
// substitutions as "$(...)" placeholders (the substituted command tree
// itself is reachable via a.Backquote, not reproduced here), and
// arithmetic expansions as "$((...))" with their opaque body intact.
func Raw(a *Arg) string {
	if a == nil {
		return ""
	}
	text := trimNUL(a.Text)
	var out []byte
	backq := 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch b {
		case ctlESC:
			i++
			if i < len(text) {
				out = append(out, text[i])
			}
		case ctlQUOTEMARK:
			// quote boundary marker, carries no text of its own
		case ctlVAR:
			i++ // skip the subtype byte; its detail isn't rendered
			out = append(out, '$', '{')
			for i+1 < len(text) && text[i+1] != ctlENDVAR && isNameOrOperand(text[i+1]) {
				i++
				if text[i] == '=' {
					// name/operand separator, not part of either
					continue
				}
				out = append(out, text[i])
			}
			if i+1 < len(text) && text[i+1] == ctlENDVAR {
				i++
			}
			out = append(out, '}')
		case ctlENDVAR:
			// stray closer with no matching ctlVAR walked above; ignore
		case ctlBACKQ:
			out = append(out, []byte("$(...)")...)
			backq++
		case ctlARI:
			out = append(out, []byte("$((")...)
			for i+1 < len(text) && text[i+1] != ctlENDARI {
				i++
				out = append(out, text[i])
			}
			if i+1 < len(text) && text[i+1] == ctlENDARI {
				i++
			}
			out = append(out, []byte("))")...)
		default:
			out = append(out, b)
		}
	}
	return string(out)
}

// isNameOrOperand reports whether b can appear inside a "${...}" body as
// rendered by Raw: any byte that is not a control byte.
func isNameOrOperand(b byte) bool {
	return nameCont(b) || !isCtlByte(b)
}
