package codeprint

import (
	"fmt"
	"strings"
)

// Separated reports whether a body's members are set apart by blank lines.
// That is the case as soon as one member is a trait use, constant, property
// or method.
func Separated(members []Stmt) bool {
	for _, m := range members {
		if m == nil {
			continue
		}
		switch m.Kind() {
		case KindTraitUse, KindConst, KindProperty, KindMethod:
			return true
		}
	}
	return false
}

// SplitStmts renders members with one blank line between consecutive
// members. Comments sit right above their member, after the blank line. A Nop
// contributes only its comments.
func SplitStmts(p *Printer, members []Stmt) (string, error) {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		if m == nil {
			return "", fmt.Errorf("%w: nil statement", ErrMalformedTree)
		}
		var b strings.Builder
		if cs := m.Comments(); len(cs) > 0 {
			b.WriteString(p.Newline())
			b.WriteString(p.Comments(cs))
		}
		if _, ok := m.(*Nop); !ok {
			text, err := p.Render(m)
			if err != nil {
				return "", err
			}
			b.WriteString(p.Newline())
			b.WriteString(text)
		}
		if b.Len() > 0 {
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, "\n"), nil
}
