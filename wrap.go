package codeprint

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// delimiters is the width of the pair enclosing a list, e.g. "(" and ")".
const delimiters = 2

// Decide lays out items that sit between a pair of delimiters starting at
// column. Items stay on one line, joined by ", ", when none carries a
// comment, none renders across several lines and the list with its
// delimiters ends at or before [MaxLineWidth]. Otherwise every item goes on
// its own line one level deeper with a trailing comma, and the closing
// delimiter starts a new line at the current depth.
//
// Decide has no state of its own: equal inputs give equal output.
func Decide(p *Printer, items []Node, column int) (string, Layout, error) {
	if len(items) == 0 {
		return "", SingleLine, nil
	}
	if hasComments(items) {
		text, err := Split(p, items)
		return text, MultiLine, err
	}
	single, err := p.CommaSeparated(items)
	if err != nil {
		return "", SingleLine, err
	}
	if fits(column, single, 0) {
		return single, SingleLine, nil
	}
	text, err := Split(p, items)
	return text, MultiLine, err
}

// Split renders items one per line with trailing commas, as Decide does for
// lists that do not fit.
func Split(p *Printer, items []Node) (string, error) {
	text, err := p.CommaSeparatedMultiline(items, true)
	if err != nil {
		return "", err
	}
	return text + p.Newline(), nil
}

func fits(column int, single string, tail int) bool {
	if strings.Contains(single, "\n") {
		return false
	}
	return column+delimiters+runewidth.StringWidth(single)+tail <= MaxLineWidth
}
