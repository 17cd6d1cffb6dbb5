package codeprint

// Standard is the generic hook set: parameters stay inline unless one of them
// carries a comment, and bodies are compact.
type Standard struct{}

// ParamList renders params inline, or one per line when a parameter has a
// comment.
func (Standard) ParamList(p *Printer, params []Node, _, _ int) (string, Layout, error) {
	text, err := p.MaybeMultiline(params, true)
	if err != nil {
		return "", SingleLine, err
	}
	if hasComments(params) {
		return text, MultiLine, nil
	}
	return text, SingleLine, nil
}

// Stmts renders stmts compactly.
func (Standard) Stmts(p *Printer, stmts []Stmt) (string, error) {
	return p.CompactStmts(stmts)
}

// Extended layers the code-generation style over Next: parameter lists wrap
// at [MaxLineWidth], class bodies with declarations get blank lines between
// members, and every class is followed by an empty line.
type Extended struct {
	Next Hooks
}

var _ Trailer = Extended{}

func (e Extended) next() Hooks {
	if e.Next == nil {
		return Standard{}
	}
	return e.Next
}

// ParamList wraps params when they carry comments or when the full
// signature line, including the text after ")", would not fit.
func (e Extended) ParamList(p *Printer, params []Node, column, tail int) (string, Layout, error) {
	text, layout, err := Decide(p, params, column)
	if err != nil {
		return "", SingleLine, err
	}
	if layout == SingleLine && len(params) > 0 && !fits(column, text, tail) {
		if text, err = Split(p, params); err != nil {
			return "", SingleLine, err
		}
		layout = MultiLine
	}
	if layout == MultiLine {
		p.Logger().Debug("wrapped parameter list", "params", len(params), "column", column)
	}
	return text, layout, nil
}

// Stmts separates members with blank lines when [Separated] says so and
// defers to Next otherwise.
func (e Extended) Stmts(p *Printer, stmts []Stmt) (string, error) {
	if Separated(stmts) {
		p.Logger().Debug("separating body members", "members", len(stmts), "depth", p.Depth())
		return SplitStmts(p, stmts)
	}
	return e.next().Stmts(p, stmts)
}

// ClassTrailer returns the newline that leaves an empty line after a class.
func (Extended) ClassTrailer() string { return "\n" }
