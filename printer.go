package codeprint

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

// Formatting constants.
const (
	MaxLineWidth = 120
	IndentWidth  = 4
)

// Layout is the rendering choice for a delimited list.
type Layout int

const (
	SingleLine Layout = iota
	MultiLine
)

// String returns the layout name.
func (l Layout) String() string {
	if l == MultiLine {
		return "multi-line"
	}
	return "single-line"
}

// Hooks are the points where layout policy replaces generic rendering.
// Everything else a Printer renders passes through unmodified.
type Hooks interface {
	// ParamList renders the parameters between a declaration's parentheses.
	// column is the column where "(" starts; tail is the width of the text
	// that must follow ")" on the same line.
	ParamList(p *Printer, params []Node, column, tail int) (string, Layout, error)

	// Stmts renders a body's members. Every member begins with a newline at
	// the printer's current depth.
	Stmts(p *Printer, stmts []Stmt) (string, error)
}

// Trailer is an optional Hooks extension. Its text is appended after every
// printed class.
type Trailer interface {
	ClassTrailer() string
}

// Printer renders nodes to text one at a time, tracking indentation depth.
// A Printer is not safe for concurrent use.
type Printer struct {
	hooks  Hooks
	logger *log.Logger
	depth  int
}

// NewPrinter returns a Printer using hooks. A nil hooks value selects
// [Standard].
func NewPrinter(hooks Hooks, logger *log.Logger) *Printer {
	if hooks == nil {
		hooks = Standard{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Printer{hooks: hooks, logger: logger}
}

// Logger returns the printer's logger.
func (p *Printer) Logger() *log.Logger { return p.logger }

// Depth returns the current nesting depth.
func (p *Printer) Depth() int { return p.depth }

// PrettyPrint renders a top-level statement list.
func (p *Printer) PrettyPrint(stmts []Stmt) (string, error) {
	p.depth = 0
	out, err := p.hooks.Stmts(p, stmts)
	if err != nil {
		return "", err
	}
	return strings.TrimLeft(out, " \t\r\n"), nil
}

// Nested runs fn one level deeper. The depth is restored however fn exits.
func (p *Printer) Nested(fn func() error) error {
	p.depth++
	defer func() { p.depth-- }()
	return fn()
}

// Newline returns a line break followed by the current indentation.
func (p *Printer) Newline() string {
	return "\n" + strings.Repeat(" ", p.depth*IndentWidth)
}

// Column returns the column at which text following prefix starts, when
// prefix is written at the beginning of an indented line.
func (p *Printer) Column(prefix string) int {
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		return runewidth.StringWidth(prefix[i+1:])
	}
	return p.depth*IndentWidth + runewidth.StringWidth(prefix)
}

// Comments renders comment lines separated by newlines at the current depth.
func (p *Printer) Comments(comments []Comment) string {
	nl := p.Newline()
	lines := make([]string, len(comments))
	for i, c := range comments {
		lines[i] = strings.ReplaceAll(c.reformatted(), "\n", nl)
	}
	return strings.Join(lines, nl)
}

// CommaSeparated renders nodes joined by ", ".
func (p *Printer) CommaSeparated(nodes []Node) (string, error) {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := p.Render(n)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// CommaSeparatedMultiline renders one node per line one level deeper, each
// preceded by its comments. The result starts with a newline and does not
// end with one.
func (p *Printer) CommaSeparatedMultiline(nodes []Node, trailingComma bool) (string, error) {
	var b strings.Builder
	err := p.Nested(func() error {
		for i, n := range nodes {
			if n == nil {
				return fmt.Errorf("%w: nil list item", ErrMalformedTree)
			}
			if cs := n.Comments(); len(cs) > 0 {
				b.WriteString(p.Newline())
				b.WriteString(p.Comments(cs))
			}
			s, err := p.Render(n)
			if err != nil {
				return err
			}
			b.WriteString(p.Newline())
			b.WriteString(s)
			if trailingComma || i < len(nodes)-1 {
				b.WriteByte(',')
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// MaybeMultiline renders nodes inline unless one of them carries a comment.
func (p *Printer) MaybeMultiline(nodes []Node, trailingComma bool) (string, error) {
	if !hasComments(nodes) {
		return p.CommaSeparated(nodes)
	}
	s, err := p.CommaSeparatedMultiline(nodes, trailingComma)
	if err != nil {
		return "", err
	}
	return s + p.Newline(), nil
}

// CompactStmts renders members one per line with comments directly above
// them. A Nop contributes only its comments.
func (p *Printer) CompactStmts(stmts []Stmt) (string, error) {
	var b strings.Builder
	for _, s := range stmts {
		if s == nil {
			return "", fmt.Errorf("%w: nil statement", ErrMalformedTree)
		}
		if cs := s.Comments(); len(cs) > 0 {
			b.WriteString(p.Newline())
			b.WriteString(p.Comments(cs))
			if _, ok := s.(*Nop); ok {
				continue
			}
		}
		text, err := p.Render(s)
		if err != nil {
			return "", err
		}
		b.WriteString(p.Newline())
		b.WriteString(text)
	}
	return b.String(), nil
}

func (p *Printer) body(stmts []Stmt) (string, error) {
	var out string
	err := p.Nested(func() error {
		var err error
		out, err = p.hooks.Stmts(p, stmts)
		return err
	})
	return out, err
}

func (p *Printer) attrGroups(groups []AttrGroup, inline bool) (string, error) {
	var b strings.Builder
	for i := range groups {
		s, err := p.Render(&groups[i])
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		if inline {
			b.WriteByte(' ')
		} else {
			b.WriteString(p.Newline())
		}
	}
	return b.String(), nil
}

// Render renders a single node at the current depth.
func (p *Printer) Render(n Node) (string, error) {
	switch n := n.(type) {
	case *Class:
		return p.class(n)
	case *ClassMethod:
		return p.classMethod(n)
	case *Function:
		return p.function(n)
	case *Property:
		return p.property(n)
	case *PropertyItem:
		return p.propertyItem(n)
	case *ClassConst:
		return p.classConst(n)
	case *Const:
		return p.constant(n)
	case *TraitUse:
		if len(n.Traits) == 0 {
			return "", fmt.Errorf("%w: trait use without traits", ErrMalformedTree)
		}
		return "use " + strings.Join(n.Traits, ", ") + ";", nil
	case *Param:
		return p.param(n)
	case *AttrGroup:
		return p.attrGroup(n)
	case *Attribute:
		return p.attribute(n)
	case *Expression:
		s, err := p.expr(n.Expr)
		if err != nil {
			return "", err
		}
		return s + ";", nil
	case *Return:
		if n.Expr == nil {
			return "return;", nil
		}
		s, err := p.expr(n.Expr)
		if err != nil {
			return "", err
		}
		return "return " + s + ";", nil
	case *For:
		return p.forLoop(n)
	case *Nop:
		return "", nil
	case *Arg:
		return p.arg(n)
	case *ArrayItem:
		return p.arrayItem(n)
	case Expr:
		return p.expr(n)
	case TypeExpr:
		return p.typeExpr(n)
	case nil:
		return "", fmt.Errorf("%w: nil node", ErrMalformedTree)
	default:
		return "", fmt.Errorf("%w: unsupported node %T", ErrMalformedTree, n)
	}
}

func (p *Printer) class(n *Class) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: nil class", ErrMalformedTree)
	}
	attrs, err := p.attrGroups(n.AttrGroups, false)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(attrs)
	b.WriteString(n.Flags.String())
	b.WriteString("class")
	if n.Name != "" {
		b.WriteString(" " + n.Name)
	}
	if n.Extends != "" {
		b.WriteString(" extends " + n.Extends)
	}
	if len(n.Implements) > 0 {
		b.WriteString(" implements " + strings.Join(n.Implements, ", "))
	}
	body, err := p.body(n.Stmts)
	if err != nil {
		return "", fmt.Errorf("class %s: %w", n.Name, err)
	}
	b.WriteString(p.Newline() + "{" + body + p.Newline() + "}")
	if t, ok := p.hooks.(Trailer); ok {
		b.WriteString(t.ClassTrailer())
	}
	return b.String(), nil
}

// signature renders "prefix(params)returnType" and reports the parameter
// layout.
func (p *Printer) signature(prefix string, params []*Param, returnType TypeExpr) (string, Layout, error) {
	ret := ""
	if returnType != nil {
		t, err := p.typeExpr(returnType)
		if err != nil {
			return "", SingleLine, err
		}
		ret = ": " + t
	}
	list, layout, err := p.hooks.ParamList(p, nodes(params), p.Column(prefix), runewidth.StringWidth(ret))
	if err != nil {
		return "", SingleLine, err
	}
	return prefix + "(" + list + ")" + ret, layout, nil
}

// opener places "{" after a signature: on its own line after a single-line
// parameter list, on the closing-paren line after a wrapped one.
func (p *Printer) opener(layout Layout) string {
	if layout == MultiLine {
		return " {"
	}
	return p.Newline() + "{"
}

func (p *Printer) classMethod(n *ClassMethod) (string, error) {
	if n.Name == "" {
		return "", fmt.Errorf("%w: method without name", ErrMalformedTree)
	}
	attrs, err := p.attrGroups(n.AttrGroups, false)
	if err != nil {
		return "", err
	}
	prefix := attrs + n.Flags.String() + "function " + ref(n.ByRef) + n.Name
	sig, layout, err := p.signature(prefix, n.Params, n.ReturnType)
	if err != nil {
		return "", fmt.Errorf("method %s: %w", n.Name, err)
	}
	if n.Body == nil {
		return sig + ";", nil
	}
	body, err := p.body(n.Body.Stmts)
	if err != nil {
		return "", fmt.Errorf("method %s: %w", n.Name, err)
	}
	return sig + p.opener(layout) + body + p.Newline() + "}", nil
}

func (p *Printer) function(n *Function) (string, error) {
	if n.Name == "" {
		return "", fmt.Errorf("%w: function without name", ErrMalformedTree)
	}
	attrs, err := p.attrGroups(n.AttrGroups, false)
	if err != nil {
		return "", err
	}
	sig, layout, err := p.signature(attrs+"function "+ref(n.ByRef)+n.Name, n.Params, n.ReturnType)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", n.Name, err)
	}
	body, err := p.body(n.Stmts)
	if err != nil {
		return "", fmt.Errorf("function %s: %w", n.Name, err)
	}
	return sig + p.opener(layout) + body + p.Newline() + "}", nil
}

func (p *Printer) property(n *Property) (string, error) {
	if len(n.Props) == 0 {
		return "", fmt.Errorf("%w: property without items", ErrMalformedTree)
	}
	attrs, err := p.attrGroups(n.AttrGroups, false)
	if err != nil {
		return "", err
	}
	mods := n.Flags.String()
	if mods == "" {
		mods = "var "
	}
	typ := ""
	if n.Type != nil {
		if typ, err = p.typeExpr(n.Type); err != nil {
			return "", err
		}
		typ += " "
	}
	items, err := p.CommaSeparated(nodes(n.Props))
	if err != nil {
		return "", err
	}
	return attrs + mods + typ + items + ";", nil
}

func (p *Printer) propertyItem(n *PropertyItem) (string, error) {
	if n.Default == nil {
		return "$" + n.Name, nil
	}
	def, err := p.expr(n.Default)
	if err != nil {
		return "", err
	}
	return "$" + n.Name + " = " + def, nil
}

func (p *Printer) classConst(n *ClassConst) (string, error) {
	if len(n.Consts) == 0 {
		return "", fmt.Errorf("%w: const without items", ErrMalformedTree)
	}
	attrs, err := p.attrGroups(n.AttrGroups, false)
	if err != nil {
		return "", err
	}
	items, err := p.CommaSeparated(nodes(n.Consts))
	if err != nil {
		return "", err
	}
	return attrs + n.Flags.String() + "const " + items + ";", nil
}

func (p *Printer) constant(n *Const) (string, error) {
	if n.Value == nil {
		return "", fmt.Errorf("%w: const %s without value", ErrMalformedTree, n.Name)
	}
	v, err := p.expr(n.Value)
	if err != nil {
		return "", err
	}
	return n.Name + " = " + v, nil
}

func (p *Printer) param(n *Param) (string, error) {
	if n.Name == "" {
		return "", fmt.Errorf("%w: parameter without name", ErrMalformedTree)
	}
	attrs, err := p.attrGroups(n.AttrGroups, true)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(attrs)
	b.WriteString(n.Flags.String())
	if n.Type != nil {
		t, err := p.typeExpr(n.Type)
		if err != nil {
			return "", err
		}
		b.WriteString(t + " ")
	}
	b.WriteString(ref(n.ByRef))
	if n.Variadic {
		b.WriteString("...")
	}
	b.WriteString("$" + n.Name)
	if n.Default != nil {
		def, err := p.expr(n.Default)
		if err != nil {
			return "", err
		}
		b.WriteString(" = " + def)
	}
	return b.String(), nil
}

func (p *Printer) attrGroup(n *AttrGroup) (string, error) {
	attrs, err := p.CommaSeparated(nodes(n.Attrs))
	if err != nil {
		return "", err
	}
	return "#[" + attrs + "]", nil
}

func (p *Printer) attribute(n *Attribute) (string, error) {
	if len(n.Args) == 0 {
		return n.Name, nil
	}
	args, err := p.MaybeMultiline(nodes(n.Args), true)
	if err != nil {
		return "", err
	}
	return n.Name + "(" + args + ")", nil
}

func (p *Printer) forLoop(n *For) (string, error) {
	init, err := p.CommaSeparated(nodes(n.Init))
	if err != nil {
		return "", err
	}
	cond, err := p.CommaSeparated(nodes(n.Cond))
	if err != nil {
		return "", err
	}
	loop, err := p.CommaSeparated(nodes(n.Loop))
	if err != nil {
		return "", err
	}
	body, err := p.body(n.Stmts)
	if err != nil {
		return "", err
	}
	return "for (" + init + ";" + space(cond) + ";" + space(loop) + ") {" + body + p.Newline() + "}", nil
}

func (p *Printer) arg(n *Arg) (string, error) {
	v, err := p.expr(n.Value)
	if err != nil {
		return "", err
	}
	if n.Unpack {
		return "..." + v, nil
	}
	return v, nil
}

func (p *Printer) arrayItem(n *ArrayItem) (string, error) {
	v, err := p.expr(n.Value)
	if err != nil {
		return "", err
	}
	if n.Key == nil {
		return v, nil
	}
	k, err := p.expr(n.Key)
	if err != nil {
		return "", err
	}
	return k + " => " + v, nil
}

func (p *Printer) expr(e Expr) (string, error) {
	switch e := e.(type) {
	case *Variable:
		return "$" + e.Name, nil
	case *String:
		return quote(e.Value), nil
	case *Int:
		return strconv.FormatInt(e.Value, 10), nil
	case *ConstFetch:
		return e.Name, nil
	case *FuncCall:
		args, err := p.MaybeMultiline(nodes(e.Args), false)
		if err != nil {
			return "", err
		}
		return e.Name + "(" + args + ")", nil
	case *MethodCall:
		v, err := p.expr(e.Var)
		if err != nil {
			return "", err
		}
		args, err := p.MaybeMultiline(nodes(e.Args), false)
		if err != nil {
			return "", err
		}
		return v + "->" + e.Name + "(" + args + ")", nil
	case *PropertyFetch:
		v, err := p.expr(e.Var)
		if err != nil {
			return "", err
		}
		return v + "->" + e.Name, nil
	case *Assign:
		v, err := p.expr(e.Var)
		if err != nil {
			return "", err
		}
		x, err := p.expr(e.Expr)
		if err != nil {
			return "", err
		}
		return v + " = " + x, nil
	case *Array:
		items, err := p.MaybeMultiline(nodes(e.Items), true)
		if err != nil {
			return "", err
		}
		return "[" + items + "]", nil
	case nil:
		return "", fmt.Errorf("%w: nil expression", ErrMalformedTree)
	default:
		return "", fmt.Errorf("%w: unsupported expression %T", ErrMalformedTree, e)
	}
}

func (p *Printer) typeExpr(t TypeExpr) (string, error) {
	switch t := t.(type) {
	case *Ident:
		return t.Name, nil
	case *NullableType:
		inner, err := p.typeExpr(t.Type)
		if err != nil {
			return "", err
		}
		return "?" + inner, nil
	case *UnionType:
		parts := make([]string, len(t.Types))
		for i, sub := range t.Types {
			s, err := p.typeExpr(sub)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, "|"), nil
	case nil:
		return "", fmt.Errorf("%w: nil type", ErrMalformedTree)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrMalformedTree, t)
	}
}

func nodes[T Node](xs []T) []Node {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func hasComments(ns []Node) bool {
	for _, n := range ns {
		if n != nil && len(n.Comments()) > 0 {
			return true
		}
	}
	return false
}

func ref(byRef bool) string {
	if byRef {
		return "&"
	}
	return ""
}

func space(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}
