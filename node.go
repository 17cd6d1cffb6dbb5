package codeprint

import (
	"fmt"
	"strings"
)

// Node is any element of a generated declaration tree.
type Node interface {
	Comments() []Comment
}

// Stmt is a node that may appear in a statement list or class body.
type Stmt interface {
	Node
	Kind() Kind
}

// Expr is a node that evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// TypeExpr is a type annotation.
type TypeExpr interface {
	Node
	typeNode()
}

// Kind classifies a statement for blank-line grouping.
type Kind int

const (
	KindOther Kind = iota
	KindTraitUse
	KindConst
	KindProperty
	KindMethod
)

var kindNames = map[Kind]string{
	KindOther:    "other",
	KindTraitUse: "trait-use",
	KindConst:    "const",
	KindProperty: "property",
	KindMethod:   "method",
}

// String returns the kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Comment is a leading comment attached to a node, including its markers
// ("// x", "/** x */").
type Comment struct {
	Text string
}

// reformatted returns the comment text with continuation lines of block
// comments re-aligned under the opening marker.
func (c Comment) reformatted() string {
	text := strings.TrimSpace(c.Text)
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "*") {
			line = " " + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Meta carries the data every node shares.
type Meta struct {
	Leading []Comment
}

// Comments returns the comments attached before the node.
func (m Meta) Comments() []Comment { return m.Leading }

// LineComments builds "// text" comments, one per argument.
func LineComments(texts ...string) Meta {
	m := Meta{Leading: make([]Comment, len(texts))}
	for i, t := range texts {
		m.Leading[i] = Comment{Text: "// " + t}
	}
	return m
}

// DocComment builds a Meta holding a single "/** text */" comment.
func DocComment(text string) Meta {
	return Meta{Leading: []Comment{{Text: "/** " + text + " */"}}}
}

// Modifier is a set of declaration modifiers.
type Modifier uint8

const (
	ModPublic Modifier = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModAbstract
	ModFinal
	ModReadonly
)

var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModAbstract, "abstract"},
	{ModFinal, "final"},
	{ModReadonly, "readonly"},
}

// String renders the modifiers in canonical order, each followed by a space.
func (m Modifier) String() string {
	var b strings.Builder
	for _, o := range modifierOrder {
		if m&o.mod != 0 {
			b.WriteString(o.name)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// ParseModifier parses a single modifier keyword.
func ParseModifier(s string) (Modifier, error) {
	for _, o := range modifierOrder {
		if o.name == s {
			return o.mod, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown modifier %q", ErrMalformedTree, s)
}

// --- Declarations ---

// Class is a class declaration.
type Class struct {
	Meta
	Name       string
	Flags      Modifier
	Extends    string
	Implements []string
	AttrGroups []AttrGroup
	Stmts      []Stmt
}

// Kind reports KindOther: a class is never a class member.
func (*Class) Kind() Kind { return KindOther }

// ClassMethod is a method declaration. A nil Body prints as an abstract or
// interface signature terminated by ";".
type ClassMethod struct {
	Meta
	Name       string
	Flags      Modifier
	ByRef      bool
	Params     []*Param
	ReturnType TypeExpr
	AttrGroups []AttrGroup
	Body       *Block
}

func (*ClassMethod) Kind() Kind { return KindMethod }

// Block is a method body.
type Block struct {
	Stmts []Stmt
}

// Body returns a Block holding stmts.
func Body(stmts ...Stmt) *Block {
	return &Block{Stmts: stmts}
}

// Param is a declared function or method parameter.
type Param struct {
	Meta
	Name       string
	Type       TypeExpr
	Flags      Modifier
	ByRef      bool
	Variadic   bool
	Default    Expr
	AttrGroups []AttrGroup
}

// Property declares one or more class fields.
type Property struct {
	Meta
	Flags      Modifier
	Type       TypeExpr
	Props      []*PropertyItem
	AttrGroups []AttrGroup
}

func (*Property) Kind() Kind { return KindProperty }

// PropertyItem is a single field of a Property declaration.
type PropertyItem struct {
	Meta
	Name    string
	Default Expr
}

// ClassConst declares one or more class constants.
type ClassConst struct {
	Meta
	Flags      Modifier
	Consts     []*Const
	AttrGroups []AttrGroup
}

func (*ClassConst) Kind() Kind { return KindConst }

// Const is a single name = value pair of a ClassConst.
type Const struct {
	Meta
	Name  string
	Value Expr
}

// TraitUse imports traits into a class body.
type TraitUse struct {
	Meta
	Traits []string
}

func (*TraitUse) Kind() Kind { return KindTraitUse }

// AttrGroup is a "#[...]" attribute group.
type AttrGroup struct {
	Meta
	Attrs []*Attribute
}

// Attribute is a single attribute of an AttrGroup.
type Attribute struct {
	Meta
	Name string
	Args []*Arg
}

// Attr builds a one-attribute group.
func Attr(name string, args ...*Arg) AttrGroup {
	return AttrGroup{Attrs: []*Attribute{{Name: name, Args: args}}}
}

// --- Statements ---

// Function is a free function declaration.
type Function struct {
	Meta
	Name       string
	ByRef      bool
	Params     []*Param
	ReturnType TypeExpr
	AttrGroups []AttrGroup
	Stmts      []Stmt
}

func (*Function) Kind() Kind { return KindOther }

// Expression is an expression statement.
type Expression struct {
	Meta
	Expr Expr
}

func (*Expression) Kind() Kind { return KindOther }

// Return is a return statement; Expr may be nil.
type Return struct {
	Meta
	Expr Expr
}

func (*Return) Kind() Kind { return KindOther }

// For is a three-clause loop.
type For struct {
	Meta
	Init  []Expr
	Cond  []Expr
	Loop  []Expr
	Stmts []Stmt
}

func (*For) Kind() Kind { return KindOther }

// Nop produces no code of its own. It exists to carry comments.
type Nop struct {
	Meta
}

func (*Nop) Kind() Kind { return KindOther }

// --- Expressions ---

// Arg is a call argument.
type Arg struct {
	Meta
	Value  Expr
	Unpack bool
}

// Args wraps values as call arguments.
func Args(values ...Expr) []*Arg {
	args := make([]*Arg, len(values))
	for i, v := range values {
		args[i] = &Arg{Value: v}
	}
	return args
}

// Variable is "$name".
type Variable struct {
	Meta
	Name string
}

// String is a single-quoted string literal.
type String struct {
	Meta
	Value string
}

// Int is an integer literal.
type Int struct {
	Meta
	Value int64
}

// ConstFetch references a constant such as null, true or PHP_EOL.
type ConstFetch struct {
	Meta
	Name string
}

// FuncCall is "name(args)".
type FuncCall struct {
	Meta
	Name string
	Args []*Arg
}

// MethodCall is "$var->name(args)".
type MethodCall struct {
	Meta
	Var  Expr
	Name string
	Args []*Arg
}

// PropertyFetch is "$var->name".
type PropertyFetch struct {
	Meta
	Var  Expr
	Name string
}

// Assign is "var = expr".
type Assign struct {
	Meta
	Var  Expr
	Expr Expr
}

// Array is a short array literal.
type Array struct {
	Meta
	Items []*ArrayItem
}

// ArrayItem is a single array element; Key may be nil.
type ArrayItem struct {
	Meta
	Key   Expr
	Value Expr
}

func (*Variable) exprNode()      {}
func (*String) exprNode()        {}
func (*Int) exprNode()           {}
func (*ConstFetch) exprNode()    {}
func (*FuncCall) exprNode()      {}
func (*MethodCall) exprNode()    {}
func (*PropertyFetch) exprNode() {}
func (*Assign) exprNode()        {}
func (*Array) exprNode()         {}

// --- Types ---

// Ident is a named type.
type Ident struct {
	Meta
	Name string
}

// NullableType is "?type".
type NullableType struct {
	Meta
	Type TypeExpr
}

// UnionType is "a|b".
type UnionType struct {
	Meta
	Types []TypeExpr
}

func (*Ident) typeNode()        {}
func (*NullableType) typeNode() {}
func (*UnionType) typeNode()    {}

// ParseType builds a type annotation from its source form. An empty string
// yields nil.
func ParseType(s string) TypeExpr {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil
	case strings.Contains(s, "|"):
		parts := strings.Split(s, "|")
		u := &UnionType{Types: make([]TypeExpr, 0, len(parts))}
		for _, part := range parts {
			u.Types = append(u.Types, ParseType(part))
		}
		return u
	case strings.HasPrefix(s, "?"):
		return &NullableType{Type: ParseType(s[1:])}
	default:
		return &Ident{Name: s}
	}
}
