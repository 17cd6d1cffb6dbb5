package codeprint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// document is the declarative form of a generated class.
type document struct {
	Class *classDoc `yaml:"class" json:"class" toml:"class"`
}

type classDoc struct {
	Name       string      `yaml:"name" json:"name" toml:"name"`
	Modifiers  []string    `yaml:"modifiers" json:"modifiers" toml:"modifiers"`
	Extends    string      `yaml:"extends" json:"extends" toml:"extends"`
	Implements []string    `yaml:"implements" json:"implements" toml:"implements"`
	Attributes []string    `yaml:"attributes" json:"attributes" toml:"attributes"`
	Comments   []string    `yaml:"comments" json:"comments" toml:"comments"`
	Members    []memberDoc `yaml:"members" json:"members" toml:"members"`
}

type memberDoc struct {
	Kind       string     `yaml:"kind" json:"kind" toml:"kind"`
	Name       string     `yaml:"name" json:"name" toml:"name"`
	Modifiers  []string   `yaml:"modifiers" json:"modifiers" toml:"modifiers"`
	Attributes []string   `yaml:"attributes" json:"attributes" toml:"attributes"`
	Comments   []string   `yaml:"comments" json:"comments" toml:"comments"`
	Type       string     `yaml:"type" json:"type" toml:"type"`
	Returns    string     `yaml:"returns" json:"returns" toml:"returns"`
	ByRef      bool       `yaml:"by_ref" json:"by_ref" toml:"by_ref"`
	Params     []paramDoc `yaml:"params" json:"params" toml:"params"`
	Body       []stmtDoc  `yaml:"body" json:"body" toml:"body"`
	Traits     []string   `yaml:"traits" json:"traits" toml:"traits"`
	Value      *valueDoc  `yaml:"value" json:"value" toml:"value"`
}

type paramDoc struct {
	Name       string    `yaml:"name" json:"name" toml:"name"`
	Type       string    `yaml:"type" json:"type" toml:"type"`
	Modifiers  []string  `yaml:"modifiers" json:"modifiers" toml:"modifiers"`
	Attributes []string  `yaml:"attributes" json:"attributes" toml:"attributes"`
	Comments   []string  `yaml:"comments" json:"comments" toml:"comments"`
	ByRef      bool      `yaml:"by_ref" json:"by_ref" toml:"by_ref"`
	Variadic   bool      `yaml:"variadic" json:"variadic" toml:"variadic"`
	Default    *valueDoc `yaml:"default" json:"default" toml:"default"`
}

type stmtDoc struct {
	Comments []string   `yaml:"comments" json:"comments" toml:"comments"`
	Call     string     `yaml:"call" json:"call" toml:"call"`
	Args     []valueDoc `yaml:"args" json:"args" toml:"args"`
	Var      string     `yaml:"var" json:"var" toml:"var"`
	Assign   *assignDoc `yaml:"assign" json:"assign" toml:"assign"`
	Return   *valueDoc  `yaml:"return" json:"return" toml:"return"`
	Nop      bool       `yaml:"nop" json:"nop" toml:"nop"`
}

type assignDoc struct {
	Var      string   `yaml:"var" json:"var" toml:"var"`
	Property string   `yaml:"property" json:"property" toml:"property"`
	Value    valueDoc `yaml:"value" json:"value" toml:"value"`
}

// valueDoc holds exactly one of its fields. Property reads "$this->name".
type valueDoc struct {
	String   *string `yaml:"string" json:"string" toml:"string"`
	Int      *int64  `yaml:"int" json:"int" toml:"int"`
	Const    string  `yaml:"const" json:"const" toml:"const"`
	Var      string  `yaml:"var" json:"var" toml:"var"`
	Property string  `yaml:"property" json:"property" toml:"property"`
}

// Decode reads a declaration document in format f and builds its tree.
func Decode(r io.Reader, f Format) (Entity, error) {
	var doc document
	switch f {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
		}
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidDocument, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	class, err := doc.class()
	if err != nil {
		return nil, err
	}
	return Of(class), nil
}

func (d document) class() (*Class, error) {
	if d.Class == nil {
		return nil, fmt.Errorf("%w: missing class", ErrInvalidDocument)
	}
	c := d.Class
	if c.Name == "" {
		return nil, fmt.Errorf("%w: class without name", ErrInvalidDocument)
	}
	flags, err := modifiers(c.Modifiers)
	if err != nil {
		return nil, err
	}
	class := &Class{
		Meta:       comments(c.Comments),
		Name:       c.Name,
		Flags:      flags,
		Extends:    c.Extends,
		Implements: c.Implements,
		AttrGroups: attributes(c.Attributes),
	}
	for i, m := range c.Members {
		stmt, err := m.stmt()
		if err != nil {
			return nil, fmt.Errorf("class %s member %d: %w", c.Name, i, err)
		}
		class.Stmts = append(class.Stmts, stmt)
	}
	return class, nil
}

func (m memberDoc) stmt() (Stmt, error) {
	flags, err := modifiers(m.Modifiers)
	if err != nil {
		return nil, err
	}
	meta := comments(m.Comments)
	switch m.Kind {
	case "method":
		if m.Name == "" {
			return nil, fmt.Errorf("%w: method without name", ErrInvalidDocument)
		}
		method := &ClassMethod{
			Meta:       meta,
			Name:       m.Name,
			Flags:      flags,
			ByRef:      m.ByRef,
			ReturnType: ParseType(m.Returns),
			AttrGroups: attributes(m.Attributes),
		}
		for _, pd := range m.Params {
			param, err := pd.param()
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", m.Name, err)
			}
			method.Params = append(method.Params, param)
		}
		if flags&ModAbstract != 0 {
			if len(m.Body) > 0 {
				return nil, fmt.Errorf("%w: abstract method %s with body", ErrInvalidDocument, m.Name)
			}
			return method, nil
		}
		method.Body = &Block{}
		for _, sd := range m.Body {
			stmt, err := sd.stmt()
			if err != nil {
				return nil, fmt.Errorf("method %s: %w", m.Name, err)
			}
			method.Body.Stmts = append(method.Body.Stmts, stmt)
		}
		return method, nil
	case "property":
		if m.Name == "" {
			return nil, fmt.Errorf("%w: property without name", ErrInvalidDocument)
		}
		item := &PropertyItem{Name: m.Name}
		if m.Value != nil {
			if item.Default, err = m.Value.expr(); err != nil {
				return nil, err
			}
		}
		return &Property{
			Meta:       meta,
			Flags:      flags,
			Type:       ParseType(m.Type),
			Props:      []*PropertyItem{item},
			AttrGroups: attributes(m.Attributes),
		}, nil
	case "const":
		if m.Name == "" || m.Value == nil {
			return nil, fmt.Errorf("%w: const needs a name and a value", ErrInvalidDocument)
		}
		v, err := m.Value.expr()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: const %s has an empty value", ErrInvalidDocument, m.Name)
		}
		return &ClassConst{
			Meta:       meta,
			Flags:      flags,
			Consts:     []*Const{{Name: m.Name, Value: v}},
			AttrGroups: attributes(m.Attributes),
		}, nil
	case "use":
		if len(m.Traits) == 0 {
			return nil, fmt.Errorf("%w: use without traits", ErrInvalidDocument)
		}
		return &TraitUse{Meta: meta, Traits: m.Traits}, nil
	case "nop":
		return &Nop{Meta: meta}, nil
	default:
		return nil, fmt.Errorf("%w: unknown member kind %q", ErrInvalidDocument, m.Kind)
	}
}

func (pd paramDoc) param() (*Param, error) {
	if pd.Name == "" {
		return nil, fmt.Errorf("%w: parameter without name", ErrInvalidDocument)
	}
	flags, err := modifiers(pd.Modifiers)
	if err != nil {
		return nil, err
	}
	param := &Param{
		Meta:       comments(pd.Comments),
		Name:       strings.TrimPrefix(pd.Name, "$"),
		Type:       ParseType(pd.Type),
		Flags:      flags,
		ByRef:      pd.ByRef,
		Variadic:   pd.Variadic,
		AttrGroups: attributes(pd.Attributes),
	}
	if pd.Default != nil {
		if param.Default, err = pd.Default.expr(); err != nil {
			return nil, err
		}
	}
	return param, nil
}

func (sd stmtDoc) stmt() (Stmt, error) {
	meta := comments(sd.Comments)
	switch {
	case sd.Return != nil:
		v, err := sd.Return.expr()
		if err != nil {
			return nil, err
		}
		return &Return{Meta: meta, Expr: v}, nil
	case sd.Assign != nil:
		a := sd.Assign
		var target Expr
		switch {
		case a.Property != "":
			target = &PropertyFetch{Var: &Variable{Name: "this"}, Name: a.Property}
		case a.Var != "":
			target = &Variable{Name: strings.TrimPrefix(a.Var, "$")}
		default:
			return nil, fmt.Errorf("%w: assignment without target", ErrInvalidDocument)
		}
		v, err := a.Value.expr()
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: assignment without value", ErrInvalidDocument)
		}
		return &Expression{Meta: meta, Expr: &Assign{Var: target, Expr: v}}, nil
	case sd.Call != "":
		call := &FuncCall{Name: sd.Call}
		for _, ad := range sd.Args {
			v, err := ad.expr()
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, fmt.Errorf("%w: empty argument to %s", ErrInvalidDocument, sd.Call)
			}
			call.Args = append(call.Args, &Arg{Value: v})
		}
		return &Expression{Meta: meta, Expr: call}, nil
	case sd.Var != "":
		return &Expression{Meta: meta, Expr: &Variable{Name: strings.TrimPrefix(sd.Var, "$")}}, nil
	case sd.Nop || len(sd.Comments) > 0:
		return &Nop{Meta: meta}, nil
	default:
		return nil, fmt.Errorf("%w: empty statement", ErrInvalidDocument)
	}
}

// expr returns nil for an empty value.
func (v valueDoc) expr() (Expr, error) {
	set := 0
	var e Expr
	if v.String != nil {
		set++
		e = &String{Value: *v.String}
	}
	if v.Int != nil {
		set++
		e = &Int{Value: *v.Int}
	}
	if v.Const != "" {
		set++
		e = &ConstFetch{Name: v.Const}
	}
	if v.Var != "" {
		set++
		e = &Variable{Name: strings.TrimPrefix(v.Var, "$")}
	}
	if v.Property != "" {
		set++
		e = &PropertyFetch{Var: &Variable{Name: "this"}, Name: v.Property}
	}
	if set > 1 {
		return nil, fmt.Errorf("%w: value sets %d alternatives", ErrInvalidDocument, set)
	}
	return e, nil
}

func modifiers(names []string) (Modifier, error) {
	var flags Modifier
	for _, name := range names {
		m, err := ParseModifier(name)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
		}
		flags |= m
	}
	return flags, nil
}

func comments(texts []string) Meta {
	if len(texts) == 0 {
		return Meta{}
	}
	m := Meta{Leading: make([]Comment, len(texts))}
	for i, t := range texts {
		m.Leading[i] = Comment{Text: t}
	}
	return m
}

func attributes(names []string) []AttrGroup {
	if len(names) == 0 {
		return nil
	}
	groups := make([]AttrGroup, len(names))
	for i, name := range names {
		groups[i] = Attr(name)
	}
	return groups
}
