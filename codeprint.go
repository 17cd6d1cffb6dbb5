package codeprint

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Sentinel errors for programmatic error handling.
var (
	ErrMalformedTree     = errors.New("malformed tree")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidDocument   = errors.New("invalid document")
)

// Prologue opens every printed file.
const Prologue = "<?php\n\ndeclare(strict_types=1);\n\n"

// Entity is a generated declaration ready to be printed as a file.
type Entity interface {
	Node() Stmt
}

type stmtEntity struct {
	stmt Stmt
}

func (e stmtEntity) Node() Stmt { return e.stmt }

// Of wraps a statement as an Entity.
func Of(stmt Stmt) Entity {
	return stmtEntity{stmt: stmt}
}

// Option configures a PrettyPrinter.
type Option func(*PrettyPrinter)

// WithLogger sets the logger receiving layout decisions at debug level.
func WithLogger(l *log.Logger) Option {
	return func(pp *PrettyPrinter) { pp.logger = l }
}

// WithHooks replaces the default [Extended] hooks.
func WithHooks(h Hooks) Option {
	return func(pp *PrettyPrinter) { pp.hooks = h }
}

// PrettyPrinter prints entities as complete files. It is safe for concurrent
// use; every call renders with a fresh [Printer].
type PrettyPrinter struct {
	hooks  Hooks
	logger *log.Logger
}

// New returns a PrettyPrinter using [Extended] hooks.
func New(opts ...Option) *PrettyPrinter {
	pp := &PrettyPrinter{hooks: Extended{Next: Standard{}}}
	for _, opt := range opts {
		opt(pp)
	}
	return pp
}

// Print renders e behind the file [Prologue]. Nothing is returned on error.
func (pp *PrettyPrinter) Print(e Entity) (string, error) {
	if e == nil || e.Node() == nil {
		return "", ErrMalformedTree
	}
	out, err := NewPrinter(pp.hooks, pp.logger).PrettyPrint([]Stmt{e.Node()})
	if err != nil {
		return "", err
	}
	return Prologue + out, nil
}

// Write prints e and writes the result to w.
func (pp *PrettyPrinter) Write(w io.Writer, e Entity) error {
	out, err := pp.Print(e)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

var defaultPrinter = New()

// Print renders e with the default PrettyPrinter.
func Print(e Entity) (string, error) {
	return defaultPrinter.Print(e)
}

// Write prints e with the default PrettyPrinter and writes it to w.
func Write(w io.Writer, e Entity) error {
	return defaultPrinter.Write(w, e)
}
