// Package codeprint prints generated PHP declaration trees as formatted
// source files.
//
// A tree is built from the node types of this package ([Class],
// [ClassMethod], [Param], [Property], ...) or decoded from a declarative
// document with [Decode]. [Print] renders it behind the file [Prologue]:
//
//	out, err := codeprint.Print(codeprint.Of(&codeprint.Class{Name: "User"}))
//
// # Layout
//
// A [Printer] renders any single node on its own. Layout policy is applied
// at two points only, described by [Hooks]:
//
//   - parameter lists: [Decide] keeps a list on one line while it fits in
//     [MaxLineWidth] columns and no parameter carries a comment; otherwise
//     every parameter goes on its own line with a trailing comma. A method
//     with a single-line list opens its body on the next line, a wrapped one
//     on the closing-parenthesis line.
//   - bodies: [Separated] reports whether a body holds trait uses,
//     constants, properties or methods. Such bodies get a blank line between
//     members; other bodies stay compact.
//
// [Standard] is the plain hook set and [Extended] the code-generation
// style used by [New].
//
// # Documents
//
// [Decode] reads YAML, JSON and TOML documents (see [Formats]):
//
//	class:
//	  name: User
//	  members:
//	    - kind: property
//	      name: id
//	      type: int
//	      modifiers: [private]
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrMalformedTree] — a node the printer cannot render
//   - [ErrUnsupportedFormat] — unknown document format
//   - [ErrInvalidDocument] — a document that does not describe a class
package codeprint
