/*
Package xpeg is a packrat PEG parser library with a self-hosted grammar compiler.

Consists of subpackages:
  - cmd/pegen: console utility converting grammar description to Go source file containing rule builders;
  - grammar: defines rule structure shared by grammar compiler, parser, and generator;
  - langdef: parses grammar description (written in extended PEG language), checks it, and converts it to grammar structure;
  - parser: combinator engine, memoizing parser, sub-parsing driver;
  - pegen: generates Go source or JSON for a grammar;
  - source: defines source text and reader cursor used by parser;
  - tree: types and functions to create, traverse, query, and reconstruct syntax trees.

Typical usage is:

1. Describe grammar in extended PEG language.

2. Either compile the description "on the fly" using langdef.Parse and parser.Compile
or run pegen utility to generate Go file with rule builders.

3. Create new parser for the grammar and source text, parse it, optionally re-parse
subtrees using second-pass rules, and walk or query resulting tree.
*/
package xpeg

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	SourceErrors    = 1   // used by source
	ParserErrors    = 101 // used by parser
	LangDefErrors   = 201 // used by langdef
	GeneratorErrors = 401 // used by pegen
)

// Error is the error type used by xpeg subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns 1-based line number or 0.
	Line() int
	// Col returns column number.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if line is provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// Codes returns codes of all *Error values contained in e.
// e may be a single *Error or an aggregate implementing WrappedErrors() []error.
func Codes(e error) []int {
	if e == nil {
		return nil
	}

	var res []int
	switch ee := e.(type) {
	case *Error:
		res = append(res, ee.Code)
	case interface{ WrappedErrors() []error }:
		for _, we := range ee.WrappedErrors() {
			res = append(res, Codes(we)...)
		}
	}
	return res
}
