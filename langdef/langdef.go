package langdef

import (
	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/parser"
	"github.com/ava12/xpeg/source"
)

// ParseString parses grammar description and returns a grammar on success.
// Returns nil and error on failure, see Parse.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.NewString(name, content))
}

// ParseBytes parses grammar description and returns a grammar on success.
// Returns nil and error on failure, see Parse.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse parses, checks, and converts grammar description.
// Returns nil and either *xpeg.Error or *multierror.Error containing *xpeg.Error values on failure.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	root, e := ParseAST(s)
	if e == nil {
		e = Check(root)
	}
	if e != nil {
		return nil, e
	}

	return Convert(root)
}

// Compile parses grammar description and builds parser grammar from it.
func Compile(s *source.Source) (*parser.Grammar, error) {
	g, e := Parse(s)
	if e != nil {
		return nil, e
	}

	return parser.Compile(g)
}

// Self returns grammar of the grammar description language compiled from Source.
func Self() (*parser.Grammar, error) {
	return Compile(source.NewString("xpeg.peg", Source))
}
