package pegen

import (
	"github.com/ava12/xpeg"
)

const (
	GrammarFileError = xpeg.GeneratorErrors + iota
	IOError
	InvalidNameError
	WrongRegexpError
	FormatError
)

func grammarFileError(name string, e error) *xpeg.Error {
	return xpeg.FormatError(GrammarFileError, "cannot read grammar file %s: %s", name, e.Error())
}

func ioError(name string, e error) *xpeg.Error {
	return xpeg.FormatError(IOError, "i/o error on %s: %s", name, e.Error())
}

func invalidNameError(kind, name string) *xpeg.Error {
	return xpeg.FormatError(InvalidNameError, "invalid %s name: %q", kind, name)
}

func wrongRegexpError(rule, pattern string, e error) *xpeg.Error {
	return xpeg.FormatError(WrongRegexpError, "incorrect regexp %s in rule %s (%s)", pattern, rule, e.Error())
}

func formatError(e error) *xpeg.Error {
	return xpeg.FormatError(FormatError, "cannot format generated code: %s", e.Error())
}
