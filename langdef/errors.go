package langdef

import (
	"strings"

	"github.com/ava12/xpeg"
	"github.com/ava12/xpeg/tree"
)

const (
	GrammarSyntaxError = xpeg.LangDefErrors + iota
	InvalidRootError
	DuplicateDefinitionError
	UndefinedIdentifierError
	SubDefinitionError
	ParamCountError
	UndefinedParameterError
	LeftRecursionError
	UnresolvedRecursionError
	RepeatSuffixError
	WrongRegexpError
	WrongLiteralError
)

func syntaxError(e *xpeg.Error) *xpeg.Error {
	return xpeg.NewError(GrammarSyntaxError, "grammar syntax error: "+e.Message, e.SourceName, e.Line, e.Col)
}

func invalidRootError(typeName string) *xpeg.Error {
	return xpeg.FormatError(InvalidRootError, "root node must be Grammar, got %q", typeName)
}

func noRootError() *xpeg.Error {
	return xpeg.FormatError(InvalidRootError, "no root rule defined")
}

func duplicateDefinitionError(n tree.Node, name string) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), DuplicateDefinitionError, "%s already defined", name)
}

func undefinedIdentifierError(n tree.Node, name string) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), UndefinedIdentifierError, "undefined identifier %s", name)
}

func noPrimaryError(n tree.Node, name string) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), SubDefinitionError, "sub-definition %s has no primary definition", name)
}

func subDefinedError(n tree.Node, name string) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), SubDefinitionError, "sub-definition %s already defined", name)
}

func paramCountError(n tree.Node, name string, expected, got int) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), ParamCountError, "%s takes %d argument(s), got %d", name, expected, got)
}

func undefinedParameterError(n tree.Node, name string) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), UndefinedParameterError, "undefined parameter %s", name)
}

func leftRecursionError(chain []string) *xpeg.Error {
	return xpeg.FormatError(LeftRecursionError, "left recursion found: %s", strings.Join(chain, "->"))
}

func unresolvedRecursionError(names []string) *xpeg.Error {
	return xpeg.FormatError(UnresolvedRecursionError, "cannot resolve left recursion for: %s", strings.Join(names, ", "))
}

func repeatSuffixError(n tree.Node) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), RepeatSuffixError, "malformed repeat count %s", strings.TrimSpace(n.SourceText()))
}

func regexpError(n tree.Node, pattern string, e error) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), WrongRegexpError, "incorrect regexp %s (%s)", pattern, e.Error())
}

func literalError(n tree.Node, text string) *xpeg.Error {
	return xpeg.FormatErrorPos(n.Pos(), WrongLiteralError, "incorrect literal %s", text)
}
