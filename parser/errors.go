package parser

import (
	"fmt"

	"github.com/ava12/xpeg"
	"github.com/ava12/xpeg/tree"
)

const (
	UnknownRuleError = xpeg.ParserErrors + iota
	ParamRuleError
	UnknownSubRuleError
	NoTreeError
	ParseFailedError
	RecursionLimitError
	WrongRegexpError
)

func unknownRuleError(name string) *xpeg.Error {
	return xpeg.FormatError(UnknownRuleError, "rule %s not found", name)
}

func paramRuleError(name string, expected, got int) *xpeg.Error {
	return xpeg.FormatError(ParamRuleError, "rule %s takes %d argument(s), got %d", name, expected, got)
}

func unknownSubRuleError(name string) *xpeg.Error {
	return xpeg.FormatError(UnknownSubRuleError, "no sub-parse definition for %s", name)
}

func noTreeError() *xpeg.Error {
	return xpeg.FormatError(NoTreeError, "nothing to sub-parse, no successful parse done")
}

func wrongRegexpError(rule, pattern string, e error) *xpeg.Error {
	return xpeg.FormatError(WrongRegexpError, "incorrect regexp %q in rule %s: %s", pattern, rule, e.Error())
}

// FailureError converts failure node to *xpeg.Error with ParseFailedError or RecursionLimitError code,
// the character at failure position is added to the message.
// Returns nil for other nodes.
func FailureError(n tree.Node) error {
	if !n.IsFailure() {
		return nil
	}

	code := ParseFailedError
	if _, has := n.Attr(RecursionAttr); has {
		code = RecursionLimitError
	}
	src := n.Arena().Source()
	pos := src.Pos(n.End())
	msg := n.Message()
	_, _, char, _ := src.LineCol(n.End())
	if char != "" {
		msg += fmt.Sprintf(" at %q", char)
	}
	return &xpeg.Error{
		Code:       code,
		Message:    msg,
		SourceName: pos.SourceName(),
		Line:       pos.Line(),
		Col:        pos.Col(),
	}
}
