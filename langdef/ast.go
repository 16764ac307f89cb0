package langdef

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/ava12/xpeg"
	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/parser"
	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

// Node types of grammar description tree.
const (
	GrammarNode         = "Grammar"
	DefinitionNode      = "Definition"
	SubDefinitionNode   = "SubDefinition"
	MacroDefinitionNode = "MacroDefinition"
	ParametersNode      = "Parameters"
	ArgumentsNode       = "Arguments"
	SelectionNode       = "Selection"
	SequenceNode        = "Sequence"
	PrefixNode          = "Prefix"
	SuffixNode          = "Suffix"
	PrimaryNode         = "Primary"
	RuleCallNode        = "RuleCall"
	IdentifierNode      = "Identifier"
	MacroIdentifierNode = "MacroIdentifier"
	ParameterNode       = "Parameter"
	LiteralNode         = "Literal"
	IgnoreCaseNode      = "IgnoreCase"
	RegularExpNode      = "RegularExp"
	RegexOptionsNode    = "RegexOptions"
	RepeatSuffixNode    = "RepeatSuffix"
	RepeatMinNode       = "RepeatMin"
	RepeatRangeNode     = "RepeatRange"
	RepeatMaxNode       = "RepeatMax"
	AndNode             = "And"
	NotNode             = "Not"
	SkipNode            = "Skip"
	OptionalNode        = "Optional"
	ZeroOrMoreNode      = "ZeroOrMore"
	OneOrMoreNode       = "OneOrMore"
)

var log = commonlog.GetLogger("xpeg.langdef")

// ParseAST parses grammar description with Bootstrap grammar.
// Returns GrammarSyntaxError pointing at the furthest position reached on failure.
func ParseAST(s *source.Source) (tree.Node, error) {
	p := parser.New(Bootstrap(), s, parser.WithLogger(log))
	root, e := p.ParseRoot()
	if e != nil {
		return tree.Node{}, e
	}

	if root.IsFailure() {
		return tree.Node{}, syntaxError(parser.FailureError(root).(*xpeg.Error))
	}
	return root, nil
}

type definition struct {
	name   string
	kind   grammar.RuleKind
	node   tree.Node
	params []tree.Node
	body   tree.Node
}

func (d *definition) paramNames() []string {
	if len(d.params) == 0 {
		return nil
	}

	res := make([]string, len(d.params))
	for i, p := range d.params {
		res[i] = p.Text(nil)
	}
	return res
}

func definitions(root tree.Node) ([]definition, error) {
	if !root.IsValid() || root.TypeName() != GrammarNode {
		return nil, invalidRootError(root.TypeName())
	}

	var res []definition
	for _, n := range root.Children() {
		d := definition{name: n.FirstChild().Text(nil), node: n, body: n.LastChild()}
		switch n.TypeName() {
		case DefinitionNode:
			d.kind = grammar.PrimaryRule
			ps := n.FirstChild().Next()
			if ps.TypeName() == ParametersNode {
				d.params = ps.Children()
			}
		case SubDefinitionNode:
			d.kind = grammar.SubRule
		case MacroDefinitionNode:
			d.kind = grammar.MacroRule
		default:
			return nil, invalidRootError(n.TypeName())
		}
		res = append(res, d)
	}
	return res, nil
}

func nameKey(name string) string {
	return strings.ToLower(name)
}
