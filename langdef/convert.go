package langdef

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

type converter struct {
	names  map[string]string
	params map[string]int
	errs   *multierror.Error
}

func newConverter(defs []definition) *converter {
	c := &converter{names: make(map[string]string)}
	for _, d := range defs {
		key := nameKey(d.name)
		if _, has := c.names[key]; !has && d.kind != grammar.SubRule {
			c.names[key] = d.name
		}
	}
	return c
}

// Convert builds grammar from checked grammar description tree.
// References are bound to definition names ignoring case, the first non-parameterized definition
// is the root rule.
// Returns RepeatSuffixError, WrongRegexpError, and WrongLiteralError combined in *multierror.Error.
func Convert(root tree.Node) (*grammar.Grammar, error) {
	defs, e := definitions(root)
	if e != nil {
		return nil, e
	}

	c := newConverter(defs)
	g := &grammar.Grammar{}
	for i := range defs {
		r := c.rule(&defs[i])
		if g.Root == "" && r.Kind == grammar.PrimaryRule && len(r.Params) == 0 {
			g.Root = r.Name
		}
		g.Rules = append(g.Rules, *r)
	}

	if c.errs != nil {
		return nil, c.errs
	}
	if g.Root == "" {
		return nil, noRootError()
	}

	log.Debugf("converted %d rules, root is %s", len(g.Rules), g.Root)
	return g, nil
}

func (c *converter) name(name string) string {
	n, has := c.names[nameKey(name)]
	if has {
		return n
	}
	return name
}

func (c *converter) rule(d *definition) *grammar.Rule {
	c.params = make(map[string]int)
	names := d.paramNames()
	for i, name := range names {
		if _, has := c.params[name]; !has {
			c.params[name] = i
		}
	}

	return &grammar.Rule{
		Name:   c.name(d.name),
		Kind:   d.kind,
		Params: names,
		Expr:   c.expr(d.body),
	}
}

func (c *converter) exprs(ns []tree.Node) []*grammar.Expr {
	res := make([]*grammar.Expr, len(ns))
	for i, n := range ns {
		res[i] = c.expr(n)
	}
	return res
}

func (c *converter) expr(n tree.Node) *grammar.Expr {
	cs := n.Children()
	switch n.TypeName() {
	case SelectionNode, SequenceNode:
		if len(cs) == 1 {
			return c.expr(cs[0])
		}
		op := grammar.Choice
		if n.TypeName() == SequenceNode {
			op = grammar.Seq
		}
		return &grammar.Expr{Op: op, Items: c.exprs(cs)}

	case PrefixNode:
		x := c.expr(cs[len(cs)-1])
		if len(cs) == 1 {
			return x
		}
		op := grammar.And
		switch cs[0].TypeName() {
		case NotNode:
			op = grammar.Not
		case SkipNode:
			op = grammar.Skip
		}
		return &grammar.Expr{Op: op, Items: []*grammar.Expr{x}}

	case SuffixNode:
		x := c.expr(cs[0])
		if len(cs) == 1 {
			return x
		}
		res := &grammar.Expr{Op: grammar.Repeat, Items: []*grammar.Expr{x}, Max: grammar.Unbounded}
		switch cs[1].TypeName() {
		case OptionalNode:
			res.Op = grammar.Optional
			res.Max = 0
		case OneOrMoreNode:
			res.Min = 1
		case RepeatSuffixNode:
			res.Min, res.Max = c.repeat(cs[1])
		}
		return res

	case PrimaryNode:
		return c.expr(cs[0])

	case IdentifierNode, MacroIdentifierNode:
		name := n.Text(nil)
		if nameKey(name) == nameKey(grammar.EOFName) {
			return &grammar.Expr{Op: grammar.EOF}
		}
		return &grammar.Expr{Op: grammar.Ref, Name: c.name(name)}

	case RuleCallNode:
		return &grammar.Expr{Op: grammar.Call, Name: c.name(cs[0].Text(nil)), Items: c.exprs(cs[1].Children())}

	case ParameterNode:
		name := n.Text(nil)
		return &grammar.Expr{Op: grammar.Param, Name: name, Index: c.params[name]}

	case LiteralNode:
		quoted := cs[0].Text(nil)
		text, e := unquote(quoted)
		if e != nil {
			c.errs = multierror.Append(c.errs, literalError(n, quoted))
		}
		return &grammar.Expr{Op: grammar.Literal, Text: text, Caseless: len(cs) > 1}

	case RegularExpNode:
		quoted := cs[0].Text(nil)
		x := &grammar.Expr{Op: grammar.Regex, Text: quoted[2 : len(quoted)-1]}
		if len(cs) > 1 {
			x.Flags = cs[1].Text(nil)
		}
		_, e := source.CompileRegex(x.Text, x.Flags)
		if e != nil {
			c.errs = multierror.Append(c.errs, regexpError(n, quoted, e))
		}
		return x

	default:
		return &grammar.Expr{Op: grammar.EOF}
	}
}

func (c *converter) repeat(n tree.Node) (min, max int) {
	var hasMin, hasRange, hasMax bool
	for _, cn := range n.Children() {
		v, _ := strconv.Atoi(cn.Text(nil))
		switch cn.TypeName() {
		case RepeatMinNode:
			hasMin, min = true, v
		case RepeatRangeNode:
			hasRange = true
		case RepeatMaxNode:
			hasMax, max = true, v
		}
	}

	switch {
	case hasMin && !hasRange:
		max = min
	case hasRange && !hasMax:
		max = grammar.Unbounded
	}

	if (!hasMin && !hasMax) || (max != grammar.Unbounded && (max < min || max == 0)) {
		c.errs = multierror.Append(c.errs, repeatSuffixError(n))
		return 0, grammar.Unbounded
	}
	return min, max
}

// unquote converts quoted literal to its text.
// Both quote kinds use the same escapes: \n \t \r \\ \' \" \xHH \uHHHH.
func unquote(quoted string) (string, error) {
	body := quoted[1 : len(quoted)-1]
	b := &strings.Builder{}
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			i++
			if body[i] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte(c)
				b.WriteByte(body[i])
			}
		case c == '"':
			b.WriteString(`\"`)
		case c == '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return strconv.Unquote(b.String())
}
