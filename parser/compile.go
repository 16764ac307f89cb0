package parser

import (
	"github.com/dlclark/regexp2"

	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

type compiler struct {
	regexps map[*grammar.Expr]*regexp2.Regexp
}

// Compile creates grammar from rule descriptions at run time.
// Returns WrongRegexpError for incorrect patterns and NewGrammar errors.
func Compile(gr *grammar.Grammar) (*Grammar, error) {
	c := &compiler{regexps: make(map[*grammar.Expr]*regexp2.Regexp)}
	def := Def{
		Root:         gr.Root,
		Rules:        RuleTable{},
		SubRules:     RuleTable{},
		SubRuleNames: gr.SubRuleNames(),
		Macros:       RuleTable{},
		ParamRules:   ParamTable{},
	}

	for i := range gr.Rules {
		r := &gr.Rules[i]
		e := c.prepare(r.Name, r.Expr)
		if e != nil {
			return nil, e
		}

		if len(r.Params) > 0 {
			def.ParamRules[r.Name] = ParamRule{
				Arity: len(r.Params),
				Build: func(g *Grammar, args []Func) Func {
					return c.build(g, r.Expr, args)
				},
			}
			continue
		}

		b := func(g *Grammar) Func {
			return c.build(g, r.Expr, nil)
		}
		switch r.Kind {
		case grammar.SubRule:
			def.SubRules[r.Name] = b
		case grammar.MacroRule:
			def.Macros[r.Name] = b
		default:
			def.Rules[r.Name] = b
		}
	}

	return NewGrammar(def)
}

func (c *compiler) prepare(rule string, x *grammar.Expr) error {
	if x.Op == grammar.Regex {
		re, e := source.CompileRegex(x.Text, x.Flags)
		if e != nil {
			return wrongRegexpError(rule, x.Text, e)
		}
		c.regexps[x] = re
	}

	for _, item := range x.Items {
		e := c.prepare(rule, item)
		if e != nil {
			return e
		}
	}
	return nil
}

func (c *compiler) build(g *Grammar, x *grammar.Expr, args []Func) Func {
	switch x.Op {
	case grammar.Choice:
		return Sel(c.buildItems(g, x.Items, args)...)
	case grammar.Seq:
		return Seq(c.buildItems(g, x.Items, args)...)
	case grammar.Repeat:
		return Rpt(c.build(g, x.Items[0], args), x.Min, x.Max)
	case grammar.Optional:
		return Opt(c.build(g, x.Items[0], args))
	case grammar.And:
		return And(c.build(g, x.Items[0], args))
	case grammar.Not:
		return Not(c.build(g, x.Items[0], args))
	case grammar.Skip:
		return Skip(c.build(g, x.Items[0], args))
	case grammar.Literal:
		return Literal(x.Text, x.Caseless)
	case grammar.Regex:
		return RegexFunc(c.regexps[x])
	case grammar.Ref:
		return g.Ref(x.Name)
	case grammar.Call:
		return g.Call(x.Name, c.buildItems(g, x.Items, args)...)
	case grammar.Param:
		return Arg(args, x.Index)
	default:
		return EOF()
	}
}

func (c *compiler) buildItems(g *Grammar, xs []*grammar.Expr, args []Func) []Func {
	res := make([]Func, len(xs))
	for i, x := range xs {
		res[i] = c.build(g, x, args)
	}
	return res
}

// Arg returns i-th argument of a parameterised rule builder.
// Arguments are nil when rule is built to collect its references, Arg returns a failing matcher then.
func Arg(args []Func, i int) Func {
	f := args[i]
	if f != nil {
		return f
	}
	return func(p *Parser) (bool, []tree.ID) {
		return false, nil
	}
}
