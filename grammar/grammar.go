// Package grammar defines rule structure produced by langdef and consumed by parser and pegen.
package grammar

import (
	"strconv"
	"strings"
)

// EOFName is the name of built-in end-of-input rule.
const EOFName = "EOF"

type RuleKind int

const (
	// PrimaryRule is a first-pass rule defined with <-.
	PrimaryRule RuleKind = iota
	// SubRule is a second-pass rule defined with <--, used for sub-parsing.
	SubRule
	// MacroRule is a rule named _NAME, it is not memoized and its match is folded to a single terminal.
	MacroRule
)

type Op int

const (
	Choice Op = iota
	Seq
	Repeat
	Optional
	And
	Not
	Skip
	Literal
	Regex
	Ref
	Call
	Param
	EOF
)

var opNames = [...]string{
	"choice", "seq", "repeat", "optional", "and", "not", "skip",
	"literal", "regex", "ref", "call", "param", "eof",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "unknown"
	}
	return opNames[op]
}

// Unbounded is the Max value of unbounded repetition.
const Unbounded = -1

// Expr is a rule expression node.
type Expr struct {
	Op Op `json:"op"`
	// Items are operands of Choice, Seq, Repeat, Optional, And, Not, Skip,
	// and arguments of Call.
	Items []*Expr `json:"items,omitempty"`
	// Text is the literal text or regex pattern.
	Text     string `json:"text,omitempty"`
	Caseless bool   `json:"caseless,omitempty"`
	// Flags are regex option letters.
	Flags string `json:"flags,omitempty"`
	// Min and Max are repetition bounds, Max is Unbounded or >= Min.
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`
	// Name is the referenced rule or parameter name.
	Name string `json:"name,omitempty"`
	// Index is the parameter index.
	Index int `json:"index,omitempty"`
}

type Rule struct {
	Name   string   `json:"name"`
	Kind   RuleKind `json:"kind"`
	Params []string `json:"params,omitempty"`
	Expr   *Expr    `json:"expr"`
}

// Grammar is a list of rules, the first primary rule is the root one.
type Grammar struct {
	Root  string `json:"root"`
	Rules []Rule `json:"rules"`
}

// Rule returns rule with given name and kind or nil.
func (g *Grammar) Rule(name string, kind RuleKind) *Rule {
	for i := range g.Rules {
		r := &g.Rules[i]
		if r.Name == name && r.Kind == kind {
			return r
		}
	}
	return nil
}

// SubRuleNames returns names of second-pass rules in definition order.
func (g *Grammar) SubRuleNames() []string {
	var res []string
	for _, r := range g.Rules {
		if r.Kind == SubRule {
			res = append(res, r.Name)
		}
	}
	return res
}

// String returns rule definition in grammar description language.
func (r *Rule) String() string {
	b := &strings.Builder{}
	b.WriteString(r.Name)
	if len(r.Params) > 0 {
		b.WriteString(":(" + strings.Join(r.Params, ", ") + ")")
	}
	if r.Kind == SubRule {
		b.WriteString(" <-- ")
	} else {
		b.WriteString(" <- ")
	}
	r.Expr.write(b, choiceLevel)
	return b.String()
}

// String returns expression in grammar description language.
func (x *Expr) String() string {
	b := &strings.Builder{}
	x.write(b, choiceLevel)
	return b.String()
}

const (
	choiceLevel = iota
	seqLevel
	prefixLevel
	suffixLevel
	primaryLevel
)

func (x *Expr) level() int {
	switch x.Op {
	case Choice:
		return choiceLevel
	case Seq:
		return seqLevel
	case And, Not, Skip:
		return prefixLevel
	case Repeat, Optional:
		return suffixLevel
	default:
		return primaryLevel
	}
}

func (x *Expr) write(b *strings.Builder, level int) {
	if x.level() < level {
		b.WriteString("(")
		defer b.WriteString(")")
	}

	switch x.Op {
	case Choice, Seq:
		sep, itemLevel := " ", prefixLevel
		if x.Op == Choice {
			sep, itemLevel = " / ", seqLevel
		}
		for i, item := range x.Items {
			if i > 0 {
				b.WriteString(sep)
			}
			item.write(b, itemLevel)
		}

	case And, Not, Skip:
		b.WriteString(prefixes[x.Op])
		x.Items[0].write(b, prefixLevel)

	case Optional:
		x.Items[0].write(b, primaryLevel)
		b.WriteString("?")

	case Repeat:
		x.Items[0].write(b, primaryLevel)
		b.WriteString(repeatSuffix(x.Min, x.Max))

	case Literal:
		b.WriteString(strconv.Quote(x.Text))
		if x.Caseless {
			b.WriteString(":I")
		}

	case Regex:
		if strings.Contains(x.Text, `"`) {
			b.WriteString("r'" + x.Text + "'")
		} else {
			b.WriteString(`r"` + x.Text + `"`)
		}
		if x.Flags != "" {
			b.WriteString(":" + x.Flags)
		}

	case Call:
		b.WriteString(x.Name + ":(")
		for i, item := range x.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b, choiceLevel)
		}
		b.WriteString(")")

	case EOF:
		b.WriteString(EOFName)

	default:
		b.WriteString(x.Name)
	}
}

var prefixes = map[Op]string{And: "&", Not: "!", Skip: ">>"}

func repeatSuffix(min, max int) string {
	switch {
	case min == 0 && max == Unbounded:
		return "*"
	case min == 1 && max == Unbounded:
		return "+"
	case max == Unbounded:
		return "{" + strconv.Itoa(min) + ",}"
	case min == max:
		return "{" + strconv.Itoa(min) + "}"
	case min == 0:
		return "{," + strconv.Itoa(max) + "}"
	default:
		return "{" + strconv.Itoa(min) + "," + strconv.Itoa(max) + "}"
	}
}
