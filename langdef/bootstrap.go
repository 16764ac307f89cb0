package langdef

import (
	_ "embed"
	"sync"

	"github.com/ava12/xpeg/parser"
)

//go:generate go run ../cmd/pegen generate -v Xpeg -o xpeg_gen.go xpeg.peg

// Source is the grammar description language defined in itself.
//
//go:embed xpeg.peg
var Source string

var (
	seq  = parser.Seq
	sel  = parser.Sel
	opt  = parser.Opt
	skip = parser.Skip
	not  = parser.Not
)

func lit(text string) parser.Func {
	return parser.Literal(text, false)
}

func re(pattern string) parser.Func {
	return parser.MustRegex(pattern, "")
}

func many(f parser.Func) parser.Func {
	return parser.Rpt(f, 0, parser.Unbounded)
}

func some(f parser.Func) parser.Func {
	return parser.Rpt(f, 1, parser.Unbounded)
}

// token matches f followed by optional spaces and comments.
func token(g *parser.Grammar, f parser.Func) parser.Func {
	return seq(f, skip(g.Ref("_SP")))
}

var bootstrapDef = parser.Def{
	Root: "Grammar",
	Rules: parser.RuleTable{
		"Grammar": func(g *parser.Grammar) parser.Func {
			return seq(skip(g.Ref("_SP")), some(sel(g.Ref("MacroDefinition"), g.Ref("SubDefinition"), g.Ref("Definition"))), g.Ref("EOF"))
		},

		"Definition": func(g *parser.Grammar) parser.Func {
			return seq(g.Ref("Identifier"), opt(g.Ref("Parameters")), skip(g.Ref("LEFTARROW")), g.Ref("Selection"))
		},
		"SubDefinition": func(g *parser.Grammar) parser.Func {
			return seq(g.Ref("Identifier"), skip(g.Ref("SUBARROW")), g.Ref("Selection"))
		},
		"MacroDefinition": func(g *parser.Grammar) parser.Func {
			return seq(g.Ref("MacroIdentifier"), skip(g.Ref("LEFTARROW")), g.Ref("Selection"))
		},
		"Parameters": func(g *parser.Grammar) parser.Func {
			return seq(skip(g.Ref("PARAMOPEN")), g.Ref("Parameter"), many(seq(skip(g.Ref("COMMA")), g.Ref("Parameter"))), skip(g.Ref("CLOSE")))
		},
		"Arguments": func(g *parser.Grammar) parser.Func {
			return seq(skip(g.Ref("PARAMOPEN")), g.Ref("Selection"), many(seq(skip(g.Ref("COMMA")), g.Ref("Selection"))), skip(g.Ref("CLOSE")))
		},

		"Selection": func(g *parser.Grammar) parser.Func {
			return seq(g.Ref("Sequence"), many(seq(skip(g.Ref("SLASH")), g.Ref("Sequence"))))
		},
		"Sequence": func(g *parser.Grammar) parser.Func {
			return some(g.Ref("Prefix"))
		},
		"Prefix": func(g *parser.Grammar) parser.Func {
			return seq(opt(sel(g.Ref("And"), g.Ref("Not"), g.Ref("Skip"))), g.Ref("Suffix"))
		},
		"Suffix": func(g *parser.Grammar) parser.Func {
			return seq(g.Ref("Primary"), opt(sel(g.Ref("Optional"), g.Ref("ZeroOrMore"), g.Ref("OneOrMore"), g.Ref("RepeatSuffix"))))
		},
		"Primary": func(g *parser.Grammar) parser.Func {
			return sel(
				g.Ref("RegularExp"),
				g.Ref("Literal"),
				g.Ref("RuleCall"),
				seq(g.Ref("Identifier"), not(g.Ref("DefHead"))),
				seq(g.Ref("MacroIdentifier"), not(g.Ref("LEFTARROW"))),
				g.Ref("Parameter"),
				seq(skip(g.Ref("OPEN")), g.Ref("Selection"), skip(g.Ref("CLOSE"))),
			)
		},
		"RuleCall": func(g *parser.Grammar) parser.Func {
			return seq(g.Ref("Identifier"), g.Ref("Arguments"), not(g.Ref("LEFTARROW")))
		},
		"DefHead": func(g *parser.Grammar) parser.Func {
			return seq(opt(g.Ref("Parameters")), sel(g.Ref("LEFTARROW"), g.Ref("SUBARROW")))
		},

		"Identifier": func(g *parser.Grammar) parser.Func {
			return token(g, re(`[A-Za-z][A-Za-z0-9_]*`))
		},
		"MacroIdentifier": func(g *parser.Grammar) parser.Func {
			return token(g, re(`_[A-Z][A-Z0-9_]*`))
		},
		"Parameter": func(g *parser.Grammar) parser.Func {
			return token(g, re(`@[A-Za-z_][A-Za-z0-9_]*`))
		},

		"Literal": func(g *parser.Grammar) parser.Func {
			return seq(sel(re(`'(?:[^'\\]|\\.)*'`), re(`"(?:[^"\\]|\\.)*"`)), opt(g.Ref("IgnoreCase")), skip(g.Ref("_SP")))
		},
		"IgnoreCase": func(g *parser.Grammar) parser.Func {
			return seq(lit(":I"), not(re(`\w`)))
		},
		"RegularExp": func(g *parser.Grammar) parser.Func {
			return seq(sel(re(`r'(?:[^'\\]|\\.)*'`), re(`r"(?:[^"\\]|\\.)*"`)), opt(g.Ref("RegexOptions")), skip(g.Ref("_SP")))
		},
		"RegexOptions": func(g *parser.Grammar) parser.Func {
			return seq(skip(lit(":")), re(`[imsx]+`))
		},

		"RepeatSuffix": func(g *parser.Grammar) parser.Func {
			return seq(
				skip(lit("{")), skip(g.Ref("_SP")),
				opt(g.Ref("RepeatMin")), opt(seq(g.Ref("RepeatRange"), opt(g.Ref("RepeatMax")))),
				skip(lit("}")), skip(g.Ref("_SP")),
			)
		},
		"RepeatMin": func(g *parser.Grammar) parser.Func {
			return token(g, re(`[0-9]+`))
		},
		"RepeatRange": func(g *parser.Grammar) parser.Func {
			return token(g, lit(","))
		},
		"RepeatMax": func(g *parser.Grammar) parser.Func {
			return token(g, re(`[0-9]+`))
		},

		"And":        operator("&"),
		"Not":        operator("!"),
		"Skip":       operator(">>"),
		"Optional":   operator("?"),
		"ZeroOrMore": operator("*"),
		"OneOrMore":  operator("+"),

		"LEFTARROW": func(g *parser.Grammar) parser.Func {
			return seq(lit("<-"), not(lit("-")), skip(g.Ref("_SP")))
		},
		"SUBARROW":  operator("<--"),
		"PARAMOPEN": operator(":("),
		"OPEN":      operator("("),
		"CLOSE":     operator(")"),
		"COMMA":     operator(","),
		"SLASH":     operator("/"),
	},
	Macros: parser.RuleTable{
		"_SP": func(g *parser.Grammar) parser.Func {
			return re(`(?:\s|#[^\n]*)*`)
		},
	},
}

func operator(text string) parser.RuleBuilder {
	return func(g *parser.Grammar) parser.Func {
		return token(g, lit(text))
	}
}

var (
	bootstrapOnce    sync.Once
	bootstrapGrammar *parser.Grammar
)

// Bootstrap returns hand-written grammar of the grammar description language.
// Trees it produces are identical to the trees produced by the grammar compiled from Source
// and by the generated XpegDef.
func Bootstrap() *parser.Grammar {
	bootstrapOnce.Do(func() {
		g, e := parser.NewGrammar(bootstrapDef)
		if e != nil {
			panic(e)
		}
		bootstrapGrammar = g
	})
	return bootstrapGrammar
}
