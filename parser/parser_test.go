package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ava12/xpeg"
	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/internal/test"
	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

func lit(text string) Func {
	return Literal(text, false)
}

func serialize(n tree.Node) string {
	b := &strings.Builder{}
	var visit func(n tree.Node)
	visit = func(n tree.Node) {
		switch {
		case n.IsFailure():
			b.WriteString(" !")
		case n.Kind() != tree.Terminal:
			b.WriteString(" (" + n.TypeName())
			for _, c := range n.Children() {
				visit(c)
			}
			b.WriteString(")")
		case n.TypeName() == tree.TerminalType:
			b.WriteString(fmt.Sprintf(" %q", n.Text(nil)))
		default:
			b.WriteString(fmt.Sprintf(" %s:%q", n.TypeName(), n.Text(nil)))
		}
	}
	visit(n)
	return b.String()[1:]
}

func newGrammar(t *testing.T, def Def) *Grammar {
	t.Helper()
	g, e := NewGrammar(def)
	require.NoError(t, e)
	return g
}

func single(f Func) Def {
	return Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return f },
		},
	}
}

func parse(t *testing.T, g *Grammar, text string, opts ...Option) tree.Node {
	t.Helper()
	n, e := New(g, source.NewString("test", text), opts...).ParseRoot()
	require.NoError(t, e)
	return n
}

type sample struct {
	src, expected string
}

func testSamples(t *testing.T, g *Grammar, samples []sample) {
	t.Helper()
	for i, s := range samples {
		got := serialize(parse(t, g, s.src))
		if got != s.expected {
			t.Errorf("sample #%d %q: expecting %s, got %s", i, s.src, s.expected, got)
		}
	}
}

func TestCombinators(t *testing.T) {
	samples := []struct {
		name    string
		f       Func
		samples []sample
	}{
		{"seq", Seq(lit("a"), lit("b")), []sample{
			{"ab", `(Root "a" "b")`},
			{"abc", `(Root "a" "b")`},
			{"ac", "!"},
		}},
		{"sel order", Sel(lit("a"), lit("ab")), []sample{
			{"ab", `(Root "a")`},
			{"b", "!"},
		}},
		{"backtracking", Seq(Opt(Seq(lit("a"), lit("x"))), lit("a"), lit("b")), []sample{
			{"ab", `(Root "a" "b")`},
			{"axab", `(Root "a" "x" "a" "b")`},
		}},
		{"rpt", Seq(Rpt(lit("a"), 2, 3), Opt(lit("a"))), []sample{
			{"a", "!"},
			{"aa", `(Root "a" "a")`},
			{"aaaa", `(Root "a" "a" "a" "a")`},
		}},
		{"rpt zero progress", Rpt(Opt(lit("x")), 0, Unbounded), []sample{
			{"", "(Root)"},
			{"xx", `(Root "x" "x")`},
		}},
		{"rpt zero progress min", Seq(Rpt(And(lit("a")), 3, Unbounded), lit("a")), []sample{
			{"a", `(Root "a")`},
		}},
		{"lookahead", Seq(And(lit("a")), Not(lit("ab")), MustRegex(`\w+`, "")), []sample{
			{"ac", `(Root "ac")`},
			{"ab", "!"},
			{"b", "!"},
		}},
		{"skip", Seq(Skip(lit("(")), lit("a"), Skip(lit(")"))), []sample{
			{"(a)", `(Root "a")`},
		}},
		{"caseless", Literal("Ab", true), []sample{
			{"aB", `(Root "aB")`},
		}},
		{"fold", Seq(Fold(Rpt(MustRegex(`[0-9]`, ""), 1, Unbounded)), FoldAs("Empty", Opt(lit("-")))), []sample{
			{"123", `(Root "123")`},
			{"12-", `(Root "12" Empty:"-")`},
		}},
		{"eof", Seq(lit("a"), lit("b"), EOF()), []sample{
			{"ab", `(Root "a" "b")`},
			{"abc", "!"},
		}},
	}

	for _, s := range samples {
		t.Run(s.name, func(t *testing.T) {
			testSamples(t, newGrammar(t, single(s.f)), s.samples)
		})
	}
}

func TestRefsAndMacros(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return Seq(g.Ref("List"), g.Ref("EOF")) },
			"List": func(g *Grammar) Func {
				return Seq(g.Ref("Item"), Rpt(Seq(Skip(lit(",")), g.Ref("Item")), 0, Unbounded))
			},
			"Item": func(g *Grammar) Func {
				return Sel(g.Ref("_NUM"), Seq(Skip(lit("[")), g.Ref("List"), Skip(lit("]"))))
			},
		},
		Macros: RuleTable{
			"_NUM": func(g *Grammar) Func { return Seq(MustRegex(`[0-9]`, ""), Rpt(MustRegex(`[0-9_]`, ""), 0, Unbounded)) },
		},
	})

	testSamples(t, g, []sample{
		{"1", `(Root (List (Item _NUM:"1")))`},
		{"12,[3_4]", `(Root (List (Item _NUM:"12") (Item (List (Item _NUM:"3_4")))))`},
		{"1,", "!"},
		{"[1", "!"},
	})
}

func TestNodeNumbersAndSpans(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return Seq(g.Ref("A"), lit("b")) },
			"A":    func(g *Grammar) Func { return lit("aa") },
		},
	})

	root := parse(t, g, "aab")
	a := root.FirstChild()
	test.ExpectString(t, "A", a.TypeName())
	test.ExpectInt(t, 1, a.FirstChild().Num())
	test.ExpectInt(t, 2, a.Num())
	test.ExpectInt(t, 3, root.LastChild().Num())
	test.ExpectInt(t, 4, root.Num())
	test.ExpectInt(t, 0, a.Start())
	test.ExpectInt(t, 2, a.End())
	test.ExpectInt(t, 3, root.End())
	test.Assert(t, a.Parent() == root, "wrong parent")
	test.Assert(t, a.Next() == root.LastChild(), "wrong sibling")
}

func TestMemo(t *testing.T) {
	calls := 0
	counter := func(p *Parser) (bool, []tree.ID) {
		calls++
		return lit("a")(p)
	}
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func {
				return Sel(Seq(g.Ref("A"), lit("x")), Seq(g.Ref("A"), lit("y")), Seq(g.Ref("A"), lit("z")))
			},
			"A": func(g *Grammar) Func { return counter },
		},
	})

	test.ExpectString(t, `(Root (A "a") "z")`, serialize(parse(t, g, "az")))
	test.ExpectInt(t, 1, calls)

	calls = 0
	test.ExpectString(t, "!", serialize(parse(t, g, "b")))
	test.ExpectInt(t, 1, calls)
}

func TestZeroWidthMemo(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return Seq(g.Ref("E"), g.Ref("E"), lit("x")) },
			"E":    func(g *Grammar) Func { return Opt(lit("y")) },
		},
	})

	root := parse(t, g, "x")
	test.ExpectString(t, `(Root (E) (E) "x")`, serialize(root))
	cs := root.Children()
	require.Len(t, cs, 3)
	test.Assert(t, cs[0] != cs[1], "same node used twice")
	test.Assert(t, !cs[0].Prev().IsValid(), "first child must have no prev")
	test.Assert(t, cs[0].Next() == cs[1], "broken next link")
	test.Assert(t, cs[1].Prev() == cs[0], "broken prev link")
	test.Assert(t, cs[2].Prev() == cs[1], "broken prev link")
	test.ExpectInt(t, 1, tree.SiblingIndex(cs[1]))
	test.Assert(t, cs[0].Num() != cs[1].Num(), "copied node must be renumbered")
}

func TestDeterminism(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Expr",
		Rules: RuleTable{
			"Expr": func(g *Grammar) Func {
				return Seq(g.Ref("Term"), Rpt(Seq(MustRegex(`[-+]`, ""), g.Ref("Term")), 0, Unbounded), g.Ref("EOF"))
			},
			"Term": func(g *Grammar) Func {
				return Sel(Seq(g.Ref("Num"), lit("*"), g.Ref("Term")), g.Ref("Num"))
			},
			"Num": func(g *Grammar) Func { return MustRegex(`\d+`, "") },
		},
	})

	src := source.NewString("test", "1+2*3-4*5*6")
	p := New(g, src)
	first, e := p.ParseRoot()
	require.NoError(t, e)
	second, e := p.ParseRoot()
	require.NoError(t, e)
	third, e := New(g, src).ParseRoot()
	require.NoError(t, e)

	d1 := tree.NewDump(first)
	if diff := cmp.Diff(d1, tree.NewDump(second)); diff != "" {
		t.Errorf("second parse differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(d1, tree.NewDump(third)); diff != "" {
		t.Errorf("new parser result differs (-first +third):\n%s", diff)
	}
	test.Assert(t, p.Root() == second, "wrong root")
}

func TestFailureMessage(t *testing.T) {
	g := newGrammar(t, single(Seq(lit("a"), lit("\n"), lit("bc"), EOF())))

	n := parse(t, g, "a\nbd")
	require.True(t, n.IsFailure())
	test.ExpectString(t, "Parse failed! ( maxposition is line:2 column:0 )", n.Message())
	test.ExpectInt(t, 0, n.Start())
	test.ExpectInt(t, 2, n.End())

	e := FailureError(n)
	test.ExpectErrorCode(t, ParseFailedError, e)
	fe := e.(*xpeg.Error)
	test.ExpectInt(t, 2, fe.Line)
	test.ExpectInt(t, 0, fe.Col)
	test.ExpectString(t, `Parse failed! ( maxposition is line:2 column:0 ) at "b"`, fe.Message)
	require.Nil(t, FailureError(parse(t, g, "a\nbc")))
}

func TestRecursionLimit(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return Sel(Seq(g.Ref("Root"), lit("a")), lit("a")) },
		},
	})

	n := parse(t, g, "aaa", WithMaxDepth(100))
	require.True(t, n.IsFailure())
	test.Assert(t, strings.HasPrefix(n.Message(), "Recursion limit exceeded!"), "wrong message: %s", n.Message())
	v, has := n.Attr(RecursionAttr)
	require.True(t, has)
	test.ExpectString(t, "100", v)
	test.ExpectErrorCode(t, RecursionLimitError, FailureError(n))
}

func TestDepthUnit(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return Sel(Seq(lit("a"), g.Ref("Root")), lit("a")) },
		},
	})

	// every nested Root reference adds one level, the innermost one fails at end of input
	n := parse(t, g, "aaaa", WithMaxDepth(4))
	test.ExpectBool(t, false, n.IsFailure())
	n = parse(t, g, "aaaa", WithMaxDepth(3))
	test.ExpectErrorCode(t, RecursionLimitError, FailureError(n))

	g = newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return g.Ref("_A") },
		},
		Macros: RuleTable{
			"_A": func(g *Grammar) Func { return Sel(Seq(lit("a"), g.Ref("_A")), lit("a")) },
		},
	})
	n = parse(t, g, "aaa", WithMaxDepth(4))
	test.ExpectString(t, `(Root _A:"aaa")`, serialize(n))
	n = parse(t, g, "aaa", WithMaxDepth(3))
	test.ExpectErrorCode(t, RecursionLimitError, FailureError(n))
}

func TestParamRules(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func {
				return Seq(g.Call("List", lit("a")), lit(";"), g.Call("List", g.Ref("B")), g.Ref("EOF"))
			},
			"B": func(g *Grammar) Func { return lit("b") },
		},
		ParamRules: ParamTable{
			"List": {1, func(g *Grammar, args []Func) Func {
				return Seq(args[0], Rpt(Seq(Skip(lit(",")), args[0]), 0, Unbounded))
			}},
		},
	})

	testSamples(t, g, []sample{
		{"a,a;b", `(Root (List "a" "a") ";" (List (B "b")))`},
		{"a;b,b,b", `(Root (List "a") ";" (List (B "b") (B "b") (B "b")))`},
		{"b;a", "!"},
	})
}

func TestGrammarErrors(t *testing.T) {
	samples := []struct {
		def  Def
		code int
	}{
		{single(lit("a")), 0},
		{Def{Root: "Foo", Rules: RuleTable{"Root": func(g *Grammar) Func { return lit("a") }}}, UnknownRuleError},
		{single(Seq()), 0},
		{Def{Root: "Root", Rules: RuleTable{"Root": func(g *Grammar) Func { return g.Ref("Missing") }}}, UnknownRuleError},
		{Def{
			Root:       "Root",
			Rules:      RuleTable{"Root": func(g *Grammar) Func { return g.Call("P") }},
			ParamRules: ParamTable{"P": {1, func(g *Grammar, args []Func) Func { return args[0] }}},
		}, ParamRuleError},
		{Def{
			Root:       "Root",
			Rules:      RuleTable{"Root": func(g *Grammar) Func { return g.Ref("P") }},
			ParamRules: ParamTable{"P": {1, func(g *Grammar, args []Func) Func { return args[0] }}},
		}, ParamRuleError},
		{Def{
			Root:       "Root",
			Rules:      RuleTable{"Root": func(g *Grammar) Func { return lit("a") }},
			ParamRules: ParamTable{"P": {1, func(g *Grammar, args []Func) Func { return g.Ref("Nope") }}},
		}, UnknownRuleError},
		{Def{
			Root:         "Root",
			Rules:        RuleTable{"Root": func(g *Grammar) Func { return lit("a") }},
			SubRuleNames: []string{"Root"},
		}, UnknownSubRuleError},
	}

	for i, s := range samples {
		_, e := NewGrammar(s.def)
		if s.code == 0 {
			if e != nil {
				t.Errorf("sample #%d: unexpected error: %s", i, e)
			}
			continue
		}
		test.ExpectErrorCode(t, s.code, e)
	}

	g := newGrammar(t, single(lit("a")))
	_, e := New(g, source.NewString("", "a")).Parse("Missing")
	test.ExpectErrorCode(t, UnknownRuleError, e)
}

func subParseDef(sub RuleBuilder) Def {
	return Def{
		Root: "Root",
		Rules: RuleTable{
			"Root":   func(g *Grammar) Func { return Seq(Rpt(g.Ref("Item"), 1, Unbounded), g.Ref("EOF")) },
			"Item":   func(g *Grammar) Func { return Seq(MustRegex(`[a-z]+`, ""), Opt(lit(" "))) },
			"Letter": func(g *Grammar) Func { return MustRegex(`[a-z]`, "") },
		},
		SubRules: RuleTable{"Item": sub},
	}
}

func TestSubParse(t *testing.T) {
	g := newGrammar(t, subParseDef(func(g *Grammar) Func {
		return Seq(Rpt(g.Ref("Letter"), 1, Unbounded), Opt(lit(" ")), g.Ref("EOF"))
	}))
	p := New(g, source.NewString("test", "ab cd"))

	_, _, e := p.SubParse("Item")
	test.ExpectErrorCode(t, NoTreeError, e)

	root, e := p.ParseRoot()
	require.NoError(t, e)
	test.ExpectString(t, `(Root (Item "ab" " ") (Item "cd"))`, serialize(root))

	ok, nodes, e := p.SubParse("Item")
	require.NoError(t, e)
	require.True(t, ok)
	require.Len(t, nodes, 2)
	test.ExpectString(t, `(Root (Item (Letter "a") (Letter "b") " ") (Item (Letter "c") (Letter "d")))`, serialize(p.Root()))

	for i, n := range nodes {
		test.Assert(t, n.Parent() == p.Root(), "node #%d: wrong parent", i)
		test.Assert(t, p.Root().Child(i) == n, "node #%d: not in tree", i)
	}
	test.ExpectInt(t, 3, nodes[0].End())
	test.ExpectInt(t, 3, nodes[1].Start())
	test.ExpectInt(t, 5, nodes[1].End())
	test.Assert(t, nodes[0].Next() == nodes[1], "wrong sibling link")
	test.Assert(t, nodes[1].FirstChild().Parent() == nodes[1], "wrong child link")

	_, _, e = p.SubParse("Letter")
	test.ExpectErrorCode(t, UnknownSubRuleError, e)
}

func TestSubParseWindow(t *testing.T) {
	g := newGrammar(t, subParseDef(func(g *Grammar) Func {
		return Seq(g.Ref("Letter"), Opt(Rpt(MustRegex(`.`, "s"), 0, Unbounded)))
	}))
	p := New(g, source.NewString("test", "ab cd"))
	_, e := p.ParseRoot()
	require.NoError(t, e)

	ok, nodes, e := p.SubParse("Item")
	require.NoError(t, e)
	require.True(t, ok)
	test.ExpectString(t, `(Item (Letter "a") "b" " ")`, serialize(nodes[0]))
	test.ExpectString(t, `(Item (Letter "c") "d")`, serialize(nodes[1]))
}

func TestSubParseFailure(t *testing.T) {
	g := newGrammar(t, subParseDef(func(g *Grammar) Func {
		return g.Ref("Letter")
	}))
	p := New(g, source.NewString("test", "a bc"))
	_, e := p.ParseRoot()
	require.NoError(t, e)

	ok, nodes, e := p.SubParse("Item")
	require.NoError(t, e)
	require.False(t, ok)
	require.Len(t, nodes, 2)
	test.ExpectString(t, `(Root ! !)`, serialize(p.Root()))
	test.ExpectString(t, "Parse failed! ( maxposition is line:1 column:1 )", nodes[0].Message())
	test.ExpectString(t, "Parse failed! ( maxposition is line:1 column:3 )", nodes[1].Message())
	test.ExpectErrorCode(t, ParseFailedError, FailureError(nodes[1]))
}

func TestSubParseAll(t *testing.T) {
	g := newGrammar(t, Def{
		Root: "Root",
		Rules: RuleTable{
			"Root": func(g *Grammar) Func { return Seq(g.Ref("A"), g.Ref("B")) },
			"A":    func(g *Grammar) Func { return MustRegex(`a+`, "") },
			"B":    func(g *Grammar) Func { return MustRegex(`b+`, "") },
		},
		SubRules: RuleTable{
			"A": func(g *Grammar) Func { return Rpt(lit("a"), 1, Unbounded) },
			"B": func(g *Grammar) Func { return Rpt(lit("bb"), 1, Unbounded) },
		},
		SubRuleNames: []string{"B", "A"},
	})
	test.ExpectString(t, "B A", strings.Join(g.SubRuleNames(), " "))

	p := New(g, source.NewString("test", "aabbbb"))
	_, e := p.ParseRoot()
	require.NoError(t, e)
	ok, nodes, e := p.SubParseAll()
	require.NoError(t, e)
	require.True(t, ok)
	require.Len(t, nodes, 2)
	test.ExpectString(t, `(Root (A "a" "a") (B "bb" "bb"))`, serialize(p.Root()))
	test.ExpectString(t, "B", nodes[0].TypeName())
}

func TestCompile(t *testing.T) {
	ref := func(name string) *grammar.Expr { return &grammar.Expr{Op: grammar.Ref, Name: name} }
	gr := &grammar.Grammar{
		Root: "Root",
		Rules: []grammar.Rule{
			{Name: "Root", Expr: &grammar.Expr{Op: grammar.Seq, Items: []*grammar.Expr{
				{Op: grammar.Call, Name: "Pair", Items: []*grammar.Expr{ref("Word")}},
				{Op: grammar.Repeat, Min: 0, Max: grammar.Unbounded, Items: []*grammar.Expr{
					{Op: grammar.Seq, Items: []*grammar.Expr{
						{Op: grammar.Skip, Items: []*grammar.Expr{{Op: grammar.Regex, Text: `\s+`}}},
						ref("_ID"),
					}},
				}},
				{Op: grammar.EOF},
			}}},
			{Name: "Word", Expr: &grammar.Expr{Op: grammar.Regex, Text: `[A-Z]+`, Flags: "i"}},
			{Name: "Word", Kind: grammar.SubRule, Expr: &grammar.Expr{Op: grammar.Repeat, Min: 1, Max: grammar.Unbounded, Items: []*grammar.Expr{
				{Op: grammar.Regex, Text: `.`},
			}}},
			{Name: "_ID", Kind: grammar.MacroRule, Expr: &grammar.Expr{Op: grammar.Seq, Items: []*grammar.Expr{
				{Op: grammar.Literal, Text: "id", Caseless: true},
				{Op: grammar.Regex, Text: `\d`},
			}}},
			{Name: "Pair", Params: []string{"x"}, Expr: &grammar.Expr{Op: grammar.Seq, Items: []*grammar.Expr{
				{Op: grammar.Param, Name: "x"},
				{Op: grammar.Literal, Text: "="},
				{Op: grammar.Param, Name: "x"},
			}}},
		},
	}

	g, e := Compile(gr)
	require.NoError(t, e)
	p := New(g, source.NewString("test", "ab=C ID1"))
	n, e := p.ParseRoot()
	require.NoError(t, e)
	test.ExpectString(t, `(Root (Pair (Word "ab") "=" (Word "C")) _ID:"ID1")`, serialize(n))

	ok, _, e := p.SubParseAll()
	require.NoError(t, e)
	require.True(t, ok)
	test.ExpectString(t, `(Root (Pair (Word "a" "b") "=" (Word "C")) _ID:"ID1")`, serialize(p.Root()))

	gr.Rules[1].Expr.Text = `[A-Z`
	_, e = Compile(gr)
	test.ExpectErrorCode(t, WrongRegexpError, e)
}
