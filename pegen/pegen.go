// Package pegen generates Go source files and JSON descriptions for grammars.
//
// Generated Go file contains a parser.Def value with rule builder tables, a constructor
// returning *parser.Grammar, and one builder function per rule. Builders are named after
// rules with a prefix telling rule kind: p for first pass and parameterised rules,
// s for second pass rules, m for macros.
package pegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/imports"

	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/source"
)

// DefaultImport is the import path of parser package used by generated code.
const DefaultImport = "github.com/ava12/xpeg/parser"

var log = commonlog.GetLogger("xpeg.pegen")

// Options control generated Go code.
type Options struct {
	// Package is the Go package name, required.
	Package string
	// Var is the base name of generated identifiers, default is the root rule name.
	// Generated code contains <Var>Def variable and New<Var> function.
	Var string
	// Import is the parser package import path, default is DefaultImport.
	Import string
	// SourceName is the grammar file name mentioned in generated comments.
	SourceName string
	// JSON makes GenerateFile output grammar structure as JSON instead of Go code.
	JSON bool
}

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

// GenerateJSON returns grammar structure as indented JSON.
func GenerateJSON(g *grammar.Grammar) ([]byte, error) {
	res, e := json.MarshalIndent(g, "", "  ")
	if e != nil {
		return nil, e
	}

	return append(res, '\n'), nil
}

// GenerateGo returns formatted Go source code building grammar g.
// Returns InvalidNameError for bad package or variable names,
// WrongRegexpError for incorrect patterns, and FormatError if generated code cannot be formatted.
func GenerateGo(g *grammar.Grammar, opts Options) ([]byte, error) {
	if opts.Var == "" {
		opts.Var = g.Root
	}
	if opts.Import == "" {
		opts.Import = DefaultImport
	}
	if !identRe.MatchString(opts.Package) {
		return nil, invalidNameError("package", opts.Package)
	}
	if !identRe.MatchString(opts.Var) {
		return nil, invalidNameError("variable", opts.Var)
	}

	for i := range g.Rules {
		r := &g.Rules[i]
		e := checkRegexps(r.Name, r.Expr)
		if e != nil {
			return nil, e
		}
	}

	w := &writer{}
	w.header(g, opts)
	for i := range g.Rules {
		w.builder(&g.Rules[i])
	}

	res, e := imports.Process("", w.b.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if e != nil {
		log.Debugf("unformatted output:\n%s", w.b.String())
		return nil, formatError(e)
	}

	return res, nil
}

func checkRegexps(rule string, x *grammar.Expr) error {
	if x == nil {
		return nil
	}

	if x.Op == grammar.Regex {
		_, e := source.CompileRegex(x.Text, x.Flags)
		if e != nil {
			return wrongRegexpError(rule, x.Text, e)
		}
	}
	for _, item := range x.Items {
		e := checkRegexps(rule, item)
		if e != nil {
			return e
		}
	}
	return nil
}

func builderName(r *grammar.Rule) string {
	switch {
	case r.Kind == grammar.SubRule:
		return "s" + r.Name
	case r.Kind == grammar.MacroRule:
		return "m" + r.Name
	default:
		return "p" + r.Name
	}
}

type regexpLocal struct {
	name, pattern, flags string
}

type writer struct {
	b       bytes.Buffer
	regexps []regexpLocal
}

func (w *writer) printf(format string, params ...any) {
	fmt.Fprintf(&w.b, format, params...)
}

func (w *writer) header(g *grammar.Grammar, opts Options) {
	w.printf("// Code generated by pegen. DO NOT EDIT.\n\npackage %s\n\n", opts.Package)
	if path.Base(opts.Import) == "parser" {
		w.printf("import %q\n\n", opts.Import)
	} else {
		w.printf("import parser %q\n\n", opts.Import)
	}

	if opts.SourceName == "" {
		w.printf("// %sDef describes %s grammar.\n", opts.Var, g.Root)
	} else {
		w.printf("// %sDef describes grammar defined in %s.\n", opts.Var, opts.SourceName)
	}
	w.printf("var %sDef = parser.Def{\n\tRoot: %q,\n", opts.Var, g.Root)
	w.table(g, "Rules", grammar.PrimaryRule)
	w.table(g, "SubRules", grammar.SubRule)
	if names := g.SubRuleNames(); len(names) > 0 {
		w.printf("\tSubRuleNames: []string{")
		for i, name := range names {
			if i > 0 {
				w.printf(", ")
			}
			w.printf("%q", name)
		}
		w.printf("},\n")
	}
	w.table(g, "Macros", grammar.MacroRule)

	hasParams := false
	for i := range g.Rules {
		r := &g.Rules[i]
		if len(r.Params) == 0 {
			continue
		}
		if !hasParams {
			hasParams = true
			w.printf("\tParamRules: parser.ParamTable{\n")
		}
		w.printf("\t\t%q: {Arity: %d, Build: %s},\n", r.Name, len(r.Params), builderName(r))
	}
	if hasParams {
		w.printf("\t},\n")
	}
	w.printf("}\n\n")

	w.printf("// New%s builds %s grammar.\n", opts.Var, g.Root)
	w.printf("func New%s() (*parser.Grammar, error) {\n\treturn parser.NewGrammar(%sDef)\n}\n", opts.Var, opts.Var)
}

func (w *writer) table(g *grammar.Grammar, field string, kind grammar.RuleKind) {
	started := false
	for i := range g.Rules {
		r := &g.Rules[i]
		if r.Kind != kind || len(r.Params) > 0 {
			continue
		}
		if !started {
			started = true
			w.printf("\t%s: parser.RuleTable{\n", field)
		}
		w.printf("\t\t%q: %s,\n", r.Name, builderName(r))
	}
	if started {
		w.printf("\t},\n")
	}
}

func (w *writer) builder(r *grammar.Rule) {
	w.regexps = w.regexps[:0]
	body := w.expr(r.Expr)

	w.printf("\n// %s\n", strings.ReplaceAll(r.String(), "\n", " "))
	if len(r.Params) > 0 {
		w.printf("func %s(g *parser.Grammar, args []parser.Func) parser.Func {\n", builderName(r))
	} else {
		w.printf("func %s(g *parser.Grammar) parser.Func {\n", builderName(r))
	}
	for _, re := range w.regexps {
		w.printf("\t%s := parser.MustRegex(%q, %q)\n", re.name, re.pattern, re.flags)
	}
	w.printf("\treturn %s\n}\n", body)
}

func (w *writer) hoist(pattern, flags string) string {
	for _, re := range w.regexps {
		if re.pattern == pattern && re.flags == flags {
			return re.name
		}
	}

	name := "re" + strconv.Itoa(len(w.regexps)+1)
	w.regexps = append(w.regexps, regexpLocal{name, pattern, flags})
	return name
}

func (w *writer) expr(x *grammar.Expr) string {
	switch x.Op {
	case grammar.Choice:
		return "parser.Sel(\n" + w.items(x.Items, ",\n") + ",\n)"
	case grammar.Seq:
		return "parser.Seq(" + w.items(x.Items, ", ") + ")"
	case grammar.Repeat:
		limit := strconv.Itoa(x.Max)
		if x.Max == grammar.Unbounded {
			limit = "parser.Unbounded"
		}
		return fmt.Sprintf("parser.Rpt(%s, %d, %s)", w.expr(x.Items[0]), x.Min, limit)
	case grammar.Optional:
		return "parser.Opt(" + w.expr(x.Items[0]) + ")"
	case grammar.And:
		return "parser.And(" + w.expr(x.Items[0]) + ")"
	case grammar.Not:
		return "parser.Not(" + w.expr(x.Items[0]) + ")"
	case grammar.Skip:
		return "parser.Skip(" + w.expr(x.Items[0]) + ")"
	case grammar.Literal:
		return fmt.Sprintf("parser.Literal(%q, %t)", x.Text, x.Caseless)
	case grammar.Regex:
		return w.hoist(x.Text, x.Flags)
	case grammar.Ref:
		return fmt.Sprintf("g.Ref(%q)", x.Name)
	case grammar.Call:
		return fmt.Sprintf("g.Call(%q, %s)", x.Name, w.items(x.Items, ", "))
	case grammar.Param:
		return fmt.Sprintf("parser.Arg(args, %d)", x.Index)
	default:
		return "parser.EOF()"
	}
}

func (w *writer) items(xs []*grammar.Expr, sep string) string {
	res := make([]string, len(xs))
	for i, x := range xs {
		res[i] = w.expr(x)
	}
	return strings.Join(res, sep)
}
