package parser

import (
	"sort"
	"sync"

	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/tree"
)

// RuleBuilder creates rule body. It is called once per grammar and must only combine functions,
// references to other rules are made with Grammar.Ref and Grammar.Call.
type RuleBuilder func(g *Grammar) Func

// RuleTable maps rule names to rule builders.
type RuleTable map[string]RuleBuilder

// ParamRule is a rule taking Arity argument functions.
// Build is called once per call site, args has exactly Arity elements.
type ParamRule struct {
	Arity int
	Build func(g *Grammar, args []Func) Func
}

type ParamTable map[string]ParamRule

// Def holds everything needed to create a grammar.
type Def struct {
	// Root is the name of start rule used by Parser.ParseRoot.
	Root string
	// Rules are primary rules, each one produces a node of the same name.
	Rules RuleTable
	// SubRules are used instead of primary rules of the same name when sub-parsing.
	SubRules RuleTable
	// SubRuleNames lists sub-rules in sub-parse order, all SubRules in name order if empty.
	SubRuleNames []string
	// Macros produce a single terminal node of the same name containing all matched text.
	Macros RuleTable
	ParamRules ParamTable
}

type rule struct {
	name string
	body Func
	node Func
}

type slot struct {
	name    string
	primary *rule
	sub     *rule
}

type callSite struct {
	name  string
	arity int
}

// Grammar is a set of linked rules. It is immutable after creation and can be shared by parsers.
type Grammar struct {
	root     string
	rules    map[string]*rule
	subRules map[string]*rule
	subNames []string
	params   ParamTable

	lock   sync.Mutex
	slots  map[string]*slot
	calls  []callSite
	linked bool
}

var eofRule = &rule{name: grammar.EOFName, body: EOF(), node: EOF()}

// NewGrammar builds and links all rules.
// Returns UnknownRuleError for references to missing rules and ParamRuleError for wrong argument counts.
func NewGrammar(def Def) (*Grammar, error) {
	g := &Grammar{
		root:     def.Root,
		rules:    make(map[string]*rule),
		subRules: make(map[string]*rule),
		params:   def.ParamRules,
		slots:    make(map[string]*slot),
	}
	if g.params == nil {
		g.params = ParamTable{}
	}

	for _, name := range sortedNames(def.Rules) {
		body := def.Rules[name](g)
		g.rules[name] = &rule{name, body, NonTerm(name, body)}
	}
	for _, name := range sortedNames(def.Macros) {
		body := def.Macros[name](g)
		g.rules[name] = &rule{name, body, FoldAs(name, nested(body))}
	}
	for _, name := range sortedNames(def.SubRules) {
		body := def.SubRules[name](g)
		g.subRules[name] = &rule{name, body, NonTerm(name, body)}
	}

	names := make([]string, 0, len(g.params))
	for name := range g.params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pr := g.params[name]
		pr.Build(g, make([]Func, pr.Arity))
	}

	g.subNames = def.SubRuleNames
	if len(g.subNames) == 0 {
		g.subNames = sortedNames(def.SubRules)
	}
	for _, name := range g.subNames {
		if g.subRules[name] == nil {
			return nil, unknownSubRuleError(name)
		}
	}

	if g.rules[g.root] == nil {
		if _, has := g.params[g.root]; has {
			return nil, paramRuleError(g.root, g.params[g.root].Arity, 0)
		}
		return nil, unknownRuleError(g.root)
	}

	g.lock.Lock()
	defer g.lock.Unlock()
	for _, c := range g.calls {
		pr, has := g.params[c.name]
		if !has {
			return nil, unknownRuleError(c.name)
		}
		if pr.Arity != c.arity {
			return nil, paramRuleError(c.name, pr.Arity, c.arity)
		}
	}
	for _, s := range g.slots {
		e := g.resolve(s)
		if e != nil {
			return nil, e
		}
	}
	g.linked = true
	return g, nil
}

// nested counts macro invocation toward depth limit, NonTerm does the same for rules.
func nested(f Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		p.enter()
		ok, ns := f(p)
		p.leave()
		return ok, ns
	}
}

func sortedNames(t RuleTable) []string {
	res := make([]string, 0, len(t))
	for name := range t {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (g *Grammar) resolve(s *slot) error {
	s.primary = g.rules[s.name]
	s.sub = g.subRules[s.name]
	if s.primary == nil {
		if s.name == grammar.EOFName {
			s.primary = eofRule
		} else if _, has := g.params[s.name]; has {
			return paramRuleError(s.name, g.params[s.name].Arity, 0)
		} else {
			return unknownRuleError(s.name)
		}
	}
	return nil
}

// Ref returns function matching named rule.
// The rule is looked up when the grammar is linked, so forward and recursive references are allowed.
// During sub-parse pass sub-rule of the same name takes precedence.
func (g *Grammar) Ref(name string) Func {
	g.lock.Lock()
	s := g.slots[name]
	if s == nil {
		s = &slot{name: name}
		g.slots[name] = s
		if g.linked {
			g.resolve(s)
		}
	}
	g.lock.Unlock()

	return func(p *Parser) (bool, []tree.ID) {
		r := s.primary
		if p.pass == SubPass && s.sub != nil {
			r = s.sub
		}
		return r.node(p)
	}
}

// Call returns function matching parameterized rule with given arguments.
// Rule body is built on first use, each call site gets its own memo identity.
func (g *Grammar) Call(name string, args ...Func) Func {
	g.lock.Lock()
	g.calls = append(g.calls, callSite{name, len(args)})
	g.lock.Unlock()

	var once sync.Once
	var f Func
	return func(p *Parser) (bool, []tree.ID) {
		once.Do(func() {
			f = NonTerm(name, g.params[name].Build(g, args))
		})
		return f(p)
	}
}

func (g *Grammar) Root() string {
	return g.root
}

// SubRuleNames returns sub-rule names in sub-parse order.
func (g *Grammar) SubRuleNames() []string {
	return g.subNames
}

// HasRule reports whether primary rule or macro exists.
func (g *Grammar) HasRule(name string) bool {
	return g.rules[name] != nil
}

func (g *Grammar) HasSubRule(name string) bool {
	return g.subRules[name] != nil
}
