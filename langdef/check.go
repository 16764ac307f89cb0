package langdef

import (
	"sort"

	"github.com/dlclark/regexp2"
	"github.com/hashicorp/go-multierror"

	"github.com/ava12/xpeg/grammar"
	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

// Check validates grammar description tree.
// The first pass checks definitions and references, the second one searches for left recursion
// in primary rules and, if there are sub-definitions, in the sub-parse rule set.
// All errors found by a pass are returned as *multierror.Error, the second pass is skipped
// if the first one fails.
func Check(root tree.Node) error {
	defs, e := definitions(root)
	if e != nil {
		return e
	}

	e = checkDefinitions(defs, e)
	e = checkRecursion(defs, e)
	return e
}

func checkDefinitions(defs []definition, e error) error {
	if e != nil {
		return e
	}

	var errs *multierror.Error
	declared := map[string]*definition{nameKey(grammar.EOFName): nil}
	for i := range defs {
		d := &defs[i]
		if d.kind == grammar.SubRule {
			continue
		}

		key := nameKey(d.name)
		if _, has := declared[key]; has {
			errs = multierror.Append(errs, duplicateDefinitionError(d.node, d.name))
		} else {
			declared[key] = d
		}
	}

	subs := make(map[string]bool)
	for i := range defs {
		d := &defs[i]
		if d.kind != grammar.SubRule {
			continue
		}

		key := nameKey(d.name)
		if declared[key] == nil {
			errs = multierror.Append(errs, noPrimaryError(d.node, d.name))
		} else if subs[key] {
			errs = multierror.Append(errs, subDefinedError(d.node, d.name))
		}
		subs[key] = true
	}

	for i := range defs {
		errs = checkReferences(&defs[i], declared, errs)
	}

	log.Debugf("definition check: %d definitions, %d errors", len(defs), errCount(errs))
	return errs.ErrorOrNil()
}

func checkReferences(d *definition, declared map[string]*definition, errs *multierror.Error) *multierror.Error {
	params := make(map[string]bool)
	for _, p := range d.params {
		name := p.Text(nil)
		if params[name] {
			errs = multierror.Append(errs, duplicateDefinitionError(p, name))
		}
		params[name] = true
	}

	for _, pn := range d.body.Find(PrimaryNode, true) {
		n := pn.FirstChild()
		switch n.TypeName() {
		case IdentifierNode, MacroIdentifierNode:
			name := n.Text(nil)
			ref, has := declared[nameKey(name)]
			if !has {
				errs = multierror.Append(errs, undefinedIdentifierError(n, name))
			} else if ref != nil && len(ref.params) > 0 {
				errs = multierror.Append(errs, paramCountError(n, name, len(ref.params), 0))
			}

		case RuleCallNode:
			id := n.FirstChild()
			name := id.Text(nil)
			args := n.LastChild().NumChildren()
			ref, has := declared[nameKey(name)]
			if !has {
				errs = multierror.Append(errs, undefinedIdentifierError(id, name))
			} else if ref == nil || len(ref.params) != args {
				expected := 0
				if ref != nil {
					expected = len(ref.params)
				}
				errs = multierror.Append(errs, paramCountError(id, name, expected, args))
			}

		case ParameterNode:
			name := n.Text(nil)
			if !params[name] {
				errs = multierror.Append(errs, undefinedParameterError(n, name))
			}
		}
	}
	return errs
}

const (
	nullable = 0
	consumes = 1
)

type recursionCheck struct {
	rules    map[string]*grammar.Rule
	resolved map[string]int
	inlining map[string]bool
	regexps  map[string]int
}

// env holds arguments of inlined parameterized rule,
// arguments are evaluated in parent environment.
type env struct {
	args   []*grammar.Expr
	parent *env
}

func checkRecursion(defs []definition, e error) error {
	if e != nil {
		return e
	}

	c := newConverter(defs)
	var primary, sub []*grammar.Rule
	for i := range defs {
		r := c.rule(&defs[i])
		if r.Kind == grammar.SubRule {
			sub = append(sub, r)
		} else {
			primary = append(primary, r)
		}
	}

	var errs *multierror.Error
	seen := make(map[string]bool)
	regexps := make(map[string]int)
	sets := [][]*grammar.Rule{primary}
	if len(sub) > 0 {
		sets = append(sets, append(append([]*grammar.Rule{}, primary...), sub...))
	}

	for _, rules := range sets {
		rc := &recursionCheck{
			rules:    make(map[string]*grammar.Rule),
			resolved: make(map[string]int),
			inlining: make(map[string]bool),
			regexps:  regexps,
		}
		for _, r := range rules {
			rc.rules[r.Name] = r
		}

		for _, le := range rc.resolve() {
			if !seen[le.Error()] {
				seen[le.Error()] = true
				errs = multierror.Append(errs, le)
			}
		}
	}

	log.Debugf("left recursion check: %d rule sets, %d errors", len(sets), errCount(errs))
	return errs.ErrorOrNil()
}

// resolve evaluates rules until all of them get signature values.
// When evaluation stalls, the first cycle found is reported and its starting rule is forced to consume input.
// Forcing removes one rule per round, so the loop ends unless a stalled rule references a rule outside the set:
// no cycle can be traced then and remaining rules are reported as unresolved.
func (rc *recursionCheck) resolve() []error {
	var errs []error
	unresolved := make([]string, 0, len(rc.rules))
	for name := range rc.rules {
		unresolved = append(unresolved, name)
	}
	sort.Strings(unresolved)

	for {
		progress := true
		for progress {
			progress = false
			rest := unresolved[:0]
			for _, name := range unresolved {
				v, ref := rc.eval(rc.rules[name].Expr, nil)
				if ref == "" {
					rc.resolved[name] = v
					progress = true
				} else {
					rest = append(rest, name)
				}
			}
			unresolved = rest
		}

		if len(unresolved) == 0 {
			return errs
		}

		chain, found := rc.trace(unresolved[0])
		if !found {
			return append(errs, unresolvedRecursionError(unresolved))
		}

		errs = append(errs, leftRecursionError(chain))
		rc.resolved[chain[0]] = consumes
		rest := unresolved[:0]
		for _, name := range unresolved {
			if name != chain[0] {
				rest = append(rest, name)
			}
		}
		unresolved = rest
	}
}

// trace follows the first unresolved reference starting from given rule until some rule repeats.
// Returns the cycle, the first and the last elements are equal.
func (rc *recursionCheck) trace(name string) ([]string, bool) {
	chain := []string{name}
	index := map[string]int{name: 0}
	for {
		r := rc.rules[name]
		if r == nil {
			return nil, false
		}

		_, name = rc.eval(r.Expr, nil)
		if name == "" {
			return nil, false
		}

		if i, has := index[name]; has {
			return append(chain[i:], name), true
		}
		index[name] = len(chain)
		chain = append(chain, name)
	}
}

// eval returns either resolved signature value and empty string or the name of the first unresolved rule.
func (rc *recursionCheck) eval(x *grammar.Expr, en *env) (int, string) {
	switch x.Op {
	case grammar.Choice:
		res := consumes
		for _, item := range x.Items {
			v, ref := rc.eval(item, en)
			if ref != "" {
				return nullable, ref
			}
			res &= v
		}
		return res, ""

	case grammar.Seq:
		for _, item := range x.Items {
			v, ref := rc.eval(item, en)
			if ref != "" || v == consumes {
				return v, ref
			}
		}
		return nullable, ""

	case grammar.Repeat:
		v, ref := rc.eval(x.Items[0], en)
		if ref != "" || x.Min > 0 {
			return v, ref
		}
		return nullable, ""

	case grammar.Optional, grammar.And, grammar.Not:
		_, ref := rc.eval(x.Items[0], en)
		return nullable, ref

	case grammar.Skip:
		return rc.eval(x.Items[0], en)

	case grammar.Literal:
		if x.Text == "" {
			return nullable, ""
		}
		return consumes, ""

	case grammar.Regex:
		return rc.regexValue(x), ""

	case grammar.Ref:
		v, has := rc.resolved[x.Name]
		if !has {
			return nullable, x.Name
		}
		return v, ""

	case grammar.Param:
		if en == nil || x.Index >= len(en.args) {
			return consumes, ""
		}
		return rc.eval(en.args[x.Index], en.parent)

	case grammar.Call:
		r := rc.rules[x.Name]
		if r == nil || rc.inlining[x.Name] {
			return rc.eval(&grammar.Expr{Op: grammar.Ref, Name: x.Name}, en)
		}

		rc.inlining[x.Name] = true
		v, ref := rc.eval(r.Expr, &env{args: x.Items, parent: en})
		delete(rc.inlining, x.Name)
		return v, ref

	default:
		return nullable, ""
	}
}

func (rc *recursionCheck) regexValue(x *grammar.Expr) int {
	key := x.Flags + ":" + x.Text
	v, has := rc.regexps[key]
	if has {
		return v
	}

	v = consumes
	re, e := source.CompileRegex(x.Text, x.Flags)
	if e == nil && matchesEmpty(re) {
		v = nullable
	}
	rc.regexps[key] = v
	return v
}

func matchesEmpty(re *regexp2.Regexp) bool {
	ok, e := re.MatchString("")
	return e == nil && ok
}

func errCount(errs *multierror.Error) int {
	if errs == nil {
		return 0
	}
	return len(errs.Errors)
}
