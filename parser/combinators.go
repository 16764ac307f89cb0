package parser

import (
	"strings"
	"sync/atomic"

	"github.com/dlclark/regexp2"

	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

// Func is a parsing function.
// On success it returns true and produced nodes, on failure it returns false
// and leaves reader position unchanged.
type Func func(p *Parser) (bool, []tree.ID)

// Seq matches all functions in order.
func Seq(fs ...Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		var res []tree.ID
		for _, f := range fs {
			ok, ns := f(p)
			if !ok {
				p.rewind(start)
				return false, nil
			}
			res = append(res, ns...)
		}
		return true, res
	}
}

// Sel returns the result of the first matching function.
func Sel(fs ...Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		for _, f := range fs {
			p.rewind(start)
			ok, ns := f(p)
			if ok {
				return true, ns
			}
		}
		p.rewind(start)
		return false, nil
	}
}

// Unbounded is the max value of Rpt with no upper limit.
const Unbounded = -1

// Rpt matches f at least min and at most max times, max < 0 means no limit.
// A match that does not advance reader stops repetition and satisfies min.
func Rpt(f Func, min, max int) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		var res []tree.ID
		count := 0
		for max < 0 || count < max {
			before := p.r.Pos()
			ok, ns := f(p)
			if !ok {
				break
			}

			count++
			res = append(res, ns...)
			if p.r.Pos() == before {
				if count < min {
					count = min
				}
				break
			}
		}

		if count < min {
			p.rewind(start)
			return false, nil
		}
		return true, res
	}
}

// Opt always succeeds, with f result if f matches.
func Opt(f Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		ok, ns := f(p)
		if !ok {
			return true, nil
		}
		return true, ns
	}
}

// And succeeds if f matches. It never advances reader and produces no nodes.
func And(f Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		ok, _ := f(p)
		p.rewind(start)
		return ok, nil
	}
}

// Not succeeds if f does not match. It never advances reader and produces no nodes.
func Not(f Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		ok, _ := f(p)
		p.rewind(start)
		return !ok, nil
	}
}

// Skip matches f and drops produced nodes.
func Skip(f Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		ok, _ := f(p)
		return ok, nil
	}
}

// Literal matches exact text and produces a terminal node.
func Literal(text string, caseless bool) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		ok, s := p.r.MatchLiteral(text, true, caseless)
		if !ok {
			return false, nil
		}
		return true, []tree.ID{p.arena.NewTerminal(tree.TerminalType, start, p.r.Pos(), p.nextNum(), s)}
	}
}

// Regex compiles pattern with source.CompileRegex and returns function matching it.
func Regex(pattern, flags string) (Func, error) {
	re, e := source.CompileRegex(pattern, flags)
	if e != nil {
		return nil, e
	}
	return RegexFunc(re), nil
}

// MustRegex is like Regex but panics on incorrect pattern.
func MustRegex(pattern, flags string) Func {
	f, e := Regex(pattern, flags)
	if e != nil {
		panic(e)
	}
	return f
}

// RegexFunc matches anchored regex and produces a terminal node.
func RegexFunc(re *regexp2.Regexp) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		ok, s := p.r.MatchRegex(re, true)
		if !ok {
			return false, nil
		}
		return true, []tree.ID{p.arena.NewTerminal(tree.TerminalType, start, p.r.Pos(), p.nextNum(), s)}
	}
}

// Fold matches f and joins text of produced nodes into a single terminal node.
// No node is produced if joined text is empty.
func Fold(f Func) Func {
	return FoldAs(tree.TerminalType, f)
}

// FoldAs is like Fold, resulting terminal gets given type name.
func FoldAs(typeName string, f Func) Func {
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		ok, ns := f(p)
		if !ok {
			return false, nil
		}

		b := &strings.Builder{}
		for _, id := range ns {
			b.WriteString(p.arena.Node(id).Text(nil))
		}
		if b.Len() == 0 {
			return true, nil
		}
		return true, []tree.ID{p.arena.NewTerminal(typeName, start, p.r.Pos(), p.nextNum(), b.String())}
	}
}

// EOF matches end of input or end of sub-parse window.
func EOF() Func {
	return func(p *Parser) (bool, []tree.ID) {
		return p.r.IsAtEnd(), nil
	}
}

var lastRuleID int64

func newRuleID() int {
	return int(atomic.AddInt64(&lastRuleID, 1))
}

type memoKey struct {
	rule, pos int
}

type memoEntry struct {
	ok   bool
	end  int
	node tree.ID
}

// NonTerm matches f and wraps produced nodes into a non-terminal node of given type.
// Results are memoized per position, every NonTerm call creates a distinct memo identity.
// A memoized zero-width node is returned as a fresh copy.
func NonTerm(typeName string, f Func) Func {
	id := newRuleID()
	return func(p *Parser) (bool, []tree.ID) {
		start := p.r.Pos()
		key := memoKey{id, start}
		if m, has := p.memo[key]; has {
			if !m.ok {
				return false, nil
			}
			p.rewind(m.end)
			if m.end == start {
				// zero-width node may be placed again in the same children list
				return true, []tree.ID{p.arena.Clone(m.node, p.nextNum)}
			}
			return true, []tree.ID{m.node}
		}

		p.enter()
		ok, ns := f(p)
		p.leave()
		if !ok {
			p.memo[key] = memoEntry{}
			return false, nil
		}

		end := p.r.Pos()
		node := p.arena.NewNonTerm(typeName, start, end, p.nextNum(), ns)
		p.memo[key] = memoEntry{true, end, node}
		return true, []tree.ID{node}
	}
}
