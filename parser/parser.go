package parser

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/tliron/commonlog"

	"github.com/ava12/xpeg/source"
	"github.com/ava12/xpeg/tree"
)

// Pass selects which rule set is used for rule references.
type Pass int

const (
	PrimaryPass Pass = iota
	SubPass
)

func (p Pass) String() string {
	if p == SubPass {
		return "sub"
	}
	return "primary"
}

const (
	// DefaultMaxDepth is the default limit of nested rule invocations.
	DefaultMaxDepth = 5000
	// RecursionAttr is set on failure nodes caused by exceeding depth limit.
	RecursionAttr = "recursion"
)

// Option configures a Parser.
type Option func(p *Parser)

// WithMaxDepth sets the limit of nested rule invocations, non-positive values restore default.
// Every rule, macro or parameterized rule invocation adds one level, memoized results add none.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		p.maxDepth = depth
	}
}

// WithLogger sets logger used for parse failure and sub-parse tracing.
func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser applies grammar rules to a single source.
// Parser is not safe for concurrent use, parsers sharing the same grammar are.
type Parser struct {
	g        *Grammar
	src      *source.Source
	r        *source.Reader
	arena    *tree.Arena
	root     tree.ID
	memo     map[memoKey]memoEntry
	nodeNum  int
	depth    int
	maxDepth int
	pass     Pass
	log      commonlog.Logger
}

type depthExceeded struct{}

// New creates a parser for source. The grammar is used as is, no copy is made.
func New(g *Grammar, src *source.Source, opts ...Option) *Parser {
	p := &Parser{
		g:        g,
		src:      src,
		r:        source.NewReader(src),
		arena:    tree.NewArena(src),
		root:     tree.None,
		maxDepth: DefaultMaxDepth,
		log:      commonlog.GetLogger("xpeg.parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Grammar() *Grammar {
	return p.g
}

func (p *Parser) Source() *source.Source {
	return p.src
}

// Reader returns reader used by parsing functions, it can be inspected by custom functions.
func (p *Parser) Reader() *source.Reader {
	return p.r
}

// Pass returns current pass.
func (p *Parser) Pass() Pass {
	return p.pass
}

// Root returns root of the last parsed tree, the node is invalid if nothing was parsed.
func (p *Parser) Root() tree.Node {
	if p.root == tree.None {
		return tree.Node{}
	}
	return p.arena.Node(p.root)
}

// ParseRoot calls Parse with grammar root rule.
func (p *Parser) ParseRoot() (tree.Node, error) {
	return p.Parse(p.g.root)
}

// Parse parses source from its start using named rule as start rule.
// Trailing text is allowed unless the rule requires EOF.
// Parse failure is not an error: resulting node is a failure node (see FailureError).
// Each call produces a new tree, previously returned nodes remain valid.
// Returns UnknownRuleError or ParamRuleError if rule cannot be used as start rule.
func (p *Parser) Parse(name string) (tree.Node, error) {
	r := p.g.rules[name]
	if r == nil {
		if pr, has := p.g.params[name]; has {
			return tree.Node{}, paramRuleError(name, pr.Arity, 0)
		}
		return tree.Node{}, unknownRuleError(name)
	}

	p.arena = tree.NewArena(p.src)
	p.pass = PrimaryPass
	p.r.Reset()
	p.root = p.drive(r, 0, source.NoWindow)
	if p.arena.Node(p.root).IsFailure() {
		p.log.Debugf("parsing %s with %s failed: %s", p.src.Name(), name, p.arena.Node(p.root).Message())
	}
	return p.arena.Node(p.root), nil
}

// SubParse reparses text of every topmost node of named type in the current tree with sub-rule
// of the same name and replaces these nodes with sub-parse results.
// ok is set if all sub-parses succeed, failed sub-parses leave failure nodes in the tree.
// Returns UnknownSubRuleError if there is no such sub-rule and NoTreeError if nothing was parsed yet.
func (p *Parser) SubParse(name string) (ok bool, nodes []tree.Node, e error) {
	r := p.g.subRules[name]
	if r == nil {
		return false, nil, unknownSubRuleError(name)
	}
	if p.root == tree.None || p.arena.Node(p.root).IsFailure() {
		return false, nil, noTreeError()
	}

	targets := p.arena.Node(p.root).Find(name, false)
	p.pass = SubPass
	defer func() {
		p.pass = PrimaryPass
		p.r.ClearWindow()
	}()

	ok = true
	for _, t := range targets {
		start, end := t.Start(), t.End()
		e = p.r.PartialReposition(start, end)
		if e != nil {
			return false, nodes, e
		}

		id := p.drive(r, start, end)
		if t.Parent().IsValid() {
			p.arena.Replace(t.ID(), id)
		} else {
			p.root = id
		}

		n := p.arena.Node(id)
		if n.IsFailure() {
			ok = false
			p.log.Debugf("sub-parsing %s at %d-%d failed: %s", name, start, end, n.Message())
		}
		nodes = append(nodes, n)
	}
	return ok, nodes, nil
}

// SubParseAll calls SubParse for every sub-rule in grammar order.
// All sub-rules are processed even if some sub-parses fail, errors are combined.
func (p *Parser) SubParseAll() (bool, []tree.Node, error) {
	var (
		nodes []tree.Node
		errs  *multierror.Error
	)
	allOK := true
	for _, name := range p.g.subNames {
		ok, ns, e := p.SubParse(name)
		if e != nil {
			errs = multierror.Append(errs, e)
		}
		allOK = allOK && ok
		nodes = append(nodes, ns...)
	}
	return allOK && errs == nil, nodes, errs.ErrorOrNil()
}

func (p *Parser) drive(r *rule, start, end int) (id tree.ID) {
	p.memo = make(map[memoKey]memoEntry)
	p.nodeNum = 0
	p.depth = 0

	defer func() {
		x := recover()
		if x == nil {
			return
		}
		if _, is := x.(depthExceeded); !is {
			panic(x)
		}

		p.depth = 0
		msg := "Recursion limit exceeded! " + p.maxPosition()
		p.log.Criticalf("%s: %s (limit %d)", p.src.Name(), msg, p.maxDepth)
		id = p.arena.NewFailure(msg, start, p.r.MaxPos(), p.nextNum())
		p.arena.Node(id).SetAttr(RecursionAttr, strconv.Itoa(p.maxDepth))
	}()

	ok, ns := r.body(p)
	if ok && (end < 0 || p.r.Pos() == end) {
		id = p.arena.NewNonTerm(r.name, start, p.r.Pos(), p.nextNum(), ns)
		p.arena.Complete(id)
		return id
	}

	return p.arena.NewFailure("Parse failed! "+p.maxPosition(), start, p.r.MaxPos(), p.nextNum())
}

func (p *Parser) maxPosition() string {
	line, col, _, _ := p.src.LineCol(p.r.MaxPos())
	return fmt.Sprintf("( maxposition is line:%d column:%d )", line, col)
}

func (p *Parser) rewind(pos int) {
	p.r.SetPos(pos)
}

func (p *Parser) nextNum() int {
	p.nodeNum++
	return p.nodeNum
}

func (p *Parser) enter() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(depthExceeded{})
	}
}

func (p *Parser) leave() {
	p.depth--
}
