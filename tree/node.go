// Package tree defines parse tree nodes and functions to traverse, query, and reconstruct trees.
//
// Nodes are stored in an Arena and referenced by ID, Node is a lightweight handle (arena, ID).
// Parent and sibling links are plain IDs filled by Arena.Complete after a (sub)tree is built.
package tree

import (
	"sort"
	"strings"

	"github.com/ava12/xpeg/source"
)

// Kind distinguishes node variants.
type Kind int

const (
	Terminal Kind = iota
	NonTerm
	Failure
	Reconstructed
)

var kindNames = [...]string{"terminal", "nonterminal", "failure", "reconstructed"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Default type names.
const (
	TerminalType = "Terminal"
	FailureType  = "Failure"
)

// ID is a node index in arena.
type ID int

// None is the ID of a missing node.
const None ID = -1

type record struct {
	kind       Kind
	typeName   string
	start, end int
	num        int
	parent     ID
	prev, next ID
	children   []ID
	text       string
	attrs      map[string]string
}

// Arena stores all nodes of a parse tree, including nodes created by sub-parsing.
type Arena struct {
	src   *source.Source
	nodes []record
}

// NewArena creates an empty arena for nodes referring to src.
func NewArena(src *source.Source) *Arena {
	return &Arena{src: src}
}

func (a *Arena) Source() *source.Source {
	return a.src
}

// Len returns total number of nodes in arena.
func (a *Arena) Len() int {
	return len(a.nodes)
}

func (a *Arena) add(r record) ID {
	r.parent, r.prev, r.next = None, None, None
	a.nodes = append(a.nodes, r)
	return ID(len(a.nodes) - 1)
}

// NewTerminal adds a terminal node.
func (a *Arena) NewTerminal(typeName string, start, end, num int, text string) ID {
	return a.add(record{kind: Terminal, typeName: typeName, start: start, end: end, num: num, text: text})
}

// NewNonTerm adds a non-terminal node, arena takes ownership of children slice.
func (a *Arena) NewNonTerm(typeName string, start, end, num int, children []ID) ID {
	return a.add(record{kind: NonTerm, typeName: typeName, start: start, end: end, num: num, children: children})
}

// NewFailure adds a failure node carrying message.
func (a *Arena) NewFailure(message string, start, end, num int) ID {
	return a.add(record{kind: Failure, typeName: FailureType, start: start, end: end, num: num, text: message})
}

func (a *Arena) newReconstructed(typeName string, start, end, num int, text string, children []ID) ID {
	return a.add(record{kind: Reconstructed, typeName: typeName, start: start, end: end, num: num, text: text, children: children})
}

// Clone adds a detached deep copy of subtree id. Copies are numbered by num, children first.
func (a *Arena) Clone(id ID, num func() int) ID {
	r := a.nodes[id]
	if r.attrs != nil {
		attrs := make(map[string]string, len(r.attrs))
		for k, v := range r.attrs {
			attrs[k] = v
		}
		r.attrs = attrs
	}
	if r.children != nil {
		cs := make([]ID, len(r.children))
		for i, c := range r.children {
			cs[i] = a.Clone(c, num)
		}
		r.children = cs
	}
	r.num = num()
	return a.add(r)
}

// Node returns handle for id, handle is invalid if id is out of range.
func (a *Arena) Node(id ID) Node {
	if a == nil || id < 0 || int(id) >= len(a.nodes) {
		return Node{}
	}
	return Node{a, id}
}

// Complete fills parent and sibling links of all descendants of root.
// Links of root itself are left intact.
func (a *Arena) Complete(root ID) {
	stack := []ID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cs := a.nodes[id].children
		for i, c := range cs {
			r := &a.nodes[c]
			r.parent = id
			r.prev, r.next = None, None
			if i > 0 {
				r.prev = cs[i-1]
			}
			if i < len(cs)-1 {
				r.next = cs[i+1]
			}
			stack = append(stack, c)
		}
	}
}

// Replace puts node n in place of node old in old's parent children list.
// n takes over old's parent and sibling links, old becomes detached.
// Replace does nothing if old has no parent.
func (a *Arena) Replace(old, n ID) {
	or := &a.nodes[old]
	p := or.parent
	if p == None {
		return
	}

	cs := a.nodes[p].children
	for i, c := range cs {
		if c == old {
			cs[i] = n
			break
		}
	}

	nr := &a.nodes[n]
	nr.parent, nr.prev, nr.next = p, or.prev, or.next
	if nr.prev != None {
		a.nodes[nr.prev].next = n
	}
	if nr.next != None {
		a.nodes[nr.next].prev = n
	}
	or.parent, or.prev, or.next = None, None, None
}

// Node is a handle of a node stored in arena. Zero value is an invalid node.
type Node struct {
	arena *Arena
	id    ID
}

var invalidRecord = record{parent: None, prev: None, next: None}

func (n Node) rec() *record {
	if n.arena == nil {
		r := invalidRecord
		return &r
	}
	return &n.arena.nodes[n.id]
}

func (n Node) IsValid() bool {
	return n.arena != nil
}

func (n Node) ID() ID {
	if n.arena == nil {
		return None
	}
	return n.id
}

func (n Node) Arena() *Arena {
	return n.arena
}

func (n Node) Kind() Kind {
	return n.rec().kind
}

func (n Node) IsNonTerm() bool {
	return n.arena != nil && n.rec().kind == NonTerm
}

func (n Node) IsFailure() bool {
	return n.arena != nil && n.rec().kind == Failure
}

func (n Node) TypeName() string {
	return n.rec().typeName
}

// Start returns position of the first node character.
func (n Node) Start() int {
	return n.rec().start
}

// End returns position following the last node character.
func (n Node) End() int {
	return n.rec().end
}

// Num returns node creation number within its (sub)parse.
func (n Node) Num() int {
	return n.rec().num
}

// Message returns failure message for failure nodes and empty string for others.
func (n Node) Message() string {
	r := n.rec()
	if r.kind != Failure {
		return ""
	}
	return r.text
}

// LineCol returns 1-based line and 0-based column of node start.
func (n Node) LineCol() (line, col int) {
	p := n.Pos()
	return p.Line(), p.Col()
}

// EndLineCol returns 1-based line and 0-based column of node end.
func (n Node) EndLineCol() (line, col int) {
	if n.arena == nil {
		return 0, 0
	}
	p := n.arena.src.Pos(n.rec().end)
	return p.Line(), p.Col()
}

// Pos returns start position usable for error reporting.
func (n Node) Pos() source.Pos {
	if n.arena == nil {
		return source.Pos{}
	}
	return n.arena.src.Pos(n.rec().start)
}

func (n Node) link(id ID) Node {
	if n.arena == nil {
		return Node{}
	}
	return n.arena.Node(id)
}

func (n Node) Parent() Node {
	return n.link(n.rec().parent)
}

func (n Node) Prev() Node {
	return n.link(n.rec().prev)
}

func (n Node) Next() Node {
	return n.link(n.rec().next)
}

func (n Node) NumChildren() int {
	return len(n.rec().children)
}

// Child returns i-th child, negative index counts from the last child (-1).
func (n Node) Child(i int) Node {
	cs := n.rec().children
	if i < 0 {
		i += len(cs)
	}
	if i < 0 || i >= len(cs) {
		return Node{}
	}
	return n.link(cs[i])
}

func (n Node) FirstChild() Node {
	return n.Child(0)
}

func (n Node) LastChild() Node {
	return n.Child(-1)
}

func (n Node) Children() []Node {
	cs := n.rec().children
	res := make([]Node, len(cs))
	for i, c := range cs {
		res[i] = n.arena.Node(c)
	}
	return res
}

// ChildrenOfType returns direct children having given type name.
func (n Node) ChildrenOfType(name string) []Node {
	var res []Node
	for _, c := range n.rec().children {
		if n.arena.nodes[c].typeName == name {
			res = append(res, n.arena.Node(c))
		}
	}
	return res
}

// Find returns all nodes of given type in subtree (including n itself) in depth-first pre-order.
// If deep is not set, found nodes are not searched for nested matches.
func (n Node) Find(name string, deep bool) []Node {
	if n.arena == nil {
		return nil
	}

	var res []Node
	var visit func(id ID)
	visit = func(id ID) {
		r := &n.arena.nodes[id]
		if r.typeName == name {
			res = append(res, n.arena.Node(id))
			if !deep {
				return
			}
		}
		for _, c := range r.children {
			visit(c)
		}
	}
	visit(n.id)
	return res
}

// Text returns node text.
// Non-terminal text is the concatenation of its children text unless its type name
// is a key of overrides, in this case override value is used instead.
// Terminal, failure, and reconstructed nodes return their stored text.
func (n Node) Text(overrides map[string]string) string {
	if n.arena == nil {
		return ""
	}

	b := &strings.Builder{}
	n.arena.writeText(b, n.id, overrides)
	return b.String()
}

func (a *Arena) writeText(b *strings.Builder, id ID, overrides map[string]string) {
	r := &a.nodes[id]
	if r.kind != NonTerm {
		b.WriteString(r.text)
		return
	}

	if s, has := overrides[r.typeName]; has {
		b.WriteString(s)
		return
	}

	for _, c := range r.children {
		a.writeText(b, c, overrides)
	}
}

// SourceText returns source text spanned by node.
func (n Node) SourceText() string {
	if n.arena == nil {
		return ""
	}
	r := n.rec()
	return n.arena.src.Slice(r.start, r.end)
}

// Attr returns attribute value, the flag is false if attribute is not set.
func (n Node) Attr(key string) (string, bool) {
	v, has := n.rec().attrs[key]
	return v, has
}

// SetAttr sets attribute value, does nothing for invalid node.
func (n Node) SetAttr(key, value string) {
	if n.arena == nil {
		return
	}

	r := n.rec()
	if r.attrs == nil {
		r.attrs = make(map[string]string)
	}
	r.attrs[key] = value
}

func (n Node) DelAttr(key string) {
	delete(n.rec().attrs, key)
}

// AttrKeys returns sorted attribute names.
func (n Node) AttrKeys() []string {
	attrs := n.rec().attrs
	res := make([]string, 0, len(attrs))
	for k := range attrs {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
