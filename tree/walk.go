package tree

// Ancestor returns ancestor of n, level 0 is the parent.
func Ancestor(n Node, level int) Node {
	for n.IsValid() && level >= 0 {
		n = n.Parent()
		level--
	}
	return n
}

// NodeLevel returns number of ancestors of n.
func NodeLevel(n Node) (l int) {
	if !n.IsValid() {
		return
	}

	p := n.Parent()
	for p.IsValid() {
		l++
		p = p.Parent()
	}
	return
}

// SiblingIndex returns index of n in its parent children list.
func SiblingIndex(n Node) (i int) {
	if !n.IsValid() {
		return
	}

	p := n.Prev()
	for p.IsValid() {
		i++
		p = p.Prev()
	}
	return
}

// NthSibling returns sibling at offset i from n, negative offsets go left.
func NthSibling(n Node, i int) Node {
	if i < 0 {
		for n.IsValid() && i < 0 {
			n = n.Prev()
			i++
		}
	} else {
		for n.IsValid() && i > 0 {
			n = n.Next()
			i--
		}
	}
	return n
}

// AllLevels tells NumOfChildren to count all descendants.
const AllLevels = -1

// NumOfChildren counts children of parent down to given number of nested levels.
func NumOfChildren(parent Node, levels int) int {
	i := 0
	for _, c := range parent.Children() {
		i++
		if levels != 0 {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// FirstTerminal returns the leftmost terminal node of subtree or invalid node.
func FirstTerminal(n Node) Node {
	if !n.IsValid() || n.NumChildren() == 0 {
		if n.Kind() == Terminal {
			return n
		}
		return Node{}
	}

	for c := n.FirstChild(); c.IsValid(); c = c.Next() {
		t := FirstTerminal(c)
		if t.IsValid() {
			return t
		}
	}
	return Node{}
}

// LastTerminal returns the rightmost terminal node of subtree or invalid node.
func LastTerminal(n Node) Node {
	if !n.IsValid() || n.NumChildren() == 0 {
		if n.Kind() == Terminal {
			return n
		}
		return Node{}
	}

	for c := n.LastChild(); c.IsValid(); c = c.Prev() {
		t := LastTerminal(c)
		if t.IsValid() {
			return t
		}
	}
	return Node{}
}

// NextTerminal returns the first terminal node following subtree n.
func NextTerminal(n Node) Node {
	for n.IsValid() {
		for nn := n.Next(); nn.IsValid(); nn = nn.Next() {
			t := FirstTerminal(nn)
			if t.IsValid() {
				return t
			}
		}
		n = n.Parent()
	}
	return Node{}
}

// PrevTerminal returns the last terminal node preceding subtree n.
func PrevTerminal(n Node) Node {
	for n.IsValid() {
		for nn := n.Prev(); nn.IsValid(); nn = nn.Prev() {
			t := LastTerminal(nn)
			if t.IsValid() {
				return t
			}
		}
		n = n.Parent()
	}
	return Node{}
}

// NodeVisitor is called for each visited node.
// walkChildren tells walker to visit node children, walkSiblings tells it to visit following siblings.
type NodeVisitor func(n Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits subtree n in depth-first pre-order.
func Walk(n Node, mode WalkMode, visitor NodeVisitor) {
	if n.IsValid() {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if vc && n.NumChildren() > 0 {
		if rtl {
			n = n.LastChild()
			for n.IsValid() && vc {
				vc = visitNode(n, v, true)
				n = n.Prev()
			}
		} else {
			n = n.FirstChild()
			for n.IsValid() && vc {
				vc = visitNode(n, v, false)
				n = n.Next()
			}
		}
	}

	return vs
}

type NodeFilter func(n Node) bool
type NodeExtractor func(n Node) []Node
type NodeSelector func(n Node) []Node

// Selector is a pipeline of node selectors applied to input nodes in sequence.
// It is the query interface used by tree action scripts.
type Selector struct {
	selectors []NodeSelector
}

func NewSelector() *Selector {
	return &Selector{}
}

// Apply runs the pipeline and returns distinct resulting nodes in order of appearance.
func (s *Selector) Apply(input ...Node) []Node {
	res := make([]Node, 0)
	index := make(map[Node]bool)
	hasTransformers := (len(s.selectors) > 0)

	for i, n := range input {
		if !n.IsValid() {
			continue
		}

		var ns []Node
		if hasTransformers {
			ns = selectNodes(input[i:i+1], s.selectors)
		} else {
			ns = input[i : i+1]
		}

		for _, tn := range ns {
			if !index[tn] {
				index[tn] = true
				res = append(res, tn)
			}
		}
	}

	return res
}

func selectNodes(ns []Node, nss []NodeSelector) []Node {
	res := make([]Node, 0)
	s := nss[0]
	nss = nss[1:]
	goDeeper := (len(nss) > 0)
	for _, n := range ns {
		if goDeeper {
			res = append(res, selectNodes(s(n), nss)...)
		} else {
			res = append(res, s(n)...)
		}
	}
	return res
}

func (s *Selector) Use(ns NodeSelector) *Selector {
	if ns != nil {
		s.selectors = append(s.selectors, ns)
	}
	return s
}

func (s *Selector) Filter(nf NodeFilter) *Selector {
	return s.Use(func(n Node) []Node {
		if nf(n) {
			return []Node{n}
		} else {
			return nil
		}
	})
}

func (s *Selector) Extract(ne NodeExtractor) *Selector {
	return s.Use(func(n Node) []Node {
		return ne(n)
	})
}

// Search selects all matching nodes of subtree, including subtree root.
// If deepSearch is not set, matching nodes are not searched for nested matches.
func (s *Selector) Search(nf NodeFilter, deepSearch bool) *Selector {
	return s.Use(func(n Node) []Node {
		res := make([]Node, 0)
		visitNode(n, func(nn Node) (vc, vs bool) {
			if nf(nn) {
				res = append(res, nn)
				return deepSearch, true
			} else {
				return true, true
			}
		}, false)
		return res
	})
}

func IsNot(f NodeFilter) NodeFilter {
	return func(n Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n Node) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}

func IsAll(fs ...NodeFilter) NodeFilter {
	return func(n Node) bool {
		for _, f := range fs {
			if !f(n) {
				return false
			}
		}
		return true
	}
}

func IsA(names ...string) NodeFilter {
	return func(n Node) bool {
		tn := n.TypeName()
		for _, name := range names {
			if tn == name {
				return true
			}
		}

		return false
	}
}

// HasText matches nodes whose text equals one of texts.
func HasText(texts ...string) NodeFilter {
	return func(n Node) bool {
		t := n.Text(nil)
		for _, text := range texts {
			if text == t {
				return true
			}
		}

		return false
	}
}

// HasAttr matches nodes having attribute key, with one of values if any given.
func HasAttr(key string, values ...string) NodeFilter {
	return func(n Node) bool {
		v, has := n.Attr(key)
		if !has || len(values) == 0 {
			return has
		}

		for _, value := range values {
			if v == value {
				return true
			}
		}
		return false
	}
}

func Any(nss ...NodeExtractor) NodeExtractor {
	return func(n Node) (res []Node) {
		for _, ns := range nss {
			res = ns(n)
			if len(res) > 0 {
				break
			}
		}
		return
	}
}

func All(nss ...NodeExtractor) NodeExtractor {
	return func(n Node) (res []Node) {
		for _, ns := range nss {
			res = append(res, ns(n)...)
		}
		return
	}
}

func Ancestors(levels ...int) NodeExtractor {
	return func(n Node) []Node {
		res := make([]Node, 0)
		for _, i := range levels {
			nn := Ancestor(n, i)
			if nn.IsValid() {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthChildren(indexes ...int) NodeExtractor {
	return func(n Node) []Node {
		res := make([]Node, 0)
		for _, i := range indexes {
			nn := n.Child(i)
			if nn.IsValid() {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthSiblings(indexes ...int) NodeExtractor {
	return func(n Node) []Node {
		res := make([]Node, 0)
		for _, i := range indexes {
			nn := NthSibling(n, i)
			if nn.IsValid() {
				res = append(res, nn)
			}
		}
		return res
	}
}
