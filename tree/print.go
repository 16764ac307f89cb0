package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type PrintFlags int

const (
	// PrintText adds quoted node text to each line.
	PrintText PrintFlags = 1 << iota
	// PrintAttrs adds node attributes to each line.
	PrintAttrs
)

// Print writes indented tree representation, one node per line:
//
//	<num> : <type> : (<line>:<col> - <line>:<col>) ["<text>"] [{key=value, ...}]
//
// Nested nodes are indented with two spaces per level.
func Print(w io.Writer, root Node, flags PrintFlags) error {
	var e error
	level := 0
	var visit func(n Node)
	visit = func(n Node) {
		if e != nil {
			return
		}

		_, e = io.WriteString(w, strings.Repeat("  ", level)+FormatNode(n, flags)+"\n")
		level++
		for _, c := range n.Children() {
			visit(c)
		}
		level--
	}

	if root.IsValid() {
		visit(root)
	}
	return e
}

// FormatNode returns single-line node representation used by Print.
func FormatNode(n Node, flags PrintFlags) string {
	l, c := n.LineCol()
	el, ec := n.EndLineCol()
	res := fmt.Sprintf("%d : %s : (%d:%d - %d:%d)", n.Num(), n.TypeName(), l, c, el, ec)
	if flags&PrintText != 0 {
		res += " " + strconv.Quote(n.Text(nil))
	}
	if flags&PrintAttrs != 0 {
		keys := n.AttrKeys()
		if len(keys) > 0 {
			pairs := make([]string, len(keys))
			for i, k := range keys {
				v, _ := n.Attr(k)
				pairs[i] = k + "=" + strconv.Quote(v)
			}
			res += " {" + strings.Join(pairs, ", ") + "}"
		}
	}
	return res
}

// Dump is a serializable tree representation.
type Dump struct {
	Num      int               `json:"num"`
	Type     string            `json:"type"`
	Kind     string            `json:"kind"`
	Start    int               `json:"start"`
	End      int               `json:"end"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Children []*Dump           `json:"children,omitempty"`
}

// NewDump converts subtree to Dump. Text is set for nodes having no children.
func NewDump(n Node) *Dump {
	if !n.IsValid() {
		return nil
	}

	r := n.rec()
	d := &Dump{
		Num:   r.num,
		Type:  r.typeName,
		Kind:  r.kind.String(),
		Start: r.start,
		End:   r.end,
	}
	if len(r.children) == 0 {
		d.Text = n.Text(nil)
	}
	if len(r.attrs) > 0 {
		d.Attrs = make(map[string]string, len(r.attrs))
		for k, v := range r.attrs {
			d.Attrs[k] = v
		}
	}
	for _, c := range n.Children() {
		d.Children = append(d.Children, NewDump(c))
	}
	return d
}
