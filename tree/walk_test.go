package tree

import (
	"strings"
	"testing"

	"github.com/ava12/xpeg/internal/test"
)

func walkTypes(root Node, mode WalkMode, skip string) string {
	var res []string
	Walk(root, mode, func(n Node) (bool, bool) {
		res = append(res, n.TypeName())
		return n.TypeName() != skip, true
	})
	return strings.Join(res, " ")
}

func TestWalk(t *testing.T) {
	root := build(nt("A", nt("B", nt("C", term("x"))), nt("D", term("y"))))
	test.ExpectString(t, "A B C Terminal D Terminal", walkTypes(root, WalkLtr, ""))
	test.ExpectString(t, "A D Terminal B C Terminal", walkTypes(root, WalkRtl, ""))
	test.ExpectString(t, "A B D Terminal", walkTypes(root, WalkLtr, "B"))
}

func TestTerminals(t *testing.T) {
	root := build(nt("A", nt("B", term("x"), nt("C")), nt("D", term("y")), term("z")))
	test.ExpectString(t, "x", FirstTerminal(root).Text(nil))
	test.ExpectString(t, "z", LastTerminal(root).Text(nil))

	x := FirstTerminal(root)
	test.ExpectString(t, "y", NextTerminal(x).Text(nil))
	test.ExpectString(t, "x", PrevTerminal(NextTerminal(x)).Text(nil))
	test.Assert(t, !NextTerminal(LastTerminal(root)).IsValid(), "expecting no terminal")
}

func TestSelector(t *testing.T) {
	root := sampleTree()
	nums := NewSelector().Search(IsA("Num"), false).Apply(root)
	test.ExpectInt(t, 3, len(nums))

	terms := NewSelector().
		Search(IsA("Num"), false).
		Filter(IsNot(HasText("2"))).
		Extract(Ancestors(0)).
		Apply(root)
	test.ExpectInt(t, 2, len(terms))
	test.ExpectString(t, "1*2", terms[0].Text(nil))
	test.ExpectString(t, "3", terms[1].Text(nil))

	terms[1].SetAttr("last", "yes")
	marked := NewSelector().Search(IsAll(IsA("Term"), HasAttr("last")), true).Apply(root)
	test.ExpectInt(t, 1, len(marked))
	test.Assert(t, marked[0] == terms[1], "wrong node selected")

	firsts := NewSelector().Extract(All(NthChildren(0, -1), NthSiblings(1))).Apply(root.FirstChild())
	test.ExpectInt(t, 3, len(firsts))
	test.ExpectString(t, "Sp", firsts[2].TypeName())

	alt := NewSelector().Extract(Any(NthChildren(10), NthChildren(1))).Apply(root)
	test.ExpectInt(t, 1, len(alt))
	test.ExpectString(t, "Sp", alt[0].TypeName())

	both := NewSelector().Search(IsAny(IsA("Num"), IsA("Sp")), false).Apply(root)
	test.ExpectInt(t, 5, len(both))
}
