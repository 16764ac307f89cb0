package source

import (
	"testing"

	"github.com/ava12/xpeg/internal/test"
)

type result struct {
	pos, line, col int
	char           string
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 0, ""},
		},
		"\n": {
			{0, 1, 0, "\n"},
			{1, 2, 0, ""},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 0, "4"},
			{5, 3, 1, "\n"},
			{6, 4, 0, "6"},
			{7, 4, 1, "7"},
			{14, 4, 8, "e"},
			{19, 6, 1, "\n"},
			{20, 7, 0, ""},
			{9, 4, 3, "9"},
			{5, 3, 1, "\n"},
		},
		"да\nнет": {
			{1, 1, 1, "а"},
			{3, 2, 0, "н"},
			{6, 2, 3, ""},
		},
	}

	for text, results := range samples {
		source := NewString("", text)
		for _, res := range results {
			l, c, ch, e := source.LineCol(res.pos)
			if e != nil {
				t.Errorf("sample %q: unexpected error %s", text, e)
				continue
			}
			if l != res.line || c != res.col || ch != res.char {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d, char: %q", text, res, l, c, ch)
			}
		}
	}
}

func TestSourceLineColOutOfRange(t *testing.T) {
	s := NewString("", "ab")
	_, _, _, e := s.LineCol(3)
	test.ExpectErrorCode(t, OutOfRangeError, e)
	_, _, _, e = s.LineCol(-1)
	test.ExpectErrorCode(t, OutOfRangeError, e)
}

func TestSourceOffset(t *testing.T) {
	s := NewString("", "hello\nworld\n")
	samples := []result{
		{0, 0, 1, ""},
		{0, 1, 0, ""},
		{1, 1, 1, ""},
		{6, 2, 0, ""},
		{7, 2, 1, ""},
		{12, 2, 10, ""},
		{12, 3, 0, ""},
		{12, 4, 0, ""},
	}
	for _, res := range samples {
		test.ExpectInt(t, res.pos, s.Offset(res.line, res.col))
	}
}

func TestSetPos(t *testing.T) {
	r := NewReader(NewString("", "abc"))
	test.Assert(t, r.SetPos(3) == nil, "expecting success")
	test.ExpectInt(t, 3, r.Pos())
	test.ExpectErrorCode(t, InvalidPositionError, r.SetPos(4))
	test.ExpectInt(t, 3, r.Pos())
	test.ExpectErrorCode(t, InvalidPositionError, r.SetPos(-1))
}

func TestMatchLiteral(t *testing.T) {
	r := NewReader(NewString("", "Hello world"))
	ok, text := r.MatchLiteral("hello", true, false)
	test.ExpectBool(t, false, ok)
	test.ExpectInt(t, 0, r.Pos())

	ok, text = r.MatchLiteral("hello", false, true)
	test.ExpectBool(t, true, ok)
	test.Expect(t, text == "Hello", "Hello", text)
	test.ExpectInt(t, 0, r.Pos())
	test.ExpectInt(t, 5, r.MaxPos())

	ok, _ = r.MatchLiteral("Hello ", true, false)
	test.ExpectBool(t, true, ok)
	test.ExpectInt(t, 6, r.Pos())

	ok, _ = r.MatchLiteral("world!", true, false)
	test.ExpectBool(t, false, ok)
	ok, _ = r.MatchLiteral("world", true, false)
	test.ExpectBool(t, true, ok)
	test.ExpectBool(t, true, r.IsAtEnd())
}

func TestMatchRegex(t *testing.T) {
	re, e := CompileRegex(`[a-z]+`, "")
	test.Assert(t, e == nil, "unexpected error: %v", e)

	r := NewReader(NewString("", "12abc34"))
	ok, _ := r.MatchRegex(re, true)
	test.ExpectBool(t, false, ok)

	test.Assert(t, r.SetPos(2) == nil, "SetPos failed")
	ok, text := r.MatchRegex(re, true)
	test.ExpectBool(t, true, ok)
	test.Expect(t, text == "abc", "abc", text)
	test.ExpectInt(t, 5, r.Pos())
}

func TestMatchRegexFlags(t *testing.T) {
	re, e := CompileRegex(`abc # letters`, "ix")
	test.Assert(t, e == nil, "unexpected error: %v", e)
	r := NewReader(NewString("", "ABC"))
	ok, _ := r.MatchRegex(re, true)
	test.ExpectBool(t, true, ok)
}

func TestMatchRegexLookbehind(t *testing.T) {
	re, e := CompileRegex(`(?<=a)b`, "")
	test.Assert(t, e == nil, "unexpected error: %v", e)
	r := NewReader(NewString("", "ab"))
	test.Assert(t, r.SetPos(1) == nil, "SetPos failed")
	ok, _ := r.MatchRegex(re, false)
	test.ExpectBool(t, true, ok)
}

func TestWindow(t *testing.T) {
	re, _ := CompileRegex(`\d+`, "")
	r := NewReader(NewString("", "x12345y"))
	test.Assert(t, r.PartialReposition(1, 3) == nil, "PartialReposition failed")
	test.ExpectInt(t, 1, r.Pos())

	ok, text := r.MatchRegex(re, true)
	test.ExpectBool(t, true, ok)
	test.Expect(t, text == "12", "12", text)
	test.ExpectBool(t, true, r.IsAtEnd())

	test.Assert(t, r.SetPos(1) == nil, "SetPos failed")
	ok, _ = r.MatchLiteral("123", true, false)
	test.ExpectBool(t, false, ok)
	test.ExpectInt(t, 1, r.Pos())

	test.ExpectErrorCode(t, InvalidPositionError, r.PartialReposition(1, 8))
	test.ExpectErrorCode(t, WindowError, r.PartialReposition(3, 1))

	r.ClearWindow()
	test.ExpectInt(t, 7, r.Limit())
}
