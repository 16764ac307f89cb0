package source

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// NoWindow is the end position value of a reader that is not restricted to a window.
const NoWindow = -1

// Reader is a cursor over source text.
// Reader is owned by a single parse, concurrent use is not allowed.
type Reader struct {
	src    *Source
	pos    int
	maxPos int
	endPos int
}

// NewReader creates a reader positioned at the start of source.
func NewReader(src *Source) *Reader {
	return &Reader{src: src, endPos: NoWindow}
}

func (r *Reader) Source() *Source {
	return r.src
}

// Pos returns current cursor position.
func (r *Reader) Pos() int {
	return r.pos
}

// SetPos moves cursor, returns InvalidPositionError if pos is negative or exceeds source length.
func (r *Reader) SetPos(pos int) error {
	if pos < 0 || pos > len(r.src.runes) {
		return invalidPositionError(pos, len(r.src.runes))
	}

	r.pos = pos
	return nil
}

// MaxPos returns the furthest position reached by any successful match.
func (r *Reader) MaxPos() int {
	return r.maxPos
}

// EndPos returns window end position or NoWindow.
func (r *Reader) EndPos() int {
	return r.endPos
}

// Limit returns the position matching must not pass.
func (r *Reader) Limit() int {
	if r.endPos >= 0 {
		return r.endPos
	}
	return len(r.src.runes)
}

// Reset moves cursor to the start of source and drops window.
func (r *Reader) Reset() {
	r.pos = 0
	r.maxPos = 0
	r.endPos = NoWindow
}

// PartialReposition restricts reader to [start, end) window and moves cursor to start.
func (r *Reader) PartialReposition(start, end int) error {
	l := len(r.src.runes)
	if start < 0 || end < 0 || start > l || end > l {
		return invalidPositionError(max(start, end), l)
	}
	if start > end {
		return windowError(start, end, l)
	}

	r.pos = start
	r.maxPos = start
	r.endPos = end
	return nil
}

// ClearWindow removes window restriction, cursor stays where it is.
func (r *Reader) ClearWindow() {
	r.endPos = NoWindow
}

// IsAtEnd reports whether cursor is at the end of source or window.
func (r *Reader) IsAtEnd() bool {
	return r.pos >= r.Limit()
}

func (r *Reader) advance(size int, consume bool) {
	end := r.pos + size
	if end > r.maxPos {
		r.maxPos = end
	}
	if consume {
		r.pos = end
	}
}

// MatchLiteral checks whether text at cursor equals given text.
// caseless enables Unicode case folding.
// Cursor moves past matched text only if consume is set.
func (r *Reader) MatchLiteral(text string, consume, caseless bool) (bool, string) {
	size := 0
	for range text {
		size++
	}

	if r.pos+size > r.Limit() {
		return false, ""
	}

	got := string(r.src.runes[r.pos : r.pos+size])
	if got != text && !(caseless && strings.EqualFold(got, text)) {
		return false, ""
	}

	r.advance(size, consume)
	return true, got
}

// MatchRegex checks whether re matches at cursor.
// re must be created with CompileRegex so that it is anchored at the cursor.
// Cursor moves past matched text only if consume is set.
func (r *Reader) MatchRegex(re *regexp2.Regexp, consume bool) (bool, string) {
	m, e := re.FindRunesMatchStartingAt(r.src.runes[:r.Limit()], r.pos)
	if e != nil || m == nil || m.Index != r.pos {
		return false, ""
	}

	r.advance(m.Length, consume)
	return true, m.String()
}

// RegexFlags maps grammar regex option letters to regexp2 options.
var RegexFlags = map[rune]regexp2.RegexOptions{
	'i': regexp2.IgnoreCase,
	'm': regexp2.Multiline,
	's': regexp2.Singleline,
	'x': regexp2.IgnorePatternWhitespace,
}

// CompileRegex compiles a regular expression anchored at matching start position.
// flags is a string of option letters listed in RegexFlags, unknown letters are ignored.
func CompileRegex(pattern, flags string) (*regexp2.Regexp, error) {
	var opts regexp2.RegexOptions
	for _, f := range flags {
		opts |= RegexFlags[f]
	}
	if opts&regexp2.IgnorePatternWhitespace != 0 {
		pattern += "\n"
	}
	return regexp2.Compile(`\G(?:`+pattern+`)`, opts)
}
