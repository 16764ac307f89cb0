// Package source defines source text and a reader cursor used by parser.
//
// All positions are character (rune) offsets into the source text.
package source

import (
	"sort"
)

// Source is an immutable named text.
type Source struct {
	name       string
	text       string
	runes      []rune
	lineStarts []int
}

// New creates a source from raw content. Content must be valid UTF-8,
// invalid bytes are replaced with U+FFFD.
func New(name string, content []byte) *Source {
	return NewString(name, string(content))
}

// NewString creates a source from a string.
func NewString(name, text string) *Source {
	return &Source{name: name, text: text, runes: []rune(text)}
}

func (s *Source) Name() string {
	return s.name
}

// Text returns the whole source text.
func (s *Source) Text() string {
	return s.text
}

// Runes returns source text as a rune slice, callers must not modify it.
func (s *Source) Runes() []rune {
	return s.runes
}

// Len returns source length in characters.
func (s *Source) Len() int {
	return len(s.runes)
}

// Slice returns text between two positions, bounds are clamped to source length.
func (s *Source) Slice(start, end int) string {
	l := len(s.runes)
	if end > l {
		end = l
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}
	return string(s.runes[start:end])
}

func (s *Source) buildLineStarts() {
	s.lineStarts = []int{0}
	for i, r := range s.runes {
		if r == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
}

// LineCol translates position to 1-based line number, 0-based column number,
// and the character at that position.
// Position equal to source length yields empty character.
// Returns OutOfRangeError if position is negative or exceeds source length.
func (s *Source) LineCol(pos int) (line, col int, char string, e error) {
	if pos < 0 || pos > len(s.runes) {
		return 0, 0, "", outOfRangeError(pos, len(s.runes))
	}

	if s.lineStarts == nil {
		s.buildLineStarts()
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	if pos < len(s.runes) {
		char = string(s.runes[pos])
	}
	return lineIndex + 1, pos - s.lineStarts[lineIndex], char, nil
}

// Pos returns position descriptor usable for error reporting, position is clamped to source bounds.
func (s *Source) Pos(pos int) Pos {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.runes) {
		pos = len(s.runes)
	}
	line, col, _, _ := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Offset converts 1-based line and 0-based column to position, clamped to source bounds.
func (s *Source) Offset(line, col int) int {
	if line <= 0 || col < 0 {
		return 0
	}

	if s.lineStarts == nil {
		s.buildLineStarts()
	}
	if line > len(s.lineStarts) {
		return len(s.runes)
	}

	res := s.lineStarts[line-1] + col
	if res > len(s.runes) {
		return len(s.runes)
	}
	return res
}

// Pos is a position in source, implements xpeg.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
