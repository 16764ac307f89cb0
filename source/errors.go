package source

import (
	"github.com/ava12/xpeg"
)

const (
	InvalidPositionError = xpeg.SourceErrors + iota
	OutOfRangeError
	WindowError
)

func invalidPositionError(pos, size int) *xpeg.Error {
	return xpeg.FormatError(InvalidPositionError, "invalid position %d, source length is %d", pos, size)
}

func outOfRangeError(pos, size int) *xpeg.Error {
	return xpeg.FormatError(OutOfRangeError, "position %d is out of range [0, %d]", pos, size)
}

func windowError(start, end, size int) *xpeg.Error {
	return xpeg.FormatError(WindowError, "invalid window [%d, %d], source length is %d", start, end, size)
}
