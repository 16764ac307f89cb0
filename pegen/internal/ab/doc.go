// Package ab holds the parser generated from ab.peg.
package ab

//go:generate go run ../../../cmd/pegen generate ab.peg
