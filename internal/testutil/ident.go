package testutil

import (
	"math/rand/v2"
	"strings"
)

const (
	identStart = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	identPart  = identStart + "0123456789"
)

// IdentifierGenerator produces a reproducible stream of valid identifiers.
//
// The same seed always yields the same sequence, so property-style tests
// stay deterministic across runs.
//
// Not safe for concurrent use.
type IdentifierGenerator struct {
	rng    *rand.Rand
	maxLen int
}

// NewIdentifierGenerator creates a generator whose identifiers are between
// 1 and maxLen characters long.
func NewIdentifierGenerator(seed uint64, maxLen int) *IdentifierGenerator {
	if maxLen < 1 {
		maxLen = 1
	}
	return &IdentifierGenerator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxLen: maxLen,
	}
}

// Next returns the next identifier matching [A-Za-z_][A-Za-z0-9_]*.
func (g *IdentifierGenerator) Next() string {
	n := 1 + g.rng.IntN(g.maxLen)
	var b strings.Builder
	b.WriteByte(identStart[g.rng.IntN(len(identStart))])
	for i := 1; i < n; i++ {
		b.WriteByte(identPart[g.rng.IntN(len(identPart))])
	}
	return b.String()
}

// Take returns the next n identifiers.
func (g *IdentifierGenerator) Take(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// NonIdentifierStarts lists first characters that can never begin an
// identifier: digits, punctuation used by the grammar, and non-ASCII text.
var NonIdentifierStarts = []string{
	"0", "1", "9", ":", ",", "{", "}", "-", "$", "\n", "\u00e9",
}
