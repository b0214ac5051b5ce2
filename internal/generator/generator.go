// Package generator picks and decorates the words of a passage.
package generator

import (
	"math/rand"
	"time"
	"unicode"
)

// DefaultPunctSet is used when punctuation is enabled without an explicit set.
const DefaultPunctSet = ".,;:!?"

// Generator is a seeded word source. It satisfies engine.Source and
// engine.Decorator.
type Generator struct {
	rnd      *rand.Rand
	capsPct  float64
	punctPct float64
	punctSet []rune
}

// New returns a Generator. A zero seed uses the current time.
func New(seed int64, capsPct, punctPct float64, punctSet []rune) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		capsPct:  clampPct(capsPct),
		punctPct: clampPct(punctPct),
		punctSet: punctSet,
	}
}

// Intn returns a uniform index in [0, n).
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Decorate applies caps and punctuation rules to a sampled word.
func (g *Generator) Decorate(word string) string {
	word = applyCaps(g.rnd, word, g.capsPct)
	return applyPunct(g.rnd, word, g.punctPct, g.punctSet)
}

func clampPct(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 || rnd.Float64() >= capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 || rnd.Float64() >= punctPct {
		return word
	}
	return word + string(punctSet[rnd.Intn(len(punctSet))])
}
