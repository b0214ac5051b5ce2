package generator

import (
	"strings"
	"testing"
	"unicode"

	"github.com/verte-zerg/bananatype/internal/engine"
)

func TestGeneratorIsDeterministicForSeed(t *testing.T) {
	corpus := []string{"alpha", "beta", "gamma", "delta"}
	a, err := engine.Build(corpus, 20, New(7, 0.5, 0.5, []rune(DefaultPunctSet)))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := engine.Build(corpus, 20, New(7, 0.5, 0.5, []rune(DefaultPunctSet)))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a.Text() != b.Text() {
		t.Fatalf("same seed produced different passages:\n%q\n%q", a.Text(), b.Text())
	}
}

func TestDecorateDisabled(t *testing.T) {
	g := New(1, 0, 0, []rune("!"))
	for i := 0; i < 50; i++ {
		if got := g.Decorate("word"); got != "word" {
			t.Fatalf("expected undecorated word, got %q", got)
		}
	}
}

func TestDecorateAlways(t *testing.T) {
	g := New(1, 1, 1, []rune("!"))
	if got := g.Decorate("word"); got != "Word!" {
		t.Fatalf("expected Word!, got %q", got)
	}
	if got := g.Decorate("über"); got != "Über!" {
		t.Fatalf("expected Über!, got %q", got)
	}
}

func TestDecorateClampsAndHandlesEmptySet(t *testing.T) {
	g := New(3, 5, 5, nil)
	got := g.Decorate("go")
	if !unicode.IsUpper([]rune(got)[0]) {
		t.Fatalf("expected capitalized word, got %q", got)
	}
	if strings.ContainsAny(got, DefaultPunctSet) {
		t.Fatalf("expected no punctuation with empty set, got %q", got)
	}
}

func TestIntnBounds(t *testing.T) {
	g := New(11, 0, 0, nil)
	for i := 0; i < 1000; i++ {
		if v := g.Intn(3); v < 0 || v >= 3 {
			t.Fatalf("index out of range: %d", v)
		}
	}
}
