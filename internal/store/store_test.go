package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "corpus.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return st
}

func TestWordsMissingCorpus(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.Words(ctx, "de"); !errors.Is(err, ErrNoCorpus) {
		t.Fatalf("expected ErrNoCorpus, got %v", err)
	}
	ok, err := st.HasCorpus(ctx, "de")
	if err != nil {
		t.Fatalf("has corpus: %v", err)
	}
	if ok {
		t.Fatalf("expected no corpus")
	}
}

func TestReplaceCorpusKeepsRankOrder(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.ReplaceCorpus(ctx, "en", "test", []string{"the", "of", "and"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	words, err := st.Words(ctx, "en")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if len(words) != 3 || words[0] != "the" || words[2] != "and" {
		t.Fatalf("unexpected words: %v", words)
	}

	if err := st.ReplaceCorpus(ctx, "en", "file:x.txt", []string{"zeta"}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	words, err = st.Words(ctx, "en")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if len(words) != 1 || words[0] != "zeta" {
		t.Fatalf("expected replaced corpus, got %v", words)
	}
}

func TestListCorpora(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.ReplaceCorpus(ctx, "fr", "wordfreq", []string{"le", "de"}); err != nil {
		t.Fatalf("replace fr: %v", err)
	}
	if err := st.ReplaceCorpus(ctx, "de", "wordfreq", []string{"der"}); err != nil {
		t.Fatalf("replace de: %v", err)
	}
	infos, err := st.ListCorpora(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 corpora, got %d", len(infos))
	}
	if infos[0].Lang != "de" || infos[0].WordCount != 1 {
		t.Fatalf("unexpected first corpus: %+v", infos[0])
	}
	if infos[1].Lang != "fr" || infos[1].Source != "wordfreq" || infos[1].ImportedAt.IsZero() {
		t.Fatalf("unexpected second corpus: %+v", infos[1])
	}
}

func TestReplaceCorpusRejectsEmpty(t *testing.T) {
	st := openTestStore(t)
	if err := st.ReplaceCorpus(context.Background(), "en", "test", nil); err == nil {
		t.Fatalf("expected error for empty corpus")
	}
}
