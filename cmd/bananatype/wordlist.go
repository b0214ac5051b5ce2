package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/bananatype/internal/config"
	"github.com/verte-zerg/bananatype/internal/model"
	"github.com/verte-zerg/bananatype/internal/stats"
	"github.com/verte-zerg/bananatype/internal/store"
	"github.com/verte-zerg/bananatype/internal/wordfreq"
	"github.com/verte-zerg/bananatype/internal/wordlist"
)

const defaultWordlistSz = 10000

var (
	wordlistLang  string
	wordlistSize  int
	wordlistForce bool
	wordlistFrom  string
)

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List imported corpus languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	corpora, err := st.ListCorpora(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list corpora: %w", err)
	}
	if err := stats.RenderCorpora(cmd.OutOrStdout(), withBuiltin(corpora)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// withBuiltin lists the embedded English corpus unless an import replaced it.
func withBuiltin(corpora []model.CorpusInfo) []model.CorpusInfo {
	for _, c := range corpora {
		if c.Lang == wordlist.DefaultLang {
			return corpora
		}
	}
	builtin := model.CorpusInfo{Lang: wordlist.DefaultLang, Source: "built-in", WordCount: len(wordlist.Default())}
	return append([]model.CorpusInfo{builtin}, corpora...)
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Import word corpora",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "", "language code, comma separated codes or 'all' (default: en)")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSz, "number of words")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "replace an existing corpus")
	cmd.Flags().StringVar(&wordlistFrom, "from", "", "import a one-word-per-line file instead of downloading")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if wordlistFrom != "" {
		return importFile(cmd.Context(), st, wordlistLang, wordlistFrom, wordlistSize, wordlistForce)
	}
	return importWordfreq(cmd.Context(), st, wordlistLang, wordlistSize, wordlistForce)
}

func importFile(ctx context.Context, st *store.Store, lang, path string, size int, force bool) error {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" || lang == "all" || strings.Contains(lang, ",") {
		return fmt.Errorf("--from needs a single --lang")
	}
	if err := checkReplace(ctx, st, lang, force); err != nil {
		return err
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	words = wordlist.Filter(words, wordlist.FilterForLang(lang))
	if len(words) == 0 {
		return fmt.Errorf("no usable %s words in %s", lang, path)
	}
	if len(words) > size {
		words = words[:size]
	}
	if err := st.ReplaceCorpus(ctx, lang, "file:"+path, words); err != nil {
		return fmt.Errorf("failed to store %s corpus: %w", lang, err)
	}
	logErrf("Imported %d %s words from %s\n", len(words), lang, path)
	return nil
}

func importWordfreq(ctx context.Context, st *store.Store, lang string, size int, force bool) error {
	const listType = "large"

	logErrln("Fetching wordfreq metadata...")
	wheel, err := wordfreq.DownloadLatestWheel(ctx, config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wheel %s\n", wheel.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", wheel.Filename)
	}
	langTypes, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveWordlistLangs(lang, wordfreq.LanguagesFromTypes(langTypes))
	if err != nil {
		return err
	}

	for _, code := range langs {
		if err := checkReplace(ctx, st, code, force); err != nil {
			if allRequested {
				logErrf("Skipping %s (already imported)\n", code)
				continue
			}
			return err
		}
		selected, ok := selectWordlistType(langTypes, code, listType)
		if !ok {
			if allRequested {
				logErrf("Skipping %s (no word list)\n", code)
				continue
			}
			return fmt.Errorf("no word list available for %s", code)
		}
		if selected != listType {
			logErrf("Using %s for %s (no %s word list)\n", selected, code, listType)
		}
		words, err := wordfreq.ExtractWordlist(wheel.Path, code, selected, size)
		if err != nil {
			if allRequested {
				logErrf("Skipping %s: %v\n", code, err)
				continue
			}
			return fmt.Errorf("failed to extract %s word list: %w", code, err)
		}
		if err := st.ReplaceCorpus(ctx, code, wheel.Source(selected), words); err != nil {
			return fmt.Errorf("failed to store %s corpus: %w", code, err)
		}
		logErrf("Imported %d %s words\n", len(words), code)
	}
	logErrln("Word data from wordfreq (https://github.com/rspeer/wordfreq), licensed CC BY-SA 4.0.")
	return nil
}

func checkReplace(ctx context.Context, st *store.Store, lang string, force bool) error {
	if force {
		return nil
	}
	ok, err := st.HasCorpus(ctx, lang)
	if err != nil {
		return fmt.Errorf("failed to check %s corpus: %w", lang, err)
	}
	if ok {
		return fmt.Errorf("corpus already imported: %s (use --force to replace)", lang)
	}
	return nil
}

func resolveWordlistLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return []string{wordlist.DefaultLang}, false, nil
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	var requested []string
	for _, part := range strings.Split(lang, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

// selectWordlistType prefers the desired list and falls back to "small".
func selectWordlistType(types wordfreq.LanguageTypes, lang, desired string) (string, bool) {
	if types.Has(lang, desired) {
		return desired, true
	}
	if desired == "large" && types.Has(lang, "small") {
		return "small", true
	}
	return "", false
}
