// Package main provides the CLI entrypoint for bananatype.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bananatype/internal/chart"
	"github.com/verte-zerg/bananatype/internal/config"
	"github.com/verte-zerg/bananatype/internal/generator"
	"github.com/verte-zerg/bananatype/internal/logging"
	"github.com/verte-zerg/bananatype/internal/model"
	"github.com/verte-zerg/bananatype/internal/session"
	"github.com/verte-zerg/bananatype/internal/stats"
	"github.com/verte-zerg/bananatype/internal/store"
	"github.com/verte-zerg/bananatype/internal/tui"
	"github.com/verte-zerg/bananatype/internal/wordlist"
)

const (
	defaultLang     = wordlist.DefaultLang
	defaultCaps     = 0.0
	defaultPunct    = 0.0
	defaultLogLevel = "info"
	resultsChartH   = 12
)

var (
	practiceLang     string
	practiceCaps     float64
	practicePunct    float64
	practicePunctSet string
	practiceSeed     int64

	logFile  string
	logLevel string
	debug    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bananatype",
		Short:         "Timed terminal typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "corpus language code")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", generator.DefaultPunctSet, "punctuation set")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed for the passage (0: time based)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write a debug log to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level to the default state directory")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyConfig(cmd, "seed", &practiceSeed, fileCfg.Practice.Seed)
	applyConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	if debug {
		if logFile == "" {
			logFile = config.DefaultLogPath()
		}
		if !cmd.Flags().Changed("log-level") {
			logLevel = "debug"
		}
	}

	cfg := model.Config{
		Lang:     strings.ToLower(strings.TrimSpace(practiceLang)),
		CapsPct:  practiceCaps,
		PunctPct: practicePunct,
		PunctSet: practicePunctSet,
		Seed:     practiceSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger, closer, err := logging.Open(logFile, logLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	words, source, err := loadPracticeCorpus(context.Background(), config.DefaultDBPath(), cfg.Lang)
	if err != nil {
		return err
	}
	logger.Info().Str("lang", cfg.Lang).Str("source", source).Int("words", len(words)).Msg("corpus loaded")

	machine, err := session.New(session.Config{
		Words:  words,
		Source: generator.New(cfg.Seed, cfg.CapsPct, cfg.PunctPct, []rune(cfg.PunctSet)),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer machine.Close()

	ui := tui.NewModel(machine, fileCfg.Theme.ApplyTheme(model.DefaultTheme()), logger)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	res, ok := ui.LastResult()
	if !ok {
		return nil
	}
	return printResult(cmd.OutOrStdout(), res)
}

// printResult leaves the last result in the scrollback once the alt screen is gone.
func printResult(w io.Writer, res model.Result) error {
	if err := stats.RenderResults(w, res); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	series, opts := chart.ForResult(res, 0, resultsChartH)
	opts.Title = ""
	if err := chart.Render(w, series, opts); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// loadPracticeCorpus reads the imported corpus for lang. English falls back to
// the built-in list when nothing was imported.
func loadPracticeCorpus(ctx context.Context, dbPath, lang string) ([]string, string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	words, err := st.Words(ctx, lang)
	switch {
	case err == nil:
		return words, dbPath, nil
	case errors.Is(err, store.ErrNoCorpus) && lang == wordlist.DefaultLang:
		return wordlist.Default(), "built-in", nil
	default:
		return nil, "", wordListLoadError(lang, err)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyConfig[T any](cmd *cobra.Command, name string, target, value *T) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	theme := model.DefaultTheme()
	return fmt.Sprintf(`# bananatype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q             # Corpus language; import others with "bananatype wordlist"
# caps = %.2f            # Probability of capitalized first letter (0-1)
# punct = %.2f           # Punctuation probability per word (0-1)
# punct-set = %q   # Punctuation set
# seed = 0               # Random seed (0: time based)

[theme]
# foreground = %q
# highlight = %q
# cursor = %q
# correct = %q
# incorrect = %q

[log]
# file = ""              # Debug log file (empty: disabled)
# level = %q
`,
		defaultLang,
		defaultCaps,
		defaultPunct,
		generator.DefaultPunctSet,
		theme.Foreground,
		theme.Highlight,
		theme.Cursor,
		theme.Correct,
		theme.Incorrect,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func wordListLoadError(lang string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("language %q has not been imported", lang),
		"Run: bananatype langs",
		fmt.Sprintf("Import: bananatype wordlist --lang %s", lang),
		"Import all: bananatype wordlist --lang all",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
