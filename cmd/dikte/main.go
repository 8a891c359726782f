// Package main provides the CLI entrypoint for dikte.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/dikte/internal/config"
	"github.com/verte-zerg/dikte/internal/model"
	"github.com/verte-zerg/dikte/internal/phrases"
	"github.com/verte-zerg/dikte/internal/session"
	"github.com/verte-zerg/dikte/internal/speech"
	"github.com/verte-zerg/dikte/internal/stats"
	"github.com/verte-zerg/dikte/internal/store"
	"github.com/verte-zerg/dikte/internal/tui"
	"github.com/verte-zerg/dikte/internal/voice"
)

const (
	defaultLocale       = "ms-MY"
	defaultSpeech       = "auto"
	defaultCurveWindow  = 5
	voicesListTimeout   = 10 * time.Second
	defaultHistoryWidth = 80
)

var (
	practiceLocale    string
	practiceVoice     string
	practiceSpeech    string
	practiceNoHistory bool
	practicePhrases   string

	historySince  string
	historyLast   int
	historyWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dikte",
		Short:         "Listen to Malay phrases and type what you hear",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	addSpeechFlags(rootCmd)
	addPhrasesFlag(rootCmd)
	rootCmd.Flags().StringVar(&practiceVoice, "voice", "", "voice id to use instead of auto-selection (see: dikte voices)")
	rootCmd.Flags().BoolVar(&practiceNoHistory, "no-history", false, "do not record completed practices")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVoicesCmd())
	rootCmd.AddCommand(newPhrasesCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func addSpeechFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceLocale, "locale", defaultLocale, "target locale for voice auto-selection and fallback")
	cmd.Flags().StringVar(&practiceSpeech, "speech", defaultSpeech, "speech backend: auto, espeak, say, none")
}

func addPhrasesFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practicePhrases, "phrases", "", "phrase file with one \"phrase<TAB>translation\" per line")
}

// loadPhrases returns the configured phrase file contents, or the built-in set.
func loadPhrases(path string) ([]model.PhrasePair, error) {
	if strings.TrimSpace(path) == "" {
		return phrases.All(), nil
	}
	pairs, err := phrases.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrases: %w", err)
	}
	return pairs, nil
}

func loadSettings(cmd *cobra.Command) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "locale", &practiceLocale, fileCfg.Practice.Locale)
	applyStringConfig(cmd, "voice", &practiceVoice, fileCfg.Practice.Voice)
	applyStringConfig(cmd, "speech", &practiceSpeech, fileCfg.Practice.Speech)
	applyStringConfig(cmd, "phrases", &practicePhrases, fileCfg.Practice.Phrases)

	history := !practiceNoHistory
	if fileCfg.Practice.History != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.Practice.History
	}

	cfg := model.Config{
		Locale:  practiceLocale,
		Voice:   practiceVoice,
		Speech:  practiceSpeech,
		History: history,
		Phrases: practicePhrases,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	closeLog, err := setupLogger(fileCfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	pairs, err := loadPhrases(cfg.Phrases)
	if err != nil {
		return err
	}

	speaker, err := speech.Resolve(cfg.Speech)
	if err != nil {
		return err
	}
	slog.Info("starting practice", "locale", cfg.Locale, "speech", speaker.Name(), "history", cfg.History)

	var history tui.HistoryWriter
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		history = st
	}

	picker := phrases.NewFromPairs(pairs, rand.NewSource(time.Now().UnixNano()))
	ctrl := session.NewController(picker, time.Now)
	registry := voice.NewRegistry(cfg.Locale)
	m := tui.NewModel(cfg, ctrl, registry, speaker, history)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List voices of the speech backend",
		Args:  cobra.NoArgs,
		RunE:  runVoicesCmd,
	}
	addSpeechFlags(cmd)
	return cmd
}

func runVoicesCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	speaker, err := speech.Resolve(cfg.Speech)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), voicesListTimeout)
	defer cancel()
	voices, err := speaker.Voices(ctx)
	if err != nil {
		return err
	}
	return writeVoices(cmd.OutOrStdout(), speaker.Name(), cfg.Locale, voices)
}

func newPhrasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phrases",
		Short: "List practice phrases",
		Args:  cobra.NoArgs,
		RunE:  runPhrasesCmd,
	}
	addPhrasesFlag(cmd)
	return cmd
}

func runPhrasesCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pairs, err := loadPhrases(cfg.Phrases)
	if err != nil {
		return err
	}
	return writePhrases(cmd.OutOrStdout(), pairs)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show practice history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N practices")
	cmd.Flags().IntVar(&historyWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
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

	report, err := stats.BuildReport(cmd.Context(), st, model.StatsConfig{Since: sinceTime, Last: historyLast})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), historyWindow, sparklineWidth())
}

// sparklineWidth leaves room for the curve label and latest value columns.
func sparklineWidth() int {
	width := defaultHistoryWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	width -= 20
	if width < 10 {
		width = 10
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# dikte configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# locale = %q        # Locale for voice auto-selection and fallback
# voice = ""             # Voice id (see: dikte voices); empty = auto
# speech = %q         # Speech backend: auto, espeak, say, none
# history = true         # Record completed practices
# phrases = ""           # Phrase file, one "phrase<TAB>translation" per line

[log]
# level = "info"         # debug, info, warn, error
# file = ""              # Log file (default: %s)
`,
		defaultLocale,
		defaultSpeech,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.Locale) == "" {
		return fmt.Errorf("--locale must not be empty")
	}
	switch strings.ToLower(cfg.Speech) {
	case "auto", "espeak", "say", "none":
	default:
		return fmt.Errorf("--speech must be one of auto, espeak, say, none")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
