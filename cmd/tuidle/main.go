// Package main provides the CLI entrypoint for tuidle.
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
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuidle/internal/calendar"
	"github.com/verte-zerg/tuidle/internal/config"
	"github.com/verte-zerg/tuidle/internal/logging"
	"github.com/verte-zerg/tuidle/internal/model"
	"github.com/verte-zerg/tuidle/internal/session"
	"github.com/verte-zerg/tuidle/internal/stats"
	"github.com/verte-zerg/tuidle/internal/statsui"
	"github.com/verte-zerg/tuidle/internal/store"
	"github.com/verte-zerg/tuidle/internal/tui"
	"github.com/verte-zerg/tuidle/internal/words"
)

const defaultLogLevel = "info"

var (
	gameWords    string
	gameScheme   string
	gameEpoch    string
	gameDB       string
	gameLogLevel string
	gameDate     string
	playStrict   bool

	statsSince string
	statsLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuidle",
		Short:         "Daily five-letter word puzzle in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&gameWords, "words", "", "path to a word list (default: embedded list)")
	flags.StringVar(&gameScheme, "scheme", calendar.SchemeEpoch, "day index scheme (epoch or ordinal)")
	flags.StringVar(&gameEpoch, "epoch", calendar.FormatDate(calendar.DefaultEpoch), "epoch date for the epoch scheme (YYYY-MM-DD)")
	flags.StringVar(&gameDB, "db", config.DefaultDBPath(), "path to the history database")
	flags.StringVar(&gameLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&gameDate, "date", "", "play or inspect another day (YYYY-MM-DD)")
	rootCmd.Flags().BoolVar(&playStrict, "strict", false, "reject guesses that are not in the word list")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func loadSettings(cmd *cobra.Command) (model.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return model.Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)
	applyStringConfig(cmd, "words", &gameWords, fileCfg.Game.Words)
	applyStringConfig(cmd, "scheme", &gameScheme, fileCfg.Game.Scheme)
	applyStringConfig(cmd, "epoch", &gameEpoch, fileCfg.Game.Epoch)
	applyStringConfig(cmd, "db", &gameDB, fileCfg.Game.DB)
	applyStringConfig(cmd, "log-level", &gameLogLevel, fileCfg.Log.Level)
	if cmd.Flags().Lookup("strict") != nil {
		applyBoolConfig(cmd, "strict", &playStrict, fileCfg.Game.Strict)
	}

	epoch, err := calendar.ParseDate(gameEpoch)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid epoch %q: %w", gameEpoch, err)
	}
	cfg := model.Config{
		WordsPath: gameWords,
		Scheme:    gameScheme,
		Epoch:     epoch,
		Strict:    playStrict,
		DBPath:    gameDB,
		LogLevel:  gameLogLevel,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if _, err := calendar.New(cfg.Scheme, cfg.Epoch); err != nil {
		return fmt.Errorf("--scheme: %w", err)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	return nil
}

func resolveNow() (time.Time, error) {
	if gameDate == "" {
		return time.Now(), nil
	}
	day, err := calendar.ParseDate(gameDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date value: %w", err)
	}
	return day, nil
}

func withSession(log zerolog.Logger) zerolog.Logger {
	return log.With().Str("session", uuid.NewString()).Logger()
}

func openHistory(cfg model.Config, log zerolog.Logger) (*store.Store, *store.History, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, store.NewHistory(st, log), nil
}

func closeStore(st *store.Store, log zerolog.Logger) {
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close db")
	}
}

// buildSession wires the word list, calendar and store for the resolved day.
func buildSession(cfg model.Config, history *store.History, log zerolog.Logger) (*session.Session, error) {
	list, err := words.Load(cfg.WordsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	cal, err := calendar.New(cfg.Scheme, cfg.Epoch)
	if err != nil {
		return nil, err
	}
	now, err := resolveNow()
	if err != nil {
		return nil, err
	}
	return session.New(list, cal, now, history, log, session.Options{Strict: cfg.Strict})
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	log, logFile, err := logging.NewFile(config.DefaultLogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logFile.Close()
	}()
	log = withSession(log)

	st, history, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	var m tea.Model
	sess, err := buildSession(cfg, history, log)
	switch {
	case errors.Is(err, words.ErrNoPuzzle):
		log.Warn().Err(err).Msg("no puzzle for today")
		m = tui.NewNoPuzzleModel()
	case err != nil:
		return err
	default:
		log.Info().Int("day", sess.Day()).Str("scheme", cfg.Scheme).Msg("starting game")
		m = tui.NewModel(context.Background(), sess, log)
	}

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

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Print today's result as an emoji grid",
		Args:  cobra.NoArgs,
		RunE:  runShareCmd,
	}
}

func runShareCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := withSession(logging.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel))

	st, history, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	sess, err := buildSession(cfg, history, log)
	if err != nil {
		return err
	}
	sess.Load(cmd.Context())
	if !sess.Game().State().Terminal() {
		return fmt.Errorf("%s is not finished yet", calendar.Key(sess.Day()))
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), sess.ShareText()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N recorded days")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := calendar.ParseDate(statsSince)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	statsCfg := model.StatsConfig{
		Scheme: cfg.Scheme,
		Epoch:  cfg.Epoch,
		Since:  sinceTime,
		Last:   statsLast,
	}
	cal, err := calendar.New(statsCfg.Scheme, statsCfg.Epoch)
	if err != nil {
		return err
	}
	now, err := resolveNow()
	if err != nil {
		return err
	}

	log := withSession(logging.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel))
	st, history, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore(st, log)

	if !isTerminal(cmd.OutOrStdout()) {
		return writeStatsReport(cmd.Context(), cmd.OutOrStdout(), history, cal, statsCfg, now)
	}

	m := statsui.NewModel(history, cal, statsCfg, now)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func writeStatsReport(ctx context.Context, w io.Writer, history *store.History, cal calendar.Calendar, cfg model.StatsConfig, now time.Time) error {
	filtered := stats.Filter(history.Load(ctx), cal, cfg)
	if err := stats.RenderSummary(w, stats.Compute(filtered)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	entries := stats.Entries(filtered, cal, now)
	if len(entries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderHistory(w, entries); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuidle configuration
# Uncomment a value to enable it. CLI flags override config values,
# and TUIDLE_* environment variables (or a .env file) override this file.

[game]
# words = ""              # Path to a word list, one word per line (default: embedded list)
# scheme = %q          # Day index scheme: epoch or ordinal
# epoch = %q       # Day 0 for the epoch scheme (YYYY-MM-DD)
# strict = false          # Reject guesses that are not in the word list
# db = %q

[log]
# level = %q           # debug, info, warn or error
`,
		calendar.SchemeEpoch,
		calendar.FormatDate(calendar.DefaultEpoch),
		config.DefaultDBPath(),
		defaultLogLevel,
	)
}
