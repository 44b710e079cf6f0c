package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chat-wrapped/internal/archive"
	"github.com/Zuo-Peng/chat-wrapped/internal/config"
	"github.com/Zuo-Peng/chat-wrapped/internal/index"
	"github.com/Zuo-Peng/chat-wrapped/internal/stats"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var version = "dev"

var (
	debug      bool
	yearFlag   int
	tzFlag     string
	strictYear bool
	configPath string

	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wrapped",
		Short:        "Your year in ChatGPT, from a data export",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&debug, "debug", false, "Enable debug logging")
	pf.IntVar(&yearFlag, "year", 0, "Target year (default from config, else 2025)")
	pf.StringVar(&tzFlag, "tz", "", "IANA time zone for local dates (default from config, else Local)")
	pf.BoolVar(&strictYear, "strict-year", false, "Also drop conversations created after the target year")
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.config/wrapped/config.toml)")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	return rootCmd
}

// newLogger logs JSON to stderr; only warnings unless debug is set, so
// report output on stdout stays clean.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// settings loads the config file and applies flag overrides.
func settings(cmd *cobra.Command) (*config.Config, stats.Options, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, stats.Options{}, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		cfg.Year = yearFlag
	}
	if flags.Changed("tz") {
		cfg.Timezone = tzFlag
	}
	if flags.Changed("strict-year") {
		cfg.StrictYear = strictYear
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, stats.Options{}, fmt.Errorf("config: %w", err)
	}
	return cfg, opts, nil
}

func openArchive(path string) (*archive.Collection, error) {
	files, err := archive.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	logger.Debug("archive opened", zap.String("path", path), zap.Int("files", files.Len()))
	return files, nil
}

// buildIndex loads the year's conversations into a fresh in-memory index.
func buildIndex(files *archive.Collection, opts stats.Options) (*index.DB, error) {
	convs := stats.NewEngine(logger).Conversations(files, opts)
	if len(convs) == 0 {
		return nil, fmt.Errorf("no conversations found for %d", opts.Year)
	}

	db, err := index.OpenMemory()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "Indexing %d conversations...\n", len(convs))
	st, err := index.Build(db, convs, opts.Location, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("index: %w", err)
	}
	logger.Debug("index ready", zap.Stringer("stats", st))
	return db, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
