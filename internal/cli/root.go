package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/attach"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/store"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// RootConfig holds the global flags and what PersistentPreRunE derives
// from them.
type RootConfig struct {
	ConfigPath string
	Store      string
	Path       string
	Key        string
	LogLevel   string
	NoColor    bool
	EnvFiles   []string

	// Confirm asks a yes/no question; nil means a survey prompt.
	Confirm func(prompt string) (bool, error)

	cfg *config.Config
	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&RootConfig{})
}

func newRootCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tradejournal",
		Short:         "Tradejournal - record trades and review profit/loss",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.Store, "store", "", "Store backend: memory|file|sqlite")
	cmd.PersistentFlags().StringVar(&rc.Path, "path", "", "Store location (directory for file, database for sqlite)")
	cmd.PersistentFlags().StringVar(&rc.Key, "key", "", "Key the ledger is stored under")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd)
	}

	cmd.AddCommand(
		newAddCmd(rc),
		newListCmd(rc),
		newStatsCmd(rc),
		newChartCmd(rc),
		newShowCmd(rc),
		newClearCmd(rc),
		newExportCmd(rc),
		newImportCmd(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tradejournal (%s)\n", Version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup resolves the configuration (defaults, file, environment, flags in
// that order) and builds the logger.
func (rc *RootConfig) setup(cmd *cobra.Command) error {
	if err := config.LoadEnv(rc.EnvFiles...); err != nil {
		return err
	}

	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if rc.Store != "" && rc.Store != cfg.Store.Type {
		cfg.Store.Type = rc.Store
		if rc.Path == "" {
			cfg.Store.Path = config.DefaultPath(rc.Store)
		}
	}
	if rc.Path != "" {
		cfg.Store.Path = rc.Path
	}
	if rc.Key != "" {
		cfg.Store.Key = rc.Key
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	lvl, _ := logrus.ParseLevel(cfg.Log.Level)
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: rc.NoColor})

	if rc.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	rc.cfg = cfg
	rc.log = log
	return nil
}

// openLedger opens the configured store and loads the ledger from it.
// The returned func closes the store.
func (rc *RootConfig) openLedger() (*journal.Ledger, func(), error) {
	s := rc.cfg.Store
	a, err := store.Open(store.Kind(s.Type), s.Path, s.Key, rc.log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := a.Close(); err != nil {
			rc.log.WithError(err).Warn("close store")
		}
	}
	return journal.Open(a, journal.WithLogger(rc.log)), closeFn, nil
}

func (rc *RootConfig) decoder() attach.Decoder {
	return attach.Decoder{MaxBytes: rc.cfg.Attach.MaxBytes}
}
