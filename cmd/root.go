package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/catalog"
	"github.com/abhisek/careerfit/internal/coach"
	"github.com/abhisek/careerfit/internal/config"
	"github.com/abhisek/careerfit/internal/llm"
	"github.com/abhisek/careerfit/internal/logging"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/store"
)

var (
	cfg    *config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "careerfit",
	Short: "Career readiness assessments in your terminal",
	Long: `careerfit runs career readiness assessments (AI/ML, AWS, DevOps, MERN and more),
scores your answers per category and tells you whether the path is a good fit.

Run without a subcommand to start the interactive assessment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var err error
		if envFile != "" {
			cfg, err = config.Load(envFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		applyFlags(cmd)

		logger, err = logging.New(logging.Config{
			Level:  cfg.LogLevel,
			Format: logging.Format(cfg.LogFormat),
			Output: os.Stderr,
		})
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as serve.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides CAREERFIT_DB)")
	pf.String("catalog-dir", "", "Directory of extra assessment YAML files (overrides CAREERFIT_CATALOG_DIR)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("env-file", "", "Load settings from this .env file instead of ./.env")

	rootCmd.AddCommand(assessmentsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyFlags lets persistent flags override the environment.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"db":          &cfg.DBPath,
		"catalog-dir": &cfg.CatalogDir,
		"log-level":   &cfg.LogLevel,
		"log-format":  &cfg.LogFormat,
	} {
		if v, _ := flags.GetString(name); v != "" {
			*dst = v
		}
	}
}

// resolveDBPath returns the database path using --db or CAREERFIT_DB,
// then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func openRegistry() (*catalog.Registry, error) {
	reg, err := catalog.Open(cfg.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}
	return reg, nil
}

// newCoach builds the coaching service, or returns nil when no LLM
// provider is configured. LLM calls are recorded to st and m when set.
func newCoach(ctx context.Context, st *store.Store, m *metrics.Metrics, log *slog.Logger) *coach.Service {
	if !cfg.LLM.Configured() {
		return nil
	}
	obs := llm.Observation{Observer: m.LLMObserver(), Logger: log}
	if st != nil {
		obs.Recorder = st.EventRepo()
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, obs)
	if err != nil {
		log.Warn("LLM provider unavailable, coaching disabled", "error", err)
		return nil
	}
	return coach.NewService(provider, coach.DefaultConfig())
}
