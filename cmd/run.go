package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/app"
	"github.com/abhisek/careerfit/internal/logging"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/screens/assessment"
	"github.com/abhisek/careerfit/internal/tracking"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	reg, err := openRegistry()
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	// The alternate screen owns stderr while the app runs.
	log, closeLog := tuiLogger(dbPath)
	defer closeLog()
	slog.SetDefault(log)

	_, m := metrics.NewRegistry()
	deps := assessment.Deps{
		Tracker: &tracking.Tracker{
			Events:  st.EventRepo(),
			Results: st.ResultRepo(),
			Metrics: m,
			Logger:  log,
		},
		Logger: log,
	}
	if svc := newCoach(ctx, st, m, log); svc != nil {
		deps.Coach = svc
	} else {
		fmt.Fprintln(os.Stderr, "LLM provider not configured: coaching notes will be unavailable.")
	}

	return app.Run(app.Options{
		Registry: reg,
		Results:  st.ResultRepo(),
		Deps:     deps,
	})
}

// tuiLogger writes logs to careerfit.log next to the database, or drops
// them when the file cannot be opened.
func tuiLogger(dbPath string) (*slog.Logger, func()) {
	path := filepath.Join(filepath.Dir(dbPath), "careerfit.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logging.Discard(), func() {}
	}
	l, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: logging.Format(cfg.LogFormat),
		Output: f,
	})
	if err != nil {
		f.Close()
		return logging.Discard(), func() {}
	}
	return l, func() { f.Close() }
}
