package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerfit/internal/api"
	"github.com/abhisek/careerfit/internal/metrics"
	"github.com/abhisek/careerfit/internal/sessionstore"
	"github.com/abhisek/careerfit/internal/tracking"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
			cfg.RedisAddr = addr
		}

		reg, err := openRegistry()
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		var sessions sessionstore.Store
		if cfg.RedisAddr != "" {
			rs, err := sessionstore.DialRedis(ctx, cfg.RedisAddr, cfg.SessionTTL)
			if err != nil {
				return fmt.Errorf("session store: %w", err)
			}
			defer rs.Close()
			sessions = rs
			logger.Info("sessions stored in redis", "addr", cfg.RedisAddr, "ttl", cfg.SessionTTL)
		} else {
			sessions = sessionstore.NewMemory(cfg.SessionTTL)
			logger.Info("sessions stored in memory", "ttl", cfg.SessionTTL)
		}

		promReg, m := metrics.NewRegistry()
		deps := api.Deps{
			Registry: reg,
			Sessions: sessions,
			Results:  st.ResultRepo(),
			Tracker: &tracking.Tracker{
				Events:  st.EventRepo(),
				Results: st.ResultRepo(),
				Metrics: m,
				Logger:  logger,
			},
			Metrics:  m,
			Gatherer: promReg,
			Logger:   logger,
		}
		if svc := newCoach(ctx, st, m, logger); svc != nil {
			deps.Coach = svc
		}

		srv := api.NewServer(api.ServerConfig{
			Addr:            cfg.HTTPAddr,
			ShutdownTimeout: cfg.ShutdownTimeout,
		}, api.NewRouter(deps), logger)
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CAREERFIT_HTTP_ADDR)")
	serveCmd.Flags().String("redis", "", "Redis address for sessions (overrides CAREERFIT_REDIS_ADDR)")
}
