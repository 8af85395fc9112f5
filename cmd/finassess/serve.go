package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finassess/assessment-engine/internal/cache"
	"github.com/finassess/assessment-engine/internal/narrative"
	"github.com/finassess/assessment-engine/internal/server"
	"github.com/finassess/assessment-engine/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr      string
		redisAddr string
		dbPath    string
		rateLimit int
		cacheTTL  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assessment engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ce, err := a.engine()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := server.Options{
				CacheTTL:  cacheTTL,
				Logger:    a.logger,
				RateLimit: rateLimit,
				Narrator:  narrative.NewGenerator(narrative.NewClientFromEnv(), a.logger.Sugar()),
			}

			opts.Cache = cache.NewMemoryCache()
			if redisAddr != "" {
				rc := cache.NewRedisCache(redisAddr)
				defer rc.Close()
				pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
				if err := rc.Ping(pingCtx); err != nil {
					a.logger.Warn("redis unavailable, using in-memory cache", zap.String("addr", redisAddr), zap.Error(err))
				} else {
					opts.Cache = rc
				}
				cancel()
			}

			if dbPath != "" {
				db, err := store.Open(dbPath)
				if err != nil {
					return err
				}
				defer db.Close()
				opts.Store = db
			}

			srv := server.New(ce, opts)
			defer srv.Close()
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the result cache (default: in-memory)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database for stored assessments (default: storage disabled)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 60, "requests per client per minute (0 disables)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", time.Hour, "lifetime of cached results")
	return cmd
}
