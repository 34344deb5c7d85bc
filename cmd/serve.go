package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"garim-lab/internal/board"
	"garim-lab/internal/config"
	"garim-lab/internal/dashboard"
	"garim-lab/internal/session"
	"garim-lab/internal/web"
	"garim-lab/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.App.Listen = addr
		}

		source, closeFeed := newFeedSource(cfg)
		defer closeFeed()

		sessions := session.NewRegistry(session.Options{
			Seed:       seedRanking(cfg),
			Classifier: board.NewClassifier(board.DefaultRules),
		})
		presenter := dashboard.New(source, newAnalyzer(cfg), cfg.Boards, cfg.Ranking.Size)

		ws := []worker.Worker{
			&worker.HTTPServer{Addr: cfg.App.Listen, Handler: web.New(presenter, sessions, cfg.Session.CookieName)},
			&worker.SessionJanitor{Sessions: sessions, IdleTTL: config.Duration(cfg.Session.IdleTTL)},
		}
		if cfg.Feed.WarmInterval != "" {
			slog.Info("starting feed warmer", "interval", cfg.Feed.WarmInterval)
			ws = append(ws, &worker.FeedWarmer{Feed: source, Interval: config.Duration(cfg.Feed.WarmInterval)})
		}
		mgr := worker.NewManager(ws...)

		// Signal handling for systemd
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("garim-lab: serving", "listen", cfg.App.Listen, "provider", cfg.AI.Provider, "redis", cfg.Redis.Enabled)
		return mgr.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address, overrides app.listen")
	rootCmd.AddCommand(serveCmd)
}
