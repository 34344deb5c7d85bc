package cmd

import (
	"context"
	"fmt"
	"time"

	"garim-lab/internal/feed"
	"garim-lab/internal/model"
	"garim-lab/internal/redisclient"
	"garim-lab/internal/storage"

	"github.com/spf13/cobra"
)

// pingCmd checks the Redis server and reports the feed cache entries it holds.
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping Redis and show the remaining TTL of each cached category",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if !cfg.Redis.Enabled {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: redis.enabled is false, the server uses its in-memory cache")
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
		defer cancel()

		res, err := rdb.Ping(ctx).Result()
		if err != nil {
			return fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, res)

		store := storage.NewRedisStore(rdb)
		for _, cat := range model.Categories() {
			ttl, ok, err := store.TTL(ctx, feed.CacheKey(cat))
			switch {
			case err != nil:
				return err
			case !ok:
				fmt.Fprintf(w, "%-9s not cached\n", cat)
			default:
				fmt.Fprintf(w, "%-9s cached, expires in %s\n", cat, ttl.Round(time.Second))
			}
		}
		return nil
	},
}

func init() {
	redisCmd.AddCommand(pingCmd)
}
