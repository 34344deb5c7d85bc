package cmd

import "github.com/spf13/cobra"

// redisCmd groups commands for the optional Redis feed cache.
var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Inspect the Redis feed cache",
	Long:  "Commands for the Redis backend used as the shared feed cache when redis.enabled is true.",
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
