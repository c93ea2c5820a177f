package main

import (
	"FeedSeeder/internal/api/config"
	"FeedSeeder/internal/pkg/logger"
	"FeedSeeder/internal/service"
	log "log/slog"

	"github.com/spf13/cobra"
)

var clearFirst bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate users, topics, friendships, posts, comments and likes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := logger.WithTraceID(cmd.Context(), "seed")

		app, cleanup, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer cleanup()

		opts := service.SeedOptionsFromConfig(config.Cfg.Seed, config.Cfg.LLM)
		if cmd.Flags().Changed("clear") {
			opts.Clear = clearFirst
		}

		// 与定时任务共用 seed:lock，redis 未启用时只做进程内互斥
		report, err := app.SeedJob.RunWith(ctx, opts)
		if report != nil {
			log.InfoContext(ctx, "seed report",
				"users", report.Users,
				"topics", report.Topics,
				"friendships", report.Friendships,
				"posts", report.Posts,
				"comments", report.Comments,
				"likes", report.Likes,
				"generation_calls", report.Calls,
				"degraded", report.Degraded,
			)
		}
		return err
	},
}

func init() {
	runCmd.Flags().BoolVar(&clearFirst, "clear", false, "delete existing documents from all six collections first (overrides seed.clear)")
	rootCmd.AddCommand(runCmd)
}
