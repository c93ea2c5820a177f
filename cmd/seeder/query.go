package main

import (
	"FeedSeeder/internal/service"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type queryArgs struct {
	Action  string
	UserID  string
	TopicID string
	K       int
	Hours   int
}

var qArgs queryArgs

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a read query against the seeded data and print JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := runQuery(cmd.Context(), app.FeedService, qArgs)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	f := queryCmd.Flags()
	f.StringVar(&qArgs.Action, "action", "", "posts-by-user | top-likes | top-comments | comments-by-user | posts-by-topic | top-topics | friends-recent")
	f.StringVar(&qArgs.UserID, "user-id", "", "user ObjectID (hex)")
	f.StringVar(&qArgs.TopicID, "topic-id", "", "topic ObjectID (hex)")
	f.IntVar(&qArgs.K, "k", service.DefaultTopK, "number of results for top-k queries")
	f.IntVar(&qArgs.Hours, "hours", 24, "window for friends-recent")
	_ = queryCmd.MarkFlagRequired("action")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(ctx context.Context, svc service.FeedService, a queryArgs) (interface{}, error) {
	switch a.Action {
	case "posts-by-user":
		return svc.PostsByUser(ctx, a.UserID)
	case "top-likes":
		return svc.TopPostsByLikes(ctx, a.UserID, a.K)
	case "top-comments":
		return svc.TopPostsByComments(ctx, a.UserID, a.K)
	case "comments-by-user":
		return svc.CommentsByUser(ctx, a.UserID)
	case "posts-by-topic":
		return svc.PostsByTopic(ctx, a.TopicID)
	case "top-topics":
		return svc.TopTopics(ctx, a.K)
	case "friends-recent":
		return svc.FriendsRecentPosts(ctx, a.UserID, time.Duration(a.Hours)*time.Hour)
	}
	return nil, fmt.Errorf("unknown action %q: %w", a.Action, service.ErrParamInvalid)
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
