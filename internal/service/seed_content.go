package service

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"FeedSeeder/internal/pkg/llm"
	"context"
	"fmt"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeneratePosts 生成 NumPosts 条帖子并写入，返回互动阶段使用的帖子投影
func (s *SeedServiceImpl) GeneratePosts(ctx context.Context, opts SeedOptions, users []*model.User, topics map[string]primitive.ObjectID) ([]model.PostProjection, error) {
	s.ensureRand(opts)
	opts = opts.withDefaults()
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	names := topicNames(opts.Topics, topics)
	if len(names) == 0 {
		return nil, ErrNoTopics
	}
	if opts.NumPosts <= 0 {
		return nil, ErrNoPosts
	}

	posts := make([]*model.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.rng.IntN(len(users))]
		name := names[s.rng.IntN(len(names))]

		prompt, promptErr := llm.PostPrompt(name)
		content, err := s.generate(ctx, prompt, promptErr, consts.PostMaxOutputTokens, opts.Temperature)
		if err != nil {
			return nil, fmt.Errorf("post %d: %w", i, err)
		}

		posts = append(posts, &model.Post{
			UserID:    author.ID,
			TopicID:   topics[name],
			Content:   content,
			CreatedAt: s.historicalTime(opts.HistoryDays),
		})
		if (i+1)%10 == 0 || i+1 == opts.NumPosts {
			log.InfoContext(ctx, "posts prepared", "done", i+1, "total", opts.NumPosts)
		}
	}

	ids, err := s.store.InsertPosts(ctx, posts)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(posts) {
		return nil, fmt.Errorf("inserted %d posts, store returned %d ids", len(posts), len(ids))
	}

	projections := make([]model.PostProjection, 0, len(posts))
	for i, id := range ids {
		posts[i].ID = id
		projections = append(projections, model.PostProjection{
			PostID:    id,
			AuthorID:  posts[i].UserID,
			Content:   posts[i].Content,
			CreatedAt: posts[i].CreatedAt,
		})
	}

	log.InfoContext(ctx, "posts inserted", "count", len(posts))
	return projections, nil
}

// generate 构建提示词失败时也降级为固定文本
func (s *SeedServiceImpl) generate(ctx context.Context, prompt string, promptErr error, maxTokens int, temperature float64) (string, error) {
	if promptErr != nil {
		log.WarnContext(ctx, "prompt render failed", "err", promptErr)
		return llm.DegradedText, nil
	}
	text, err := s.gen.Generate(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return "", err
	}
	if text == "" {
		return llm.DegradedText, nil
	}
	return text, nil
}

// topicNames 按目录顺序列出已写入的话题名，保证相同种子下抽样一致
func topicNames(catalog []string, topics map[string]primitive.ObjectID) []string {
	names := make([]string, 0, len(topics))
	seen := make(map[string]struct{}, len(topics))
	for _, name := range catalog {
		if _, ok := topics[name]; !ok {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
