package service

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"FeedSeeder/internal/pkg/llm"
	"context"
	"fmt"
	log "log/slog"
)

// GenerateComments 为每个帖子生成 [0, MaxCommentsPerPost] 条来自非作者用户的评论，
// 写入评论后回写每个帖子的 comments_count
func (s *SeedServiceImpl) GenerateComments(ctx context.Context, opts SeedOptions, users []*model.User, posts []model.PostProjection) ([]*model.Comment, error) {
	s.ensureRand(opts)
	opts = opts.withDefaults()
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	comments := make([]*model.Comment, 0)
	counts := make([]model.PostCounter, 0, len(posts))
	for i, post := range posts {
		target := s.rng.IntN(max(opts.MaxCommentsPerPost, 0) + 1)
		candidates := othersThan(users, post.AuthorID)

		realized := 0
		if target > 0 && len(candidates) > 0 {
			prompt, promptErr := llm.CommentPrompt(post.Content)
			for _, commenter := range sample(s.rng, candidates, target) {
				text, err := s.generate(ctx, prompt, promptErr, consts.CommentMaxOutputTokens, opts.Temperature)
				if err != nil {
					return nil, fmt.Errorf("comment on post %s: %w", post.PostID.Hex(), err)
				}
				comments = append(comments, &model.Comment{
					PostID:    post.PostID,
					UserID:    commenter,
					Text:      text,
					CreatedAt: s.engagementTime(post.CreatedAt, opts),
				})
				realized++
			}
		}
		counts = append(counts, model.PostCounter{PostID: post.PostID, Count: realized})

		if (i+1)%10 == 0 || i+1 == len(posts) {
			log.InfoContext(ctx, "comments prepared", "posts", i+1, "total", len(posts), "comments", len(comments))
		}
	}

	if err := s.store.InsertComments(ctx, comments); err != nil {
		return nil, err
	}
	if err := s.store.SetPostCounts(ctx, model.PostCommentsCountField, counts); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "comments inserted", "count", len(comments))
	return comments, nil
}

// GenerateLikes 为每个帖子生成 [0, min(MaxLikesPerPost, 候选数)] 个不重复的点赞，
// 写入点赞后回写每个帖子的 likes_count
func (s *SeedServiceImpl) GenerateLikes(ctx context.Context, opts SeedOptions, users []*model.User, posts []model.PostProjection) ([]*model.Like, error) {
	s.ensureRand(opts)
	opts = opts.withDefaults()
	if len(posts) == 0 {
		return nil, ErrNoPosts
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	likes := make([]*model.Like, 0)
	counts := make([]model.PostCounter, 0, len(posts))
	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates := othersThan(users, post.AuthorID)

		realized := 0
		if len(candidates) > 0 {
			target := s.rng.IntN(min(max(opts.MaxLikesPerPost, 0), len(candidates)) + 1)
			for _, liker := range sample(s.rng, candidates, target) {
				likes = append(likes, &model.Like{
					PostID:  post.PostID,
					UserID:  liker,
					LikedAt: s.engagementTime(post.CreatedAt, opts),
				})
				realized++
			}
		}
		counts = append(counts, model.PostCounter{PostID: post.PostID, Count: realized})
	}

	if err := s.store.InsertLikes(ctx, likes); err != nil {
		return nil, err
	}
	if err := s.store.SetPostCounts(ctx, model.PostLikesCountField, counts); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "likes inserted", "count", len(likes))
	return likes, nil
}
