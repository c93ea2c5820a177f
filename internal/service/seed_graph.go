package service

import (
	"FeedSeeder/internal/model"
	"context"
	log "log/slog"
)

// GenerateFriendships 为每个用户随机关注 [0, min(max, n-1)] 个其他用户，关系有向
func (s *SeedServiceImpl) GenerateFriendships(ctx context.Context, opts SeedOptions, users []*model.User) ([]*model.Friendship, error) {
	s.ensureRand(opts)
	opts = opts.withDefaults()
	if len(users) < 2 {
		log.InfoContext(ctx, "friendship generation skipped", "users", len(users))
		return nil, nil
	}

	limit := min(max(opts.MaxFriendsPerUser, 0), len(users)-1)
	friendships := make([]*model.Friendship, 0)
	for i, u := range users {
		k := s.rng.IntN(limit + 1)
		if k == 0 {
			continue
		}
		for _, followed := range sample(s.rng, othersThan(users, u.ID), k) {
			friendships = append(friendships, &model.Friendship{
				FollowerID: u.ID,
				FollowedID: followed,
				CreatedAt:  s.historicalTime(opts.HistoryDays),
			})
		}
		if (i+1)%100 == 0 {
			log.DebugContext(ctx, "friendships progress", "processed", i+1, "total", len(users))
		}
	}

	if err := s.store.InsertFriendships(ctx, friendships); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "friendships inserted", "count", len(friendships))
	return friendships, nil
}
