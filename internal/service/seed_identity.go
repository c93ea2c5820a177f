package service

import (
	"FeedSeeder/internal/model"
	"context"
	"fmt"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateUsers 生成并写入 NumUsers 个用户，返回带 ID 的用户列表
func (s *SeedServiceImpl) GenerateUsers(ctx context.Context, opts SeedOptions) ([]*model.User, error) {
	s.ensureRand(opts)
	opts = opts.withDefaults()
	if opts.NumUsers <= 0 {
		log.WarnContext(ctx, "no users requested")
		return nil, nil
	}

	users := make([]*model.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		users = append(users, &model.User{
			UserIDStr: fmt.Sprintf("user_%d", i),
			Name:      s.faker.Name(),
			Email:     fmt.Sprintf("user_%d@example.com", i),
			CreatedAt: s.historicalTime(opts.HistoryDays),
		})
	}

	ids, err := s.store.InsertUsers(ctx, users)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(users) {
		return nil, fmt.Errorf("inserted %d users, store returned %d ids", len(users), len(ids))
	}
	for i, id := range ids {
		users[i].ID = id
	}

	log.InfoContext(ctx, "users inserted", "count", len(users))
	return users, nil
}

// GenerateTopics 按目录写入话题，重复名称只保留一次，返回 name -> ID
func (s *SeedServiceImpl) GenerateTopics(ctx context.Context, opts SeedOptions) (map[string]primitive.ObjectID, error) {
	opts = opts.withDefaults()

	seen := make(map[string]struct{}, len(opts.Topics))
	topics := make([]*model.Topic, 0, len(opts.Topics))
	for _, name := range opts.Topics {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		topics = append(topics, &model.Topic{Name: name})
	}

	ids, err := s.store.InsertTopics(ctx, topics)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(topics) {
		return nil, fmt.Errorf("inserted %d topics, store returned %d ids", len(topics), len(ids))
	}

	byName := make(map[string]primitive.ObjectID, len(topics))
	for i, id := range ids {
		topics[i].ID = id
		byName[topics[i].Name] = id
	}

	log.InfoContext(ctx, "topics inserted", "count", len(topics))
	return byName, nil
}
