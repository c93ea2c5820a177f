package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TopicRepo interface {
	InsertTopics(ctx context.Context, topics []*model.Topic) ([]primitive.ObjectID, error)
	Clear(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type topicRepoImpl struct {
	col *mongo.Collection
}

func NewTopicRepo(db *mongo.Database) TopicRepo {
	return &topicRepoImpl{
		col: db.Collection(consts.TopicsCollection),
	}
}

// InsertTopics 批量插入话题
func (s *topicRepoImpl) InsertTopics(ctx context.Context, topics []*model.Topic) ([]primitive.ObjectID, error) {
	return insertMany(ctx, s.col, topics)
}

func (s *topicRepoImpl) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueIndex(ctx, s.col, bson.D{{Key: "name", Value: 1}})
}

func (s *topicRepoImpl) Clear(ctx context.Context) (int64, error) {
	return clearCollection(ctx, s.col)
}
