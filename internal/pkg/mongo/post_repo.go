package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PostRepo interface {
	InsertPosts(ctx context.Context, posts []*model.Post) ([]primitive.ObjectID, error)
	SetCounts(ctx context.Context, field string, counts []model.PostCounter) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error)
	GetByTopic(ctx context.Context, topicID primitive.ObjectID) ([]*model.Post, error)
	GetByAuthorsSince(ctx context.Context, authorIDs []primitive.ObjectID, since time.Time) ([]*model.Post, error)
	TopByEngagement(ctx context.Context, userID primitive.ObjectID, from string, k int) ([]*model.PostStat, error)
	TopTopics(ctx context.Context, k int) ([]*model.TopicStat, error)
	Clear(ctx context.Context) (int64, error)
}

type postRepoImpl struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) PostRepo {
	return &postRepoImpl{
		col: db.Collection(consts.PostsCollection),
	}
}

// InsertPosts 批量插入帖子，返回的 ID 与输入顺序一致
func (s *postRepoImpl) InsertPosts(ctx context.Context, posts []*model.Post) ([]primitive.ObjectID, error) {
	return insertMany(ctx, s.col, posts)
}

// SetCounts 以按 _id 定位的点更新回写计数，互相独立，使用无序批量写
func (s *postRepoImpl) SetCounts(ctx context.Context, field string, counts []model.PostCounter) error {
	if field != model.PostLikesCountField && field != model.PostCommentsCountField {
		return errors.Errorf("unsupported counter field %q", field)
	}
	if len(counts) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(counts))
	for _, c := range counts {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": c.PostID}).
			SetUpdate(bson.M{"$set": bson.M{field: c.Count}}),
		)
	}

	if _, err := s.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return errors.Wrapf(err, "update %s", field)
	}
	return nil
}

// GetByUser 获取用户发布的全部帖子
func (s *postRepoImpl) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Post, error) {
	return findAll[model.Post](ctx, s.col, bson.M{"user_id": userID})
}

// GetByTopic 获取话题下的全部帖子
func (s *postRepoImpl) GetByTopic(ctx context.Context, topicID primitive.ObjectID) ([]*model.Post, error) {
	return findAll[model.Post](ctx, s.col, bson.M{"topic_id": topicID})
}

// GetByAuthorsSince 获取一组作者在 since 之后发布的帖子，按时间倒序
func (s *postRepoImpl) GetByAuthorsSince(ctx context.Context, authorIDs []primitive.ObjectID, since time.Time) ([]*model.Post, error) {
	if len(authorIDs) == 0 {
		return []*model.Post{}, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":    bson.M{"$in": authorIDs},
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	return aggregateAll[model.Post](ctx, s.col, pipeline)
}

// TopByEngagement 按 likes 或 comments 集合中的实际记录数排序，取用户的前 k 个帖子
func (s *postRepoImpl) TopByEngagement(ctx context.Context, userID primitive.ObjectID, from string, k int) ([]*model.PostStat, error) {
	if from != consts.LikesCollection && from != consts.CommentsCollection {
		return nil, errors.Errorf("unsupported engagement collection %q", from)
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   "_id",
			"foreignField": "post_id",
			"as":           "engagement",
		}}},
		{{Key: "$addFields", Value: bson.M{"total": bson.M{"$size": "$engagement"}}}},
		{{Key: "$project", Value: bson.M{"engagement": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: k}},
	}
	return aggregateAll[model.PostStat](ctx, s.col, pipeline)
}

// TopTopics 按帖子数取前 k 个话题
func (s *postRepoImpl) TopTopics(ctx context.Context, k int) ([]*model.TopicStat, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$topic_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: k}},
		{{Key: "$lookup", Value: bson.M{
			"from":         consts.TopicsCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "topic",
		}}},
		{{Key: "$unwind", Value: "$topic"}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"topic_id": "$_id",
			"name":     "$topic.name",
			"count":    1,
		}}},
	}
	return aggregateAll[model.TopicStat](ctx, s.col, pipeline)
}

func (s *postRepoImpl) Clear(ctx context.Context) (int64, error) {
	return clearCollection(ctx, s.col)
}
