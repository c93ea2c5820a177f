package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type LikeRepo interface {
	InsertLikes(ctx context.Context, likes []*model.Like) error
	Clear(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type likeRepoImpl struct {
	col *mongo.Collection
}

func NewLikeRepo(db *mongo.Database) LikeRepo {
	return &likeRepoImpl{
		col: db.Collection(consts.LikesCollection),
	}
}

func (s *likeRepoImpl) InsertLikes(ctx context.Context, likes []*model.Like) error {
	_, err := insertMany(ctx, s.col, likes)
	return err
}

// EnsureIndexes 同一用户对同一帖子只能点赞一次
func (s *likeRepoImpl) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueIndex(ctx, s.col, bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}})
}

func (s *likeRepoImpl) Clear(ctx context.Context) (int64, error) {
	return clearCollection(ctx, s.col)
}
