package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CommentRepo interface {
	InsertComments(ctx context.Context, comments []*model.Comment) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Comment, error)
	Clear(ctx context.Context) (int64, error)
}

type commentRepoImpl struct {
	col *mongo.Collection
}

func NewCommentRepo(db *mongo.Database) CommentRepo {
	return &commentRepoImpl{
		col: db.Collection(consts.CommentsCollection),
	}
}

// InsertComments 批量插入评论
func (s *commentRepoImpl) InsertComments(ctx context.Context, comments []*model.Comment) error {
	_, err := insertMany(ctx, s.col, comments)
	return err
}

// GetByUser 获取用户发表的全部评论
func (s *commentRepoImpl) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Comment, error) {
	return findAll[model.Comment](ctx, s.col, bson.M{"user_id": userID})
}

func (s *commentRepoImpl) Clear(ctx context.Context) (int64, error) {
	return clearCollection(ctx, s.col)
}
