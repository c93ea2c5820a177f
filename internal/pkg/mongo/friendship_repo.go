package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FriendshipRepo interface {
	InsertFriendships(ctx context.Context, friendships []*model.Friendship) error
	GetFollowedIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error)
	Clear(ctx context.Context) (int64, error)
}

type friendshipRepoImpl struct {
	col *mongo.Collection
}

func NewFriendshipRepo(db *mongo.Database) FriendshipRepo {
	return &friendshipRepoImpl{
		col: db.Collection(consts.FriendshipsCollection),
	}
}

// InsertFriendships 批量插入关注关系
func (s *friendshipRepoImpl) InsertFriendships(ctx context.Context, friendships []*model.Friendship) error {
	_, err := insertMany(ctx, s.col, friendships)
	return err
}

// GetFollowedIDs 获取用户关注的所有用户 ID
func (s *friendshipRepoImpl) GetFollowedIDs(ctx context.Context, followerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	friendships, err := findAll[model.Friendship](ctx, s.col, bson.M{"follower_id": followerID})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.FollowedID)
	}
	return ids, nil
}

func (s *friendshipRepoImpl) Clear(ctx context.Context) (int64, error) {
	return clearCollection(ctx, s.col)
}
