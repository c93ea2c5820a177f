package mongo

import (
	"FeedSeeder/internal/model"
	"FeedSeeder/internal/pkg/consts"
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo interface {
	InsertUsers(ctx context.Context, users []*model.User) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Clear(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection(consts.UsersCollection),
	}
}

// InsertUsers 批量插入用户
func (s *userRepoImpl) InsertUsers(ctx context.Context, users []*model.User) ([]primitive.ObjectID, error) {
	return insertMany(ctx, s.col, users)
}

// GetByID 根据 ID 获取用户，不存在时返回 mongo.ErrNoDocuments
func (s *userRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

// EnsureIndexes 句柄 user_id_str 唯一
func (s *userRepoImpl) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueIndex(ctx, s.col, bson.D{{Key: "user_id_str", Value: 1}})
}

func (s *userRepoImpl) Clear(ctx context.Context) (int64, error) {
	return clearCollection(ctx, s.col)
}
