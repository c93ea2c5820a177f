package mongo

import (
	"FeedSeeder/internal/model"
	"context"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type clearer interface {
	Clear(ctx context.Context) (int64, error)
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// SeedStore 把各集合仓储组合为生成流程使用的提交接口
type SeedStore struct {
	users       UserRepo
	topics      TopicRepo
	friendships FriendshipRepo
	posts       PostRepo
	comments    CommentRepo
	likes       LikeRepo
}

func NewSeedStore(db *mongo.Database) *SeedStore {
	return &SeedStore{
		users:       NewUserRepo(db),
		topics:      NewTopicRepo(db),
		friendships: NewFriendshipRepo(db),
		posts:       NewPostRepo(db),
		comments:    NewCommentRepo(db),
		likes:       NewLikeRepo(db),
	}
}

func (s *SeedStore) InsertUsers(ctx context.Context, users []*model.User) ([]primitive.ObjectID, error) {
	return s.users.InsertUsers(ctx, users)
}

func (s *SeedStore) InsertTopics(ctx context.Context, topics []*model.Topic) ([]primitive.ObjectID, error) {
	return s.topics.InsertTopics(ctx, topics)
}

func (s *SeedStore) InsertFriendships(ctx context.Context, friendships []*model.Friendship) error {
	return s.friendships.InsertFriendships(ctx, friendships)
}

func (s *SeedStore) InsertPosts(ctx context.Context, posts []*model.Post) ([]primitive.ObjectID, error) {
	return s.posts.InsertPosts(ctx, posts)
}

func (s *SeedStore) InsertComments(ctx context.Context, comments []*model.Comment) error {
	return s.comments.InsertComments(ctx, comments)
}

func (s *SeedStore) InsertLikes(ctx context.Context, likes []*model.Like) error {
	return s.likes.InsertLikes(ctx, likes)
}

func (s *SeedStore) SetPostCounts(ctx context.Context, field string, counts []model.PostCounter) error {
	return s.posts.SetCounts(ctx, field, counts)
}

// Clear 清空六个集合，下游集合先删
func (s *SeedStore) Clear(ctx context.Context) error {
	for _, c := range []clearer{s.likes, s.comments, s.posts, s.friendships, s.topics, s.users} {
		n, err := c.Clear(ctx)
		if err != nil {
			return err
		}
		log.DebugContext(ctx, "collection cleared", "deleted", n)
	}
	log.InfoContext(ctx, "all seed collections cleared")
	return nil
}

// EnsureIndexes 建立唯一索引，未清空的重复运行会在插入用户时失败而不是产生重复句柄
func (s *SeedStore) EnsureIndexes(ctx context.Context) error {
	for _, ix := range []indexer{s.users, s.topics, s.likes} {
		if err := ix.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
