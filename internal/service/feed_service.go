package service

import (
	"FeedSeeder/internal/api/dto"
	"FeedSeeder/internal/pkg/consts"
	"FeedSeeder/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultTopK          = 5
	DefaultFriendsWindow = 24 * time.Hour
)

// FeedService 对已生成数据的只读查询
type FeedService interface {
	PostsByUser(ctx context.Context, userID string) ([]*dto.PostDTO, error)
	TopPostsByLikes(ctx context.Context, userID string, k int) ([]*dto.PostStatDTO, error)
	TopPostsByComments(ctx context.Context, userID string, k int) ([]*dto.PostStatDTO, error)
	CommentsByUser(ctx context.Context, userID string) ([]*dto.CommentDTO, error)
	PostsByTopic(ctx context.Context, topicID string) ([]*dto.PostDTO, error)
	TopTopics(ctx context.Context, k int) ([]*dto.TopicStatDTO, error)
	FriendsRecentPosts(ctx context.Context, userID string, window time.Duration) ([]*dto.PostDTO, error)
}

type FeedServiceImpl struct {
	userRepo       mongo.UserRepo
	postRepo       mongo.PostRepo
	commentRepo    mongo.CommentRepo
	friendshipRepo mongo.FriendshipRepo
	now            func() time.Time
}

func NewFeedService(userRepo mongo.UserRepo, postRepo mongo.PostRepo, commentRepo mongo.CommentRepo, friendshipRepo mongo.FriendshipRepo) FeedService {
	return &FeedServiceImpl{
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		friendshipRepo: friendshipRepo,
		now:            time.Now,
	}
}

var objectIDConverter = copier.TypeConverter{
	SrcType: primitive.ObjectID{},
	DstType: copier.String,
	Fn: func(src interface{}) (interface{}, error) {
		return src.(primitive.ObjectID).Hex(), nil
	},
}

var copyOption = copier.Option{Converters: []copier.TypeConverter{objectIDConverter}}

// toDTO 模型到 DTO 的拷贝，ObjectID 转为十六进制字符串
func toDTO[D any, M any](list []*M) ([]*D, error) {
	out := make([]*D, 0, len(list))
	for _, m := range list {
		d := new(D)
		if err := copier.CopyWithOption(d, m, copyOption); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrParamInvalid
	}
	return id, nil
}

// PostsByUser 获取用户发布的帖子
func (s *FeedServiceImpl) PostsByUser(ctx context.Context, userID string) ([]*dto.PostDTO, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO[dto.PostDTO](posts)
}

// TopPostsByLikes 用户点赞数最多的 k 个帖子
func (s *FeedServiceImpl) TopPostsByLikes(ctx context.Context, userID string, k int) ([]*dto.PostStatDTO, error) {
	return s.topPosts(ctx, userID, consts.LikesCollection, k)
}

// TopPostsByComments 用户评论数最多的 k 个帖子
func (s *FeedServiceImpl) TopPostsByComments(ctx context.Context, userID string, k int) ([]*dto.PostStatDTO, error) {
	return s.topPosts(ctx, userID, consts.CommentsCollection, k)
}

func (s *FeedServiceImpl) topPosts(ctx context.Context, userID string, from string, k int) ([]*dto.PostStatDTO, error) {
	if k <= 0 {
		return nil, ErrParamInvalid
	}
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.postRepo.TopByEngagement(ctx, id, from, k)
	if err != nil {
		return nil, err
	}
	return toDTO[dto.PostStatDTO](stats)
}

// CommentsByUser 获取用户发表的评论
func (s *FeedServiceImpl) CommentsByUser(ctx context.Context, userID string) ([]*dto.CommentDTO, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO[dto.CommentDTO](comments)
}

// PostsByTopic 获取话题下的帖子
func (s *FeedServiceImpl) PostsByTopic(ctx context.Context, topicID string) ([]*dto.PostDTO, error) {
	id, err := parseObjectID(topicID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO[dto.PostDTO](posts)
}

// TopTopics 帖子数最多的 k 个话题
func (s *FeedServiceImpl) TopTopics(ctx context.Context, k int) ([]*dto.TopicStatDTO, error) {
	if k <= 0 {
		return nil, ErrParamInvalid
	}
	stats, err := s.postRepo.TopTopics(ctx, k)
	if err != nil {
		return nil, err
	}
	return toDTO[dto.TopicStatDTO](stats)
}

// FriendsRecentPosts 用户关注的人在 window 内发布的帖子
func (s *FeedServiceImpl) FriendsRecentPosts(ctx context.Context, userID string, window time.Duration) ([]*dto.PostDTO, error) {
	id, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultFriendsWindow
	}

	if _, err = s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	followed, err := s.friendshipRepo.GetFollowedIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(followed) == 0 {
		log.InfoContext(ctx, "user follows nobody", "user_id", userID)
		return []*dto.PostDTO{}, nil
	}

	posts, err := s.postRepo.GetByAuthorsSince(ctx, followed, s.now().Add(-window))
	if err != nil {
		return nil, err
	}
	return toDTO[dto.PostDTO](posts)
}
