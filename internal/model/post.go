package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostLikesCountField    = "likes_count"
	PostCommentsCountField = "comments_count"
)

// Post posts 集合中的帖子文档，两个计数只在互动生成完成后写入一次
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	TopicID       primitive.ObjectID `bson:"topic_id" json:"topicId"`
	Content       string             `bson:"content" json:"content"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	LikesCount    int                `bson:"likes_count" json:"likesCount"`
	CommentsCount int                `bson:"comments_count" json:"commentsCount"`
}

// PostProjection 互动生成阶段所需的帖子最小字段集合，避免回查存储
type PostProjection struct {
	PostID    primitive.ObjectID
	AuthorID  primitive.ObjectID
	Content   string
	CreatedAt time.Time
}

// PostCounter 单个帖子的计数回写
type PostCounter struct {
	PostID primitive.ObjectID
	Count  int
}

// PostStat 带聚合计数的帖子，用于 Top-K 查询
type PostStat struct {
	Post  `bson:",inline"`
	Total int `bson:"total" json:"total"`
}
