package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment comments 集合中的评论文档
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"postId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
