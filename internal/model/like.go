package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Like struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID  primitive.ObjectID `bson:"post_id" json:"postId"`
	UserID  primitive.ObjectID `bson:"user_id" json:"userId"`
	LikedAt time.Time          `bson:"liked_at" json:"likedAt"`
}
