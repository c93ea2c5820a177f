package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friendship 单向关注关系 follower -> followed
type Friendship struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FollowerID primitive.ObjectID `bson:"follower_id" json:"followerId"`
	FollowedID primitive.ObjectID `bson:"followed_id" json:"followedId"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
