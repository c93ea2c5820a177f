package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User users 集合中的用户文档
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserIDStr string             `bson:"user_id_str" json:"userIdStr"` // 合成句柄 user_<i>，在人口内唯一
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
