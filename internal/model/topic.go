package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Topic topics 集合中的话题文档
type Topic struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// TopicStat 按帖子数统计的话题
type TopicStat struct {
	TopicID primitive.ObjectID `bson:"topic_id" json:"topicId"`
	Name    string             `bson:"name" json:"name"`
	Count   int                `bson:"count" json:"count"`
}
