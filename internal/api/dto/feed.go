package dto

import "time"

type PostDTO struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	TopicID       string    `json:"topic_id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
}

// PostStatDTO Top-K 查询结果，Total 为实时统计的点赞数或评论数
type PostStatDTO struct {
	PostDTO
	Total int `json:"total"`
}

type CommentDTO struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type TopicStatDTO struct {
	TopicID string `json:"topic_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// TopKQuery Top-K 查询参数
type TopKQuery struct {
	K int `form:"k,default=5" binding:"gte=1,lte=100"`
}

type FriendsRecentQuery struct {
	Hours int `form:"hours,default=24" binding:"gte=1,lte=720"`
}
