package handler

import (
	"FeedSeeder/internal/api/dto"
	"FeedSeeder/internal/pkg/response"
	"FeedSeeder/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{feedSvc: feedSvc}
}

func (s *FeedHandler) PostsByUser(c *gin.Context) {
	posts, err := s.feedSvc.PostsByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *FeedHandler) TopPostsByLikes(c *gin.Context) {
	var q dto.TopKQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.feedSvc.TopPostsByLikes(c.Request.Context(), c.Param("user_id"), q.K)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *FeedHandler) TopPostsByComments(c *gin.Context) {
	var q dto.TopKQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.feedSvc.TopPostsByComments(c.Request.Context(), c.Param("user_id"), q.K)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *FeedHandler) CommentsByUser(c *gin.Context) {
	comments, err := s.feedSvc.CommentsByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *FeedHandler) FriendsRecentPosts(c *gin.Context) {
	var q dto.FriendsRecentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	posts, err := s.feedSvc.FriendsRecentPosts(c.Request.Context(), c.Param("user_id"), time.Duration(q.Hours)*time.Hour)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *FeedHandler) PostsByTopic(c *gin.Context) {
	posts, err := s.feedSvc.PostsByTopic(c.Request.Context(), c.Param("topic_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *FeedHandler) TopTopics(c *gin.Context) {
	var q dto.TopKQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}
	topics, err := s.feedSvc.TopTopics(c.Request.Context(), q.K)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, topics)
}
