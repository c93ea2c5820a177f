package api

import (
	"FeedSeeder/internal/api/middleware"
	"FeedSeeder/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		feedGroup := apiGroup.Group("/feed")
		{
			userGroup := feedGroup.Group("/users/:user_id")
			{
				userGroup.GET("/posts", group.FeedHandler.PostsByUser)
				userGroup.GET("/top-likes", group.FeedHandler.TopPostsByLikes)
				userGroup.GET("/top-comments", group.FeedHandler.TopPostsByComments)
				userGroup.GET("/comments", group.FeedHandler.CommentsByUser)
				userGroup.GET("/friends-recent", group.FeedHandler.FriendsRecentPosts)
			}

			topicGroup := feedGroup.Group("/topics")
			{
				topicGroup.GET("/top", group.FeedHandler.TopTopics)
				topicGroup.GET("/:topic_id/posts", group.FeedHandler.PostsByTopic)
			}
		}
	}

	return r
}
