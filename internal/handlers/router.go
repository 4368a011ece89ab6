package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/EHB-MCT/forum-service/internal/services"
	"github.com/EHB-MCT/forum-service/internal/utils"
)

type HandlerManager struct {
	userHandler   *UserHandler
	threadHandler *ThreadHandler
	replyHandler  *ReplyHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		userHandler:   NewUserHandler(serviceManager.Users(), logger),
		threadHandler: NewThreadHandler(serviceManager.Threads(), logger),
		replyHandler:  NewReplyHandler(serviceManager.Replies(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", hm.userHandler.Register)
			users.POST("/login", hm.userHandler.Login)
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:user_id", hm.userHandler.GetUser)
			users.PUT("/:user_id", hm.userHandler.UpdateUser)
			users.DELETE("/:user_id", hm.userHandler.DeleteUser)
		}

		threads := api.Group("/threads")
		{
			threads.POST("", hm.threadHandler.CreateThread)
			threads.GET("", hm.threadHandler.ListThreads)
			threads.GET("/:thread_id", hm.threadHandler.GetThread)
			threads.GET("/user/:user_id", hm.threadHandler.GetThreadsByUser)
			threads.PUT("/:thread_id", hm.threadHandler.UpdateThread)
			threads.DELETE("/:thread_id", hm.threadHandler.DeleteThread)
		}

		replies := api.Group("/replies")
		{
			replies.POST("/thread/:thread_id", hm.replyHandler.CreateReply)
			replies.GET("", hm.replyHandler.ListReplies)
			replies.GET("/:reply_id", hm.replyHandler.GetReply)
			replies.GET("/thread/:thread_id", hm.replyHandler.GetRepliesByThread)
			replies.GET("/thread/:thread_id/user/:user_id", hm.replyHandler.GetRepliesByThreadAndUser)
			replies.GET("/user/:user_id", hm.replyHandler.GetRepliesByUser)
			replies.PUT("/:reply_id", hm.replyHandler.UpdateReply)
			replies.DELETE("/:reply_id", hm.replyHandler.DeleteReply)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "forum-service",
		})
	})
}
