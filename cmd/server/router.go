package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thereayou/teamtodo/internal/handlers"
	"github.com/thereayou/teamtodo/internal/middleware"
	"github.com/thereayou/teamtodo/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	authH *handlers.AuthHandler,
	todoH *handlers.TodoHandler,
	teamH *handlers.TeamHandler,
	activityH *handlers.ActivityHandler,
	wsH *handlers.WebSocketHandler,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), authH.Logout)
		authGroup.GET("/users", authH.GetUsers)
	}

	// API endpoints
	api := r.Group("/api", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		todos := api.Group("/todos")
		{
			todos.GET("", todoH.GetTodos)
			todos.POST("", todoH.CreateTodo)
			todos.GET("/:id", todoH.GetTodo)
			todos.PUT("/:id", todoH.UpdateTodo)
			todos.DELETE("/:id", todoH.DeleteTodo)
		}

		teams := api.Group("/teams")
		{
			teams.GET("", teamH.GetMyTeams)
			teams.POST("", teamH.CreateTeam)
			teams.GET("/:id", teamH.GetTeam)
			teams.POST("/:id/members", teamH.AddMember)
			teams.DELETE("/:id/members/:userId", teamH.RemoveMember)
		}

		activities := api.Group("/activities")
		{
			activities.GET("", activityH.GetActivities)
			activities.POST("", activityH.CreateActivity)
		}
	}

	// WebSocket endpoint
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
