package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thereayou/teamtodo/internal/database"
	"github.com/thereayou/teamtodo/internal/handlers"
	"github.com/thereayou/teamtodo/internal/services"
	"github.com/thereayou/teamtodo/internal/websocket"
	"github.com/thereayou/teamtodo/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := websocket.NewHub()

	authzSvc := services.NewAuthorizationService(dbConn)
	activitySvc := services.NewActivityService(dbConn)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	todoH := handlers.NewTodoHandler(dbConn, authzSvc, activitySvc, hub)
	teamH := handlers.NewTeamHandler(dbConn, dbConn, authzSvc, activitySvc, hub)
	activityH := handlers.NewActivityHandler(dbConn, dbConn, authzSvc, activitySvc, hub)
	wsH := handlers.NewWebSocketHandler(hub, authzSvc)

	router := gin.Default()
	APIEndpoints(router, authH, todoH, teamH, activityH, wsH, jwtMgr, rdb)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	defer s.Hub.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
