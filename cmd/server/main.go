package main

import (
	"log"
	"strings"

	"github.com/HerbSek/QuizMe/internal/config"
	"github.com/HerbSek/QuizMe/internal/database"
	"github.com/HerbSek/QuizMe/internal/handlers"
	"github.com/HerbSek/QuizMe/internal/middleware"
	"github.com/HerbSek/QuizMe/internal/services"

	_ "github.com/HerbSek/QuizMe/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           QuizMe API
// @version         1.0
// @description     A Kahoot-like quiz application API
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	sessionService := services.NewSessionService(db)
	leaderboardService := services.NewLeaderboardService(db)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	sessionHandler := handlers.NewSessionHandler(sessionService, leaderboardService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/mine", quizHandler.ListMyQuizzes)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
		}

		sessions := api.Group("/sessions")
		sessions.Use(middleware.JWTAuth(authService))
		{
			sessions.POST("/start/:quiz_id", sessionHandler.CreateSession)
			sessions.POST("/join", sessionHandler.JoinSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.GET("/:id/participants", sessionHandler.ListParticipants)
			sessions.POST("/:id/start", sessionHandler.StartSession)
			sessions.POST("/:id/advance", sessionHandler.AdvanceQuestion)
			sessions.POST("/:id/end", sessionHandler.EndSession)
			sessions.POST("/:id/answer", sessionHandler.SubmitAnswer)
			sessions.GET("/:id/leaderboard", sessionHandler.GetLeaderboard)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
