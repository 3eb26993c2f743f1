package main

import (
	"net/http"
	"os"

	"github.com/Publisher-notfound/Rahoot/internal/config"
	"github.com/Publisher-notfound/Rahoot/internal/database"
	"github.com/Publisher-notfound/Rahoot/internal/game"
	"github.com/Publisher-notfound/Rahoot/internal/handlers"
	"github.com/Publisher-notfound/Rahoot/internal/middleware"
	"github.com/Publisher-notfound/Rahoot/internal/services"
	"github.com/Publisher-notfound/Rahoot/internal/ws"

	_ "github.com/Publisher-notfound/Rahoot/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Rahoot API
// @version         1.0
// @description     Live trivia-quiz backend: host auth, quiz storage, cross-session leaderboard and the realtime game channel
// @host            localhost:5505
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	quizService := services.NewQuizService(db)
	leaderboardService := services.NewLeaderboardService(db)

	engine := game.NewEngine(cfg.GamePassword, clockwork.NewRealClock(), hub, quizService, leaderboardService)

	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	wsHandler := handlers.NewWSHandler(hub, engine)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Rahoot server is running!")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/quizzes/catalog", quizHandler.Catalog)
		api.GET("/leaderboard", leaderboardHandler.Top)

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.JWTAuth(authService))
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.POST("", quizHandler.CreateQuiz)
			quizzes.GET("/:id", quizHandler.GetQuiz)
			quizzes.DELETE("/:id", quizHandler.DeleteQuiz)
		}
	}

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
