package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskboard/internal/ai"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()
	r.Use(corsMiddleware(cfg.CORSOrigins))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	listRepo := repository.NewListRepository(db)
	cardRepo := repository.NewCardRepository(db)

	// Access control core
	boardService := service.NewBoardService(boardRepo, memberRepo, listRepo, cardRepo)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpiryHours)
	extractor := ai.NewExtractor(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, tokens)
	boardHandler := handler.NewBoardHandler(boardService)
	memberHandler := handler.NewMemberHandler(boardService, userRepo)
	listHandler := handler.NewListHandler(boardService)
	cardHandler := handler.NewCardHandler(boardService)
	aiHandler := handler.NewAIHandler(extractor)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", userHandler.Register)
	api.POST("/auth/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		authorized.GET("/auth/me", userHandler.Me)

		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		// Board membership routes
		authorized.POST("/boards/:id/members", memberHandler.Add)
		authorized.GET("/boards/:id/members", memberHandler.List)
		authorized.DELETE("/boards/:id/members/:user_id", memberHandler.Remove)

		// List routes
		authorized.POST("/lists", listHandler.Create)
		authorized.GET("/lists/:board_id", listHandler.GetByBoard)
		authorized.DELETE("/lists/:id", listHandler.Delete)

		// Card routes
		authorized.POST("/cards", cardHandler.Create)
		authorized.GET("/cards/:board_id", cardHandler.GetByBoard)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)

		authorized.GET("/inbox", cardHandler.Inbox)

		// AI routes
		authorized.POST("/ai/extract-tasks", aiHandler.ExtractTasks)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func corsMiddleware(origins string) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if origins == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cors.New(corsCfg)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
