package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/merahburam/ameo-assets/internal/ai"
	"github.com/merahburam/ameo-assets/internal/auth"
	"github.com/merahburam/ameo-assets/internal/config"
	"github.com/merahburam/ameo-assets/internal/db"
	"github.com/merahburam/ameo-assets/internal/handlers"
	"github.com/merahburam/ameo-assets/internal/middleware"
	"github.com/merahburam/ameo-assets/internal/observability"
	"github.com/merahburam/ameo-assets/internal/rabbitmq"
	"github.com/merahburam/ameo-assets/internal/repositories"
	"github.com/merahburam/ameo-assets/internal/telemetry"
	"github.com/merahburam/ameo-assets/internal/ws"
)

const serviceName = "ameo-assets"

func main() {
	cfg := config.Load()

	shutdownTracing := telemetry.InitTracing(context.Background(), cfg.OTLPEndpoint, serviceName, cfg.Environment)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	log.Printf("event publisher mode=%s", rabbitmq.PublisherMode(publisher))

	emitter := telemetry.NewEventEmitter(publisher, serviceName, cfg.Environment)

	if eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
		log.Printf("ws event publishing disabled: %v", err)
	} else {
		observability.SetPublisher(eventPublisher)
		defer eventPublisher.Close()
	}

	userRepo := repositories.NewUserRepo(database)
	conversationRepo := repositories.NewConversationRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	typingRepo := repositories.NewTypingRepo(database)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	hub := ws.NewHub()
	aiClient := ai.NewHTTPClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	dailyMemo := ai.NewDailyMemo()

	authHandler := handlers.NewAuthHandler(userRepo, issuer)
	conversationHandler := handlers.NewConversationHandler(conversationRepo, userRepo, hub, emitter)
	messageHandler := handlers.NewMessageHandler(conversationRepo, messageRepo, userRepo, hub, emitter)
	typingHandler := handlers.NewTypingHandler(conversationRepo, typingRepo, hub)
	feedbackHandler := handlers.NewFeedbackHandler(aiClient, emitter)
	speechHandler := handlers.NewSpeechHandler(aiClient, dailyMemo, emitter)
	assetHandler := handlers.NewAssetHandler(cfg.AssetDir)

	conversationWS := ws.NewConversationWebSocketHandler(hub, conversationRepo, issuer)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-Device-Id"},
		MaxAge:       12 * time.Hour,
	}))

	authMiddleware := middleware.AuthMiddleware(issuer)
	aiLimiter := middleware.AIRateLimiter(cfg.RedisAddr, 10, time.Minute)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static("/assets/images", cfg.AssetDir)
	router.GET("/api/assets/images", assetHandler.ListImages)

	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	router.GET("/api/conversations", authMiddleware, conversationHandler.ListConversations)
	router.POST("/api/conversations", authMiddleware, conversationHandler.StartConversation)
	router.DELETE("/api/conversations/:conversation_id", authMiddleware, conversationHandler.DeleteConversation)
	router.GET("/api/conversations/:conversation_id/messages", authMiddleware, messageHandler.ListMessages)
	router.POST("/api/conversations/:conversation_id/messages", authMiddleware, messageHandler.PostMessage)
	router.PUT("/api/conversations/:conversation_id/typing", authMiddleware, typingHandler.SetTyping)
	router.GET("/api/conversations/:conversation_id/typing", authMiddleware, typingHandler.GetTyping)

	router.POST("/api/design/feedback", authMiddleware, aiLimiter, feedbackHandler.GenerateFeedback)
	router.GET("/api/speech/daily", speechHandler.DailySpeech)
	router.POST("/api/speech", authMiddleware, aiLimiter, speechHandler.GenerateSpeech)

	router.GET("/ws/conversations/:conversation_id", conversationWS.Handle)

	handlers.RegisterDebugRoutes(router, emitter, cfg.Debug)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
