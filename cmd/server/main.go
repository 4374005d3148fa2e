package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rescue-service/config"
	"rescue-service/internal/audit"
	"rescue-service/internal/emergency"
	"rescue-service/internal/notification"
	"rescue-service/internal/realtime"
	"rescue-service/internal/user"
	"rescue-service/pkg/consul"
	"rescue-service/pkg/firebase"
	"rescue-service/pkg/zap"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.LoadConfig()

	logger, err := zap.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	consulConn := consul.NewConsulConn(logger, cfg)
	consulConn.Connect()
	defer consulConn.Deregister()

	mongoClient, err := connectToMongoDB(cfg.MongoURI)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Fatal(err)
		}
	}()

	fbApp, err := firebase.SetUpFireBase(cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Warnf("Push notifications disabled: %v", err)
	}

	var auditLog emergency.AuditLog
	if cfg.EventStoreURI != "" {
		publisher, err := audit.NewPublisher(cfg.EventStoreURI, logger)
		if err != nil {
			logger.Warnf("Audit journal disabled: %v", err)
		} else {
			auditLog = publisher
			defer publisher.Close()
		}
	}

	hub := realtime.NewHub(logger)
	go hub.Run()

	db := mongoClient.Database(cfg.MongoDB)

	userRepository := user.NewUserRepository(db.Collection("users"))
	userService := user.NewUserService(userRepository, cfg.JWTSecret)
	userHandler := user.NewUserHandler(userService)

	tokenRepository := notification.NewTokenRepository(db.Collection("device_tokens"))
	notificationService := notification.NewNotificationService(tokenRepository, fbApp, logger)
	notificationHandler := notification.NewNotificationHandler(notificationService)

	requestRepository := emergency.NewRequestRepository(db.Collection("emergency_requests"))
	requestService := emergency.NewRequestService(requestRepository, notificationService, hub, auditLog, logger)
	requestHandler := emergency.NewRequestHandler(requestService)

	router := gin.Default()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	user.RegisterRoutes(router, userHandler)
	emergency.RegisterRoutes(router, requestHandler, cfg.JWTSecret)
	notification.RegisterRoutes(router, notificationHandler, cfg.JWTSecret)
	realtime.RegisterRoutes(router, hub, cfg.JWTSecret)

	c := cron.New(cron.WithSeconds())
	_, err = c.AddFunc("0 */1 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := requestService.RemindPending(ctx, cfg.PendingReminderAfter); err != nil {
			logger.Warnf("Pending reminder sweep failed: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("AddFunc error: %v", err)
	}

	c.Start()
	defer c.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Error shutting down server: %v", err)
	}
	logger.Info("Server stopped")
}

func connectToMongoDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB")
	return client, nil
}
