package main

import (
	"context"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/adapter/messaging/nats"
	"github.com/estatehub/listing-service/internal/adapter/repository/cache"
	"github.com/estatehub/listing-service/internal/adapter/repository/mongodb"
	"github.com/estatehub/listing-service/internal/adapter/rest"
	"github.com/estatehub/listing-service/internal/adapter/rest/middleware"
	"github.com/estatehub/listing-service/internal/adapter/storage/s3"
	"github.com/estatehub/listing-service/internal/config"
	"github.com/estatehub/listing-service/internal/listing/usecase"
	"github.com/estatehub/listing-service/internal/mailer"
	"github.com/estatehub/listing-service/internal/platform/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	tp, err := tracer.InitTracer(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer tp.Shutdown(ctx)

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo := mongodb.NewListingRepository(db)
	userRepo := mongodb.NewUserRepository(db)

	summaryCache, err := cache.NewUserSummaryCache(cfg.RedisAddress, userRepo)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	storage, err := s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	var listingMailer usecase.Mailer
	if cfg.SMTPHost != "" {
		listingMailer = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	photoUC := usecase.NewPhotoUsecase(storage, logger)
	listingUC := usecase.NewListingUsecase(listingRepo, summaryCache, photoUC, publisher, listingMailer, logger)
	userUC := usecase.NewUserUsecase(userRepo, listingRepo, summaryCache, cfg.JWTSecret, logger)

	listingHandler := rest.NewListingHandler(listingUC, photoUC, logger)
	userHandler := rest.NewUserHandler(userUC, logger)
	auth := middleware.Authenticator(cfg.JWTSecret, userRepo, logger)

	router := rest.NewRouter(listingHandler, userHandler, auth, logger)

	addr := ":" + cfg.HTTPPort
	logger.Info("Starting HTTP server", zap.String("address", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}
