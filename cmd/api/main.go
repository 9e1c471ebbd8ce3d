package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/devevent/devevent-backend/api/routes"
	"github.com/devevent/devevent-backend/internal/config"
	"github.com/devevent/devevent-backend/internal/handlers"
	mongorepo "github.com/devevent/devevent-backend/internal/repositories/mongodb"
	"github.com/devevent/devevent-backend/internal/services"
	"github.com/devevent/devevent-backend/pkg/mediastore"
	"github.com/devevent/devevent-backend/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(cfg)

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()

	mongoClient, err := mongodb.NewClient(connectCtx, cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	if err := mongorepo.EnsureEventIndexes(connectCtx, db); err != nil {
		log.Fatalf("Failed to create event indexes: %v", err)
	}
	if err := mongorepo.EnsureBookingIndexes(connectCtx, db); err != nil {
		log.Fatalf("Failed to create booking indexes: %v", err)
	}

	media, err := mediastore.NewCloudinaryStore(cfg)
	if err != nil {
		log.Fatalf("Failed to configure media store: %v", err)
	}

	eventRepo := mongorepo.NewEventRepository(db)
	bookingRepo := mongorepo.NewBookingRepository(db)

	eventService := services.NewEventService(eventRepo, bookingRepo, media, logger)
	bookingService := services.NewBookingService(bookingRepo, eventRepo)

	handlerDeps := routes.HandlerDependencies{
		EventHandler:   handlers.NewEventHandler(eventService, logger),
		BookingHandler: handlers.NewBookingHandler(bookingService, logger),
	}

	router := routes.SetupRouter(cfg, logger, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Info("server starting", "port", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	logger.Info("server exiting")
}
