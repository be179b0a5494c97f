package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"hirehub/internal/config"
	"hirehub/internal/database"
	"hirehub/internal/engine"
	"hirehub/internal/handlers"
	"hirehub/internal/middleware"
	"hirehub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

func main() {
	// Initialize components
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.SetSecret(cfg.JWTSecret)

	metrics := utils.NewMetricsCollector()

	// Connect to MongoDB
	db, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	// Initialize actor system and engine
	system := actor.NewActorSystem()
	messagingEngine := engine.NewEngine(system, db, metrics)

	// Create server instance
	server := handlers.NewServer(system, messagingEngine, metrics, db)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.ApplyCORS(middleware.ApplyJWTMiddleware(h), corsConfig)
	}

	// Set up HTTP handlers
	mux := http.NewServeMux()
	mux.HandleFunc("/health", middleware.ApplyCORS(server.HandleHealth(), corsConfig))
	mux.HandleFunc("/messages", protected(server.HandleMessages()))
	mux.HandleFunc("/messages/", protected(server.HandleConversationRoutes()))
	mux.HandleFunc("/notifications", protected(server.HandleNotifications()))
	mux.HandleFunc("/notifications/", protected(server.HandleNotificationRoutes()))

	// Start server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
