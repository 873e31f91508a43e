// File: bobbystable/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bobbystable/config"
	"bobbystable/handlers"
	"bobbystable/middleware"
	"bobbystable/routes"
	"bobbystable/services/conversation"
	"bobbystable/services/reservation"
	"bobbystable/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Shared state: the slot ledger and the reservation store.
	ledger := reservation.NewSlotLedger(cfg.TimeSlots, cfg.MaxPerSlot)
	store := reservation.NewDefaultReservationStore(ledger, cfg.MaxPartySize, logger)

	// Per-call session storage.
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var sessions conversation.SessionStore
	if cfg.SessionStore == "redis" {
		sessions = conversation.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)
		logger.Sugar().Infof("using redis session store at %s", cfg.RedisAddr)
	} else {
		sessions = conversation.NewMemorySessionStore(sessionTTL)
	}

	conversationService := &conversation.DefaultConversationService{
		Sessions:     sessions,
		Store:        store,
		Ledger:       ledger,
		MaxPartySize: cfg.MaxPartySize,
		Logger:       logger,
	}

	hub := handlers.NewEventHub()
	conversationHandler := handlers.NewConversationHandler(conversationService, hub, logger)
	dashboardHandler := handlers.NewDashboardHandler(store, ledger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		HandleTurn:      conversationHandler.HandleTurnHandler,
		GetReservations: dashboardHandler.GetReservationsHandler,
		GetAvailability: dashboardHandler.GetAvailabilityHandler,
		GetConfig:       dashboardHandler.GetConfigHandler,
		StreamEvents:    hub.StreamEventsHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting %s on %s...", cfg.RestaurantName, srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
