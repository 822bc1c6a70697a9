package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shubhswain45/connectify-server-app/internal/api"
	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/config"
	"github.com/shubhswain45/connectify-server-app/internal/database"
	"github.com/shubhswain45/connectify-server-app/internal/logger"
	"github.com/shubhswain45/connectify-server-app/internal/mailer"
	"github.com/shubhswain45/connectify-server-app/internal/services"
	"github.com/shubhswain45/connectify-server-app/internal/storage"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up external collaborators
	smtpMailer, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize mailer")
	}

	mediaStore, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize media store")
	}

	// Set up services
	tokens := auth.NewService(cfg.JWTSecret)
	authService := services.NewAuthService(db, smtpMailer, cfg.FrontendURL)
	userService := services.NewUserService(db)
	trackService := services.NewTrackService(db, mediaStore)
	playlistService := services.NewPlaylistService(db, mediaStore)

	// Set up router
	router := api.NewRouter(tokens, cfg.FrontendURL, authService, userService, trackService, playlistService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
