package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shubhswain45/connectify-server-app/internal/api/handlers"
	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Service,
	frontendURL string,
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	trackService services.TrackServiceProvider,
	playlistService services.PlaylistServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Credentialed single-origin CORS so the session cookie survives
	// cross-site requests from the frontend.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve the caller identity for every request; anonymous is fine here
	r.Use(tokens.Resolver())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	userHandler := handlers.NewUserHandler(userService)
	trackHandler := handlers.NewTrackHandler(trackService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/verify-email", authHandler.VerifyEmail)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Get("/me", authHandler.GetMe)
		})

		r.Get("/profiles/{username}", userHandler.GetProfile)

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}/playlists", playlistHandler.GetForUser)
			r.With(auth.RequireAuth).Post("/{id}/follow", userHandler.Follow)
		})

		r.Route("/tracks", func(r chi.Router) {
			r.Get("/", trackHandler.GetFeed)
			r.With(auth.RequireAuth).Post("/", trackHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", trackHandler.Get)
				r.With(auth.RequireAuth).Delete("/", trackHandler.Delete)
				r.With(auth.RequireAuth).Post("/like", trackHandler.Like)
			})
		})

		r.Route("/playlists", func(r chi.Router) {
			r.With(auth.RequireAuth).Post("/", playlistHandler.Create)
			r.Get("/{id}", playlistHandler.Get)
		})
	})

	return r
}
