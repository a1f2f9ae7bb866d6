package app

import (
	"fmt"
	"net/http"
	"recovery/internal/app/deps"
	"recovery/internal/app/services"
	editpasswordreset "recovery/internal/http/handlers/password_resets/edit_password_reset"
	newpasswordreset "recovery/internal/http/handlers/password_resets/new_password_reset"
	requestpasswordreset "recovery/internal/http/handlers/password_resets/request_password_reset"
	updatepasswordreset "recovery/internal/http/handlers/password_resets/update_password_reset"
	"recovery/internal/http/handlers/response"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func NewRouter(s *services.Services, allowedOrigins []string, userIDParamName string) http.Handler {
	passwordResetRouter := chi.NewRouter()
	passwordResetRouter.Method(http.MethodGet, "/new", newpasswordreset.New(userIDParamName))
	passwordResetRouter.Method(http.MethodPost, "/", requestpasswordreset.New(s.RequestPasswordReset))
	passwordResetRouter.Method(
		http.MethodGet,
		"/edit",
		editpasswordreset.New(s.ValidatePasswordReset, userIDParamName),
	)
	passwordResetRouter.Method(
		http.MethodPut,
		"/",
		updatepasswordreset.New(s.CompletePasswordReset, userIDParamName),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount(response.PasswordResetsURL, passwordResetRouter)
	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           NewRouter(s, deps.Config.AllowedOrigins, deps.PasswordResetSettings.UserIDParamName),
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
