package accounts_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, s AccountService, l *zap.Logger) {
	handler := NewAccountHandler(s, l.With(zap.String("component", "AccountHTTPHandler")))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1/accounts", func(r chi.Router) {
		r.Post("/", handler.CreateAccountHandler)
		r.Post("/transfers", handler.TransferHandler)
		r.Get("/{accountId}", handler.GetAccountHandler)
	})
}
