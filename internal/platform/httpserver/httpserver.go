package httpserver

import (
	"net/http"
	"time"

	"feder/internal/platform/config"
)

// New builds the HTTP server. Write timeout stays generous because webhook
// bodies carry attachments.
func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}
