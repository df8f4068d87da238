// Package secret guards machine-to-machine endpoints with a shared secret
// passed as a query parameter, the way mail gateways call webhooks.
package secret

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/httputil"
	"feder/pkg/requestcontext"
)

// RequireQuerySecret rejects requests whose ?<param>= value does not match
// expected. An empty expected secret rejects everything.
func RequireQuerySecret(param, expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.URL.Query().Get(param)
			if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "webhook secret mismatch",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid secret"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
