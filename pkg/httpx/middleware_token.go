package httpx

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

// RequireSharedToken admits requests whose header carries the configured
// shared secret. Used by machine callers (the billing provider) that have no
// end-user token. With an empty expected value every request is refused.
func RequireSharedToken(header, expected string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cryptox.TokensEqual(expected, r.Header.Get(header)) {
				slogx.FromContext(r.Context()).Warn("shared token rejected",
					slog.String("header", header),
					slog.String("path", r.URL.Path),
				)
				WriteError(w, http.StatusUnauthorized, "invalid_token", "missing or invalid "+header)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
