package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zentra/zentrachat/internal/service/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// authMiddleware resolves the Bearer token to an Identity and stores it
// in the request context. Requests without a live session get a 401.
func authMiddleware(log *slog.Logger, service *auth.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		identity, err := service.ValidateToken(r.Context(), token)
		if err != nil {
			log.Info("rejected token", slog.String("error", err.Error()))
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

func identityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
