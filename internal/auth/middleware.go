package auth

import (
	"log/slog"
	"net/http"

	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/shared"
)

// RequireBearer rejects requests without a valid, unrevoked bearer token and
// stores the principal in the request context.
func (s *Service) RequireBearer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := BearerToken(r)
			if raw == "" {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			principal, err := s.Authenticate(r.Context(), raw)
			if err != nil {
				if logger != nil {
					logger.Debug("bearer rejected", slog.Any("error", err))
				}
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// Anonymous injects a fixed administrator principal, used when
// authentication is disabled.
func Anonymous(next http.Handler) http.Handler {
	principal := &shared.Principal{UserID: AdminUserID, Role: "admin"}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(shared.ContextWithPrincipal(r.Context(), principal)))
	})
}
