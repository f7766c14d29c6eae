package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/productgen/internal/api/shared"
	"github.com/phrazzld/productgen/internal/platform/logger"
	"github.com/phrazzld/productgen/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for admin routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// RequireAdmin validates the bearer token and admits only callers whose
// role is auth.RoleAdmin. The subject is added to the request context.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Token expired", err,
					shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token", err,
					shared.WithElevatedLogLevel())
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		if claims.Role != auth.RoleAdmin {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Admin role required",
				auth.ErrInsufficientRole, shared.WithElevatedLogLevel())
			return
		}

		ctx := shared.WithSubject(r.Context(), claims.Subject)
		if log := logger.FromContext(ctx); log != nil {
			ctx = logger.WithLogger(ctx, log.With("subject", claims.Subject))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
