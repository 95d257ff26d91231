package middleware

import (
	"net/http"

	"github.com/1804coins/storefront-api/internal/config"
	"github.com/1804coins/storefront-api/internal/errors"
	"github.com/1804coins/storefront-api/internal/utils/response"
)

type AdminMiddleware struct {
	security *config.Security
}

func NewAdminMiddleware(security *config.Security) *AdminMiddleware {
	return &AdminMiddleware{security: security}
}

// RequireAdmin gates a handler behind the configured admin email list.
// It must run after Authenticate.
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Admin route hit without authentication")
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		if !m.security.IsAdmin(claims.Email) {
			logger.Warn("Admin access denied")
			response.Error(w, errors.ForbiddenError("Admin access required"))

			return
		}

		next.ServeHTTP(w, r)
	}
}
