package middleware

import (
	"net/http"
	"strings"

	"github.com/routesales/routesales-backend/api/responses"
	pkgauth "github.com/routesales/routesales-backend/pkg/auth"
	"github.com/routesales/routesales-backend/pkg/config"
	pkgerrors "github.com/routesales/routesales-backend/pkg/errors"
	"github.com/routesales/routesales-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the sales
// rep's identity, region, and role.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithSalesRepID(r.Context(), claims.SalesRepID)
			ctx = WithRegionID(ctx, claims.RegionID)
			ctx = WithRole(ctx, claims.Role)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"sales_rep_id": claims.SalesRepID.String(),
					"region_id":    claims.RegionID.String(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
