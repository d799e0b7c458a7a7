package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

// claimsKey is the context key under which the decoded claim is stored.
// Unexported so handlers go through ClaimsFrom.
const claimsKey = "auth.claims"

// Auth is the per-request authorization gate. Required gives the
// authentication stage alone; AdminOnly runs the same stage and then the role
// check, so a role-checked route without claim attachment cannot be built.
type Auth struct {
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuth(tokens ports.TokenService, log zerolog.Logger) *Auth {
	return &Auth{tokens: tokens, log: log}
}

// Required authenticates the request and injects the claim into context.
// All validation failures collapse to a 401; the real reason is only logged.
func (a *Auth) Required() echo.MiddlewareFunc {
	return a.gate("")
}

// AdminOnly authenticates the request and then requires the admin role.
func (a *Auth) AdminOnly() echo.MiddlewareFunc {
	return a.gate(domain.RoleAdmin)
}

func (a *Auth) gate(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claim, err := a.tokens.Validate(parts[1])
			if err != nil {
				a.log.Debug().Err(err).
					Str("path", c.Path()).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsKey, claim)

			if requiredRole != "" && claim.Role != requiredRole {
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}

// ClaimsFrom returns the claim attached by the gate, or false when the
// request has not passed authentication.
func ClaimsFrom(c echo.Context) (*domain.Claim, bool) {
	claim, ok := c.Get(claimsKey).(*domain.Claim)
	return claim, ok
}
