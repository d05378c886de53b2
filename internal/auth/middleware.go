package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "tutordesk/internal/errors"
	"tutordesk/internal/model"
)

// AccessTokenCookie is the cookie carrying the access token for browser clients.
const AccessTokenCookie = "access_token"

const tokenContextKey = "user"

var errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
	Error: "unauthorized",
	Code:  "UNAUTHORIZED",
})

func jwtConfig(jwtService *JWTService) echojwt.Config {
	return echojwt.Config{
		SigningKey:  jwtService.Secret(),
		ContextKey:  tokenContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + AccessTokenCookie,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errUnauthenticated
		},
	}
}

// RequireAuth validates the access token, rejects blacklisted tokens and
// stores the caller Principal in the request context.
func RequireAuth(jwtService *JWTService, store TokenStoreInterface) echo.MiddlewareFunc {
	parse := echojwt.WithConfig(jwtConfig(jwtService))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(attachPrincipal(store, true)(next))
	}
}

// OptionalAuth behaves like RequireAuth but lets anonymous requests through.
func OptionalAuth(jwtService *JWTService, store TokenStoreInterface) echo.MiddlewareFunc {
	cfg := jwtConfig(jwtService)
	cfg.ContinueOnIgnoredError = true
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		return nil
	}
	parse := echojwt.WithConfig(cfg)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(attachPrincipal(store, false)(next))
	}
}

func attachPrincipal(store TokenStoreInterface, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || claims.UserID == "" || !claims.Role.Valid() {
				if required {
					return errUnauthenticated
				}
				return next(c)
			}

			ctx := c.Request().Context()
			if claims.ID != "" {
				if revoked, _ := store.IsAccessTokenBlacklisted(ctx, claims.ID); revoked {
					if required {
						return errUnauthenticated
					}
					return next(c)
				}
			}

			c.SetRequest(c.Request().WithContext(WithPrincipal(ctx, claims.Principal())))
			return next(c)
		}
	}
}

// ClaimsFrom returns the validated access token claims of the request, if any.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	token, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !claims.IsAccess() {
		return nil, false
	}
	return claims, true
}

// RemainingTTL reports how long the claims stay valid.
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}

// RequireRole rejects callers whose role is not in roles with 401.
// It must run after RequireAuth or an equivalent principal-setting middleware.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c.Request().Context())
			if !ok {
				return errUnauthenticated
			}
			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return errUnauthenticated
		}
	}
}
