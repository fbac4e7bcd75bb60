package http

import (
	"errors"
	"net/http"
	"strings"

	"warehouse/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid bearer token")

// ActorMiddleware authenticates the caller with an HS256 bearer token and
// stores its subject as the acting user for the rest of the request.
func ActorMiddleware(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, raw, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return errUnauthorized
			}

			var claims jwt.RegisteredClaims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				return errUnauthorized
			}
			if strings.TrimSpace(claims.Subject) == "" {
				return errUnauthorized
			}

			ctx := c.Request().Context()
			ctx, _ = logger.WithActorID(ctx, logger.FromContext(ctx), claims.Subject)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func actorID(c echo.Context) (string, error) {
	id := logger.ActorID(c.Request().Context())
	if id == "" {
		return "", errors.New("request has no authenticated actor")
	}
	return id, nil
}
