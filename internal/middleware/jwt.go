package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"saledup/internal/common"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthConfig selects how bearer tokens are verified: a shared HS256 secret,
// or RS256 against a JWKS endpoint when tokens come from an external identity
// provider (Firebase-style).
type AuthConfig struct {
	Secret  string
	JWKSURL string
}

// JWTMiddleware validates the bearer token and stores the caller's shop id in
// the request context. The shop id is the "sub" claim: every authenticated
// caller acts for exactly one shop.
func JWTMiddleware(cfg AuthConfig) echo.MiddlewareFunc {
	var jwks *keyfunc.JWKS
	if cfg.JWKSURL != "" {
		var err error
		jwks, err = keyfunc.Get(cfg.JWKSURL, keyfunc.Options{})
		if err != nil {
			log.Fatalf("Failed to load JWKS from %s: %v", cfg.JWKSURL, err)
		}
	}

	keyFn := func(token *jwt.Token) (interface{}, error) {
		if jwks != nil {
			return jwks.Keyfunc(token)
		}
		return []byte(cfg.Secret), nil
	}

	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			token, err := jwt.Parse(auth, keyFn)
			if err != nil {
				return nil, err
			}
			if !token.Valid {
				return nil, errors.New("token not valid")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return nil, errors.New("invalid claims")
			}
			sub, ok := claims["sub"].(string)
			if !ok {
				return nil, errors.New("missing subject in token")
			}
			shopID, err := uuid.Parse(sub)
			if err != nil {
				return nil, errors.New("invalid subject format")
			}

			ctx := context.WithValue(c.Request().Context(), common.ShopIDKey, shopID)
			c.SetRequest(c.Request().WithContext(ctx))

			return token, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}

// GetShopIDFromContext extracts the caller's shop id from the request context.
func GetShopIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	shopID, ok := ctx.Value(common.ShopIDKey).(uuid.UUID)
	return shopID, ok
}
