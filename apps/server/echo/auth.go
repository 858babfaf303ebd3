package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/darasahq/ubao/core"
	"github.com/darasahq/ubao/storage/memdb"
)

const claimsContextKey = "userToken"

func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    claimsContextKey,
		Claims:        new(core.Claims),
	}
}

func newQueryJWTConfig(conf *core.Config) middleware.JWTConfig {
	config := newJWTConfig(conf)
	config.TokenLookup = "query:token"
	return config
}

// GetAccountClaims builds the claims a login hands out.
func GetAccountClaims(conf *core.Config, acct memdb.Account) *core.Claims {
	now := time.Now()
	return &core.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   acct.Username,
			Audience:  "Classroom",
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:  acct.Username,
		Name:      acct.Name,
		IsStudent: !acct.IsTeacher,
		IsTeacher: acct.IsTeacher,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *core.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	return token.SignedString([]byte(conf.SecretKey))
}

func getContextClaims(ctx echo.Context) (core.Claims, error) {
	if token, ok := ctx.Get(claimsContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*core.Claims); ok {
			return *claims, nil
		}
	}
	return core.Claims{}, errUnauthorized
}

// studentMiddleware gates question creation to the student role.
func studentMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(func(claims core.Claims) bool { return claims.IsStudent })
}

// taMiddleware gates moderation (importance, replies, soft delete) to the TA role.
func taMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(func(claims core.Claims) bool { return claims.IsTeacher })
}

func roleMiddleware(allowed func(core.Claims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if !allowed(claims) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
