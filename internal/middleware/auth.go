package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"userapi/internal/auth"
	apperrors "userapi/internal/errors"
)

// ClaimsKey is the echo context key holding *auth.Claims after BearerAuth.
const ClaimsKey = "claims"

// BearerAuth requires "Authorization: Bearer <token>" and verifies it with
// jwtService. Missing, malformed, expired and forged tokens all get the same
// 401.
func BearerAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.NewHTTPError(http.StatusUnauthorized, apperrors.MsgInvalidToken)
		},
	})
}

// ClaimsFrom returns the verified claims stored by BearerAuth.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
