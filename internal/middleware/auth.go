package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vidtube/vidtube_backend/internal/dto"
)

// Cookie names shared by the auth guard and the session handlers.
const (
	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// tokenFromRequest extracts the access token from the Authorization header or
// the accessToken cookie.
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(AccessTokenCookieName); err == nil {
		return cookie
	}
	return ""
}

func parseAccessToken(tokenString, jwtSecret string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// attachUser stores the user ID in the request context and enriches the logger.
func attachUser(c *gin.Context, userID string) {
	logger := GetLoggerFromCtx(c.Request.Context())
	ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, userID)
	enrichedLogger := logger.With(slog.String("user_id", userID))
	c.Request = c.Request.WithContext(context.WithValue(ctxWithUser, loggerKey, enrichedLogger))
	c.Set(string(userIDKey), userID)
}

// AuthMiddleware creates a Gin middleware handler that validates access tokens
// from the Authorization header or the accessToken cookie.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			logger.Warn("Access token missing")
			abortUnauthorized(c, "Unauthorized request")
			return
		}

		claims, err := parseAccessToken(tokenString, jwtSecret)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			msg := "Invalid access token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Access token has expired"
			}
			abortUnauthorized(c, msg)
			return
		}

		if claims.Subject == "" {
			logger.Error("User ID (subject) missing from valid token")
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		attachUser(c, claims.Subject)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller's identity when a valid access
// token is present, and lets the request through anonymously otherwise. Used
// for endpoints like channel profiles where the viewer may not be logged in.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString != "" {
			if claims, err := parseAccessToken(tokenString, jwtSecret); err == nil && claims.Subject != "" {
				attachUser(c, claims.Subject)
			}
		}
		c.Next()
	}
}
