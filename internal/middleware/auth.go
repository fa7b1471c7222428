package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const subjectKey = "subject"

// AuthMiddleware requires an HS256 bearer token signed with secret. The
// token's subject is stored on the context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	keyFunc := func(token *jwt.Token) (any, error) {
		return secret, nil
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || tokenString == "" {
			RespondWithError(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
		if err == nil && !token.Valid {
			err = errors.New("token is invalid")
		}
		if err != nil {
			_ = c.Error(fmt.Errorf("rejected token: %w", err))
			RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}

func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get(subjectKey)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}
