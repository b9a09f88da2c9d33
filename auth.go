package main

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// mockUserID is the identity attached to every request when no token is
// presented. Stands in for real authentication until one exists.
const mockUserID = "mock-user-1"

// identityMiddleware always succeeds. Every request gets an owner identity:
// the mock user by default, or the subject of a valid Bearer token when
// AUTH_JWT_SECRET is configured. Bad tokens fall back to the mock identity
// rather than failing the request.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := mockUserID
		if len(jwtSecret) > 0 {
			if sub := subjectFromBearer(c.GetHeader("Authorization")); sub != "" {
				userID = sub
			}
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// subjectFromBearer parses an "Authorization: Bearer <jwt>" header and returns
// the token subject, or "" when the header is absent or the token invalid.
func subjectFromBearer(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	token, err := jwt.Parse(header[7:], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// currentUserID returns the identity set by identityMiddleware.
func currentUserID(c *gin.Context) string {
	v, _ := c.Get("userID")
	id, _ := v.(string)
	if id == "" {
		return mockUserID
	}
	return id
}
