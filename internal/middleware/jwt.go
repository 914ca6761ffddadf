package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/chenaniah/academy-api/internal/utils"
)

// JWTProtected validates a bearer token and seeds the request Locals with
// user_id, username and user_role for the handlers and RBAC guard behind
// it. Only HMAC-signed tokens are accepted.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := bearerToken(c.Get("Authorization"))
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		if userID := extractUserIDFromClaims(claims); userID != nil {
			c.Locals("user_id", *userID)
		}
		if username, ok := claims["username"].(string); ok && strings.TrimSpace(username) != "" {
			c.Locals("username", strings.TrimSpace(username))
		}
		if role := roleFromClaims(claims); role != "" {
			c.Locals("user_role", role)
		}

		return c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("authorization header missing")
	}

	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", fmt.Errorf("invalid authorization header")
	}

	raw := strings.TrimSpace(header[len(prefix):])
	if raw == "" {
		return "", fmt.Errorf("invalid token")
	}

	return raw, nil
}

// extractUserIDFromClaims reads the subject under any of the claim names
// our token issuers have used.
func extractUserIDFromClaims(claims jwt.MapClaims) *uint {
	for _, key := range []string{"sub", "user_id", "id"} {
		value, ok := claims[key]
		if !ok {
			continue
		}

		switch v := value.(type) {
		case float64:
			if v >= 0 {
				id := uint(v)
				return &id
			}
		case int:
			if v >= 0 {
				id := uint(v)
				return &id
			}
		case string:
			if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
				id := uint(parsed)
				return &id
			}
		}
	}

	return nil
}

func roleFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"role", "roles"} {
		if value, ok := claims[key]; ok {
			if role := normalizeRole(value); role != "" {
				return role
			}
		}
	}

	return ""
}

// normalizeRole lowercases and trims a role claim. A list claim resolves
// to its first non-empty entry.
func normalizeRole(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				if role := strings.ToLower(strings.TrimSpace(str)); role != "" {
					return role
				}
			}
		}
	}

	return ""
}
