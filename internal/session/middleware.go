package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "catalog_session"

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func SignToken(secret, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.SessionID == "" {
		return "", fiber.ErrUnauthorized
	}
	return claims.SessionID, nil
}

// Attach resolves the request's session from the signed cookie, minting a
// new session (and cookie) when the cookie is missing or invalid. The
// session lands in c.Locals for handlers.
func Attach(reg *Registry, secret string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sess *Session

		if tokenStr := c.Cookies(CookieName); tokenStr != "" {
			if id, err := ParseToken(secret, tokenStr); err == nil {
				sess = reg.Materialize(id)
			}
		}

		if sess == nil {
			sess = reg.New()
			token, err := SignToken(secret, sess.ID, ttl)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "Failed to create session",
				})
			}
			c.Cookie(&fiber.Cookie{
				Name:     CookieName,
				Value:    token,
				Expires:  time.Now().Add(ttl),
				HTTPOnly: true,
				SameSite: "Lax",
			})
		}

		c.Locals("session", sess)
		return c.Next()
	}
}

// FromCtx returns the session attached by the middleware.
func FromCtx(c *fiber.Ctx) *Session {
	sess, _ := c.Locals("session").(*Session)
	return sess
}
