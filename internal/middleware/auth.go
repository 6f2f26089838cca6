package middleware

import (
	"context"
	"log/slog"
	"strings"

	"folio/internal/auth"
	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier validates an access token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RevocationChecker reports whether a token id was revoked at logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// AuthRequired is a middleware that enforces bearer authentication for protected
// routes. On success the user id and claims are stored in locals. revoked may be nil.
func AuthRequired(verifier TokenVerifier, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization header required"))
		}

		token, ok := BearerToken(c)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				// Fail open: tokens are self-contained and Redis is optional.
				Logger.WarnContext(c.UserContext(), "token revocation check failed", slog.String("error", err.Error()))
			} else if isRevoked {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals(LocalUserID, claims.UserID())
		c.Locals(LocalClaims, claims)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, claims.UserID()))

		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by AuthRequired.
func ClaimsFrom(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*auth.Claims)
	return claims, ok
}
