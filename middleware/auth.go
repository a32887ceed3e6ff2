package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/gin-gonic/gin"
)

// bearerToken reads "Authorization: Bearer <t>" and falls back to the token cookie.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return ""
	}
	if cookie, err := c.Cookie(auth.CookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// RequireAuth rejects requests without a token (401) or with an invalid,
// expired or revoked one (403). Verified claims are stored on the context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			apperror.Respond(c, apperror.Unauthenticated("Authentication required"))
			return
		}

		claims, err := tokens.Verify(c.Request.Context(), tokenString)
		if errors.Is(err, apperror.ErrInternal) {
			apperror.Respond(c, err)
			return
		}
		if err != nil {
			if !errors.Is(err, auth.ErrTokenRevoked) {
				log.Printf("🔒 Rejected token on %s: %v", c.Request.URL.Path, err)
			}
			apperror.Respond(c, apperror.InvalidToken("Invalid or expired token"))
			return
		}

		auth.SetClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present. It only rejects
// when the token cannot be checked at all.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			claims, err := tokens.Verify(c.Request.Context(), tokenString)
			if errors.Is(err, apperror.ErrInternal) {
				apperror.Respond(c, err)
				return
			}
			if err == nil {
				auth.SetClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			apperror.Respond(c, apperror.Unauthenticated("Authentication required"))
			return
		}
		if claims.Role != role {
			apperror.Respond(c, apperror.Forbidden("Access denied"))
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireRole(models.RoleAdmin).
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
