package auth

import (
	"net/http"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/gin-gonic/gin"
)

// CookieName is the cookie the token is mirrored into on login.
const CookieName = "token"

// RegisterHandler handles POST /api/auth/register.
func RegisterHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		user, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			apperror.Respond(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User registered successfully",
			"user":    user,
		})
	}
}

// LoginHandler handles POST /api/auth/login.
func LoginHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in LoginInput
		if err := c.ShouldBindJSON(&in); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		session, err := svc.Login(c.Request.Context(), in)
		if err != nil {
			apperror.Respond(c, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, session.Token, int(svc.Tokens().TTL().Seconds()), "/", "", c.Request.TLS != nil, true)

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   session.Token,
			"role":    session.User.Role,
			"user":    session.User,
		})
	}
}

// LogoutHandler clears the cookie and revokes the token if revocation is enabled.
// Must run behind the auth middleware.
func LogoutHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		if err := svc.Logout(c.Request.Context(), claims); err != nil {
			apperror.Respond(c, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", c.Request.TLS != nil, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}
