package auth

import "github.com/gin-gonic/gin"

const claimsKey = "auth_claims"

// SetClaims stores verified claims on the request.
func SetClaims(c *gin.Context, claims *Claims) {
	c.Set(claimsKey, claims)
}

// ClaimsFrom returns the claims attached by the auth middleware, if any.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}
