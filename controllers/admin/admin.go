package adminController

import (
	"net/http"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/alfar-programer/Store-B-sub000/uploads"
	"github.com/gin-gonic/gin"
)

// GetAllUsers handles GET /api/users. Password hashes never leave the model.
func GetAllUsers(users *repository.Users, publicBaseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			apperror.Respond(c, err)
			return
		}

		base := uploads.BaseURL(c, publicBaseURL)
		out := make([]models.User, len(list))
		for i, u := range list {
			u.ProfileImage = uploads.AbsoluteURL(base, u.ProfileImage)
			out[i] = u
		}
		c.JSON(http.StatusOK, out)
	}
}
