package userControllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/auth"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/alfar-programer/Store-B-sub000/uploads"
	"github.com/gin-gonic/gin"
)

const profileImageDir = "profiles"

type Deps struct {
	Users         *repository.Users
	Uploads       *uploads.Store
	PublicBaseURL string
}

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

func (d Deps) present(c *gin.Context, u models.User) models.User {
	u.ProfileImage = uploads.AbsoluteURL(uploads.BaseURL(c, d.PublicBaseURL), u.ProfileImage)
	return u
}

func currentUserID(c *gin.Context) (uint, bool) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		apperror.Respond(c, apperror.Unauthenticated("Authentication required"))
		return 0, false
	}
	return claims.UserID, true
}

// GET /api/user/profile
func GetProfile(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := d.Users.FindByID(c.Request.Context(), userID)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, d.present(c, *user))
	}
}

// PUT /api/user/profile
func UpdateProfile(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperror.Respond(c, apperror.FromBinding(err))
			return
		}

		fields := map[string]string{}
		updates := make(map[string]any)
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if msg := auth.ValidateName(name); msg != "" {
				fields["name"] = msg
			}
			updates["name"] = name
		}
		if input.Phone != nil {
			phone := strings.TrimSpace(*input.Phone)
			if phone != "" && !auth.ValidPhone(phone) {
				fields["phone"] = "must be a valid phone number"
			}
			updates["phone"] = phone
		}
		if len(fields) > 0 {
			apperror.Respond(c, apperror.Validation("Invalid input", fields))
			return
		}

		user, err := d.Users.Update(c.Request.Context(), userID, updates)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": d.present(c, *user)})
	}
}

// POST /api/user/profile/image
func UploadProfileImage(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		file, err := c.FormFile("image")
		if err != nil {
			apperror.Respond(c, apperror.Validation("No image uploaded", map[string]string{"image": "is required"}))
			return
		}

		current, err := d.Users.FindByID(c.Request.Context(), userID)
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		image, err := d.Uploads.SaveImage(c, file, profileImageDir)
		if err != nil {
			apperror.Respond(c, err)
			return
		}

		user, err := d.Users.Update(c.Request.Context(), userID, map[string]any{"profile_image": image})
		if err != nil {
			_ = d.Uploads.Remove(image)
			apperror.Respond(c, err)
			return
		}
		if err := d.Uploads.Remove(current.ProfileImage); err != nil {
			log.Printf("⚠️ Failed to remove old profile image %s: %v", current.ProfileImage, err)
		}

		presented := d.present(c, *user)
		c.JSON(http.StatusOK, gin.H{"message": "Profile image updated", "imageUrl": presented.ProfileImage, "user": presented})
	}
}
