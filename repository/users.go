package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create inserts u. A taken email yields a Conflict error.
func (r *Users) Create(ctx context.Context, u *models.User) error {
	u.Email = NormalizeEmail(u.Email)

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return apperror.FromDB("User", err)
	}
	if count > 0 {
		return apperror.Conflict("Email already registered")
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("Email already registered")
		}
		return apperror.FromDB("User", err)
	}
	return nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&u).Error; err != nil {
		return nil, apperror.FromDB("User", err)
	}
	return &u, nil
}

func (r *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, apperror.FromDB("User", err)
	}
	return &u, nil
}

// Update applies a column -> value map and returns the reloaded user.
func (r *Users) Update(ctx context.Context, id uint, updates map[string]any) (*models.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
			return nil, apperror.FromDB("User", err)
		}
	}
	return r.FindByID(ctx, id)
}

// List returns users newest first.
func (r *Users) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, apperror.FromDB("Users", err)
	}
	return users, nil
}

// EnsureAdmin creates the admin account if missing and promotes an existing
// account with that email otherwise. hashed must already be a password hash.
func (r *Users) EnsureAdmin(ctx context.Context, name, email, hashed string) (*models.User, bool, error) {
	existing, err := r.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			if err := r.db.WithContext(ctx).Model(existing).Update("role", models.RoleAdmin).Error; err != nil {
				return nil, false, apperror.FromDB("User", err)
			}
			existing.Role = models.RoleAdmin
		}
		return existing, false, nil
	case errors.Is(err, apperror.ErrNotFound):
		admin := &models.User{Name: name, Email: email, Password: hashed, Role: models.RoleAdmin}
		if err := r.Create(ctx, admin); err != nil {
			return nil, false, err
		}
		return admin, true, nil
	default:
		return nil, false, err
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
