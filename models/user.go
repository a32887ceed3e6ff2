package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole accepts only the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:VARCHAR(20);default:'customer';not null" json:"role"`
	Phone        string    `json:"phone,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
