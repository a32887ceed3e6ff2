package auth

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
)

// UserStore is the persistence the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EnsureAdmin(ctx context.Context, name, email, hashed string) (*models.User, bool, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the result of a successful login.
type Session struct {
	Token  string
	Claims *Claims
	User   *models.User
}

type Service struct {
	users      UserStore
	tokens     *TokenManager
	bcryptCost int
	// dummyHash equalizes login timing for unknown emails.
	dummyHash string
}

func NewService(users UserStore, tokens *TokenManager, bcryptCost int) *Service {
	dummy, err := HashPassword("timing-equalizer", bcryptCost)
	if err != nil {
		log.Printf("❌ Failed to prepare dummy hash: %v", err)
	}
	return &Service{users: users, tokens: tokens, bcryptCost: bcryptCost, dummyHash: dummy}
}

func (s *Service) Tokens() *TokenManager { return s.tokens }

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if fields := ValidateRegistration(in); len(fields) > 0 {
		return nil, apperror.Validation("Invalid registration data", fields)
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal("Failed to register user", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleCustomer,
		Phone:    in.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, apperror.InvalidCredentials()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			CheckPassword(s.dummyHash, in.Password)
			return nil, apperror.InvalidCredentials()
		}
		return nil, err
	}
	if !CheckPassword(user.Password, in.Password) {
		return nil, apperror.InvalidCredentials()
	}

	token, claims, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperror.Internal("Failed to issue token", err)
	}
	return &Session{Token: token, Claims: claims, User: user}, nil
}

// Logout revokes the token when a revoker is configured.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return apperror.Internal("Failed to log out", err)
	}
	return nil
}

// SeedAdmin makes sure the configured admin account exists.
func (s *Service) SeedAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	admin, created, err := s.users.EnsureAdmin(ctx, name, email, hash)
	if err != nil {
		return err
	}
	if created {
		log.Printf("✅ Admin account created: %s", admin.Email)
	} else {
		log.Printf("✅ Admin account ready: %s", admin.Email)
	}
	return nil
}

// ValidateRegistration returns per-field problems, empty when in is acceptable.
func ValidateRegistration(in RegisterInput) map[string]string {
	fields := map[string]string{}

	if msg := ValidateName(in.Name); msg != "" {
		fields["name"] = msg
	}
	if in.Email == "" {
		fields["email"] = "is required"
	} else if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		fields["email"] = "must be a valid email address"
	}
	if in.Password == "" {
		fields["password"] = "is required"
	} else if err := passwordStrength(in.Password); err != nil {
		fields["password"] = err.Error()
	}
	if in.Phone != "" && !ValidPhone(in.Phone) {
		fields["phone"] = "must be a valid phone number"
	}
	return fields
}

// ValidateName checks the 2–100 character rule shared by registration and profile updates.
func ValidateName(name string) string {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return "is required"
	case n < 2 || n > 100:
		return "must be between 2 and 100 characters"
	}
	return ""
}
