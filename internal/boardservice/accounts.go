package boardservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/auth"
	"github.com/Weesdome/Boardhub/internal/models"
)

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate implements validation.Validatable.
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Password, validation.Required, validation.RuneLength(auth.MinPasswordLength, 0), validation.By(maxPasswordBytes)),
	)
}

func maxPasswordBytes(value any) error {
	if s, _ := value.(string); len(s) > auth.MaxPasswordBytes {
		return validation.NewError("validation_password_too_long",
			fmt.Sprintf("the length must be no more than %d bytes", auth.MaxPasswordBytes))
	}
	return nil
}

// LoginInput is the sign-in payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements validation.Validatable.
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns its session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           s.newID(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return nil, fmt.Errorf("email %s: %w", in.Email, apperr.ErrAlreadyExists)
		}
		return nil, err
	}
	return sessionOf(u), nil
}

// Login checks credentials. Unknown email and wrong password both yield
// apperr.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (*models.Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.users.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	ok, err := auth.ComparePassword(u.PasswordHash, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.ErrInvalidCredentials
	}
	return sessionOf(u), nil
}

// SessionFor looks up an account by email, for tools that act on behalf of a
// user without a password.
func (s *Service) SessionFor(ctx context.Context, email string) (*models.Session, error) {
	u, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", email, err)
	}
	return sessionOf(u), nil
}

func sessionOf(u *models.User) *models.Session {
	return &models.Session{UserID: u.ID, Email: u.Email, Name: u.Name}
}
