package usecases

import (
	"crypto/subtle"
	"strings"

	apperrors "github.com/deskovitz1/FIXED-CLIENT-PORTFOLIO-sub000/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	Login(password string) error
}

type adminService struct {
	secret func() string
}

// NewAdminService reads the shared secret through secret on every login.
func NewAdminService(secret func() string) AdminService {
	return &adminService{secret: secret}
}

func (s *adminService) Login(password string) error {
	expected := ""
	if s.secret != nil {
		expected = s.secret()
	}
	if expected == "" {
		return apperrors.ErrAdminPasswordMissing()
	}
	if password == "" {
		return apperrors.ErrValidation("password is required")
	}

	if isBcryptHash(expected) {
		if err := bcrypt.CompareHashAndPassword([]byte(expected), []byte(password)); err != nil {
			return apperrors.ErrUnauthorized("Invalid password")
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		return apperrors.ErrUnauthorized("Invalid password")
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
