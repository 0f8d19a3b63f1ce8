package auth

import (
	"errors"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

var adminNamespace = uuid.MustParse("6f1c2a4e-8a55-4c1e-9d7b-2f0e3c5a7b91")

// dummyHash keeps the cost of a failed lookup equal to a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.DefaultCost)

// AdminID derives a stable id from a login.
func AdminID(login string) uuid.UUID {
	return uuid.NewSHA1(adminNamespace, []byte(login))
}

func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Authenticator checks admin logins against configured bcrypt hashes.
type Authenticator struct {
	hashes map[string]string
}

func NewAuthenticator(hashes map[string]string) *Authenticator {
	return &Authenticator{hashes: hashes}
}

func (a *Authenticator) Authenticate(login, password string) (models.Actor, error) {
	hash, ok := a.hashes[login]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.Actor{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.Actor{}, ErrInvalidCredentials
	}
	return models.Actor{ID: AdminID(login), Login: login}, nil
}
