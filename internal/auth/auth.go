package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"encryption-service/internal/models"
	"encryption-service/internal/storage"
)

// ErrInvalidCredentials — и для неизвестного логина, и для неверного секрета.
var ErrInvalidCredentials = errors.New("invalid login or secret")

type userGetter interface {
	GetUser(ctx context.Context, login string) (models.User, error)
}

type Authenticator struct {
	users userGetter
	cost  int
}

func NewAuthenticator(users userGetter, cost int) *Authenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Authenticator{users: users, cost: cost}
}

func (a *Authenticator) HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), a.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret сравнивает секрет с хешем пользователя.
func CheckSecret(user models.User, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.SecretHash), []byte(secret)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Authenticate возвращает пользователя, если секрет совпал.
func (a *Authenticator) Authenticate(ctx context.Context, login, secret string) (models.User, error) {
	user, err := a.users.GetUser(ctx, login)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if err := CheckSecret(user, secret); err != nil {
		return models.User{}, err
	}
	return user, nil
}
