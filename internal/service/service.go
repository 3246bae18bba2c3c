package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"encryption-service/internal/auth"
	"encryption-service/internal/cipher"
	"encryption-service/internal/models"
	"encryption-service/internal/pkg/logger"
	"encryption-service/internal/pkg/serviceerrors"
	"encryption-service/internal/storage"
)

const (
	ActionEncrypt = "encrypt"
	ActionDecrypt = "decrypt"

	minCredentialLen = 3
	maxCredentialLen = 10
)

type Implementation struct {
	store storage.Store
	auth  *auth.Authenticator
	now   func() time.Time
}

func New(store storage.Store, secretCost int) *Implementation {
	return &Implementation{
		store: store,
		auth:  auth.NewAuthenticator(store, secretCost),
		now:   time.Now,
	}
}

// CreateUser registers login (stored uppercased) with secret.
func (i *Implementation) CreateUser(ctx context.Context, login, secret string) error {
	login = cipher.Upper(login)
	if !validLength(login) || !validLength(secret) {
		return serviceerrors.NewValidation("login and secret must be 3 to 10 characters long")
	}

	hash, err := i.auth.HashSecret(secret)
	if err != nil {
		return serviceerrors.NewAppError(err).Wrap(err, "failed to hash secret")
	}

	err = i.store.AddUser(ctx, models.User{Login: login, SecretHash: hash})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return serviceerrors.NewConflict("user already exists")
	}
	if err != nil {
		return serviceerrors.NewAppError(err).Wrap(err, "failed to add user")
	}

	logger.Infof(ctx, "user %s registered", login)
	return nil
}

func validLength(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minCredentialLen && n <= maxCredentialLen
}

func (i *Implementation) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := i.store.ListUsers(ctx)
	if err != nil {
		return nil, serviceerrors.NewAppError(err).Wrap(err, "failed to list users")
	}
	return users, nil
}

func (i *Implementation) ListMethods(ctx context.Context) ([]models.Method, error) {
	methods, err := i.store.ListMethods(ctx)
	if err != nil {
		return nil, serviceerrors.NewAppError(err).Wrap(err, "failed to list methods")
	}
	return methods, nil
}

type CreateSession struct {
	UserLogin string
	Secret    string
	MethodID  int
	Text      string
	Params    json.RawMessage
	Action    string
}

// CreateSession authenticates the user, runs the cipher and records the
// operation. Checks run in order: credentials, method, action, params.
func (i *Implementation) CreateSession(ctx context.Context, req CreateSession) (models.Session, error) {
	user, err := i.auth.Authenticate(ctx, cipher.Upper(req.UserLogin), req.Secret)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return models.Session{}, serviceerrors.NewAuthorization()
	}
	if err != nil {
		return models.Session{}, serviceerrors.NewAppError(err).Wrap(err, "failed to get user")
	}

	if _, err = i.store.GetMethod(ctx, req.MethodID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Session{}, serviceerrors.NewValidation("invalid method id")
		}
		return models.Session{}, serviceerrors.NewAppError(err).Wrap(err, "failed to get method")
	}

	action := req.Action
	if action == "" {
		action = ActionEncrypt
	}
	if action != ActionEncrypt && action != ActionDecrypt {
		return models.Session{}, serviceerrors.NewValidation("invalid action, must be 'encrypt' or 'decrypt'")
	}

	text := cipher.Upper(req.Text)

	rawParams, err := DecodeParams(req.Params)
	if err != nil {
		return models.Session{}, serviceerrors.NewValidation(err.Error())
	}
	params, err := ParseParams(req.MethodID, rawParams)
	if err != nil {
		return models.Session{}, serviceerrors.NewValidation(err.Error())
	}

	start := time.Now()
	out, err := params.Apply(text, action == ActionEncrypt)
	timeOp := time.Since(start).Seconds()
	if err != nil {
		return models.Session{}, serviceerrors.NewValidation(err.Error())
	}

	session, err := i.store.AddSession(ctx, models.Session{
		UserID:    user.Login,
		MethodID:  params.methodID(),
		DataIn:    text,
		Params:    rawParams,
		DataOut:   out,
		Status:    models.StatusCompleted,
		CreatedAt: i.now(),
		TimeOp:    timeOp,
	})
	if err != nil {
		return models.Session{}, serviceerrors.NewAppError(err).Wrap(err, "failed to add session")
	}

	logger.Debugf(ctx, "session %d: method %d, action %s, time_op %fs",
		session.ID, session.MethodID, action, session.TimeOp)
	return session, nil
}

func (i *Implementation) GetSession(ctx context.Context, id int) (models.Session, error) {
	session, err := i.store.GetSession(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Session{}, serviceerrors.NewNotFound("session not found")
	}
	if err != nil {
		return models.Session{}, serviceerrors.NewAppError(err).Wrap(err, "failed to get session")
	}
	return session, nil
}

// DeleteSession removes session id if secret belongs to its owner.
func (i *Implementation) DeleteSession(ctx context.Context, id int, secret string) error {
	session, err := i.GetSession(ctx, id)
	if err != nil {
		return err
	}

	owner, err := i.store.GetUser(ctx, session.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return serviceerrors.NewAppError(err).Wrap(err, "failed to get session owner")
	}
	if err != nil || auth.CheckSecret(owner, secret) != nil {
		return serviceerrors.NewValidation("invalid secret")
	}

	err = i.store.DeleteSession(ctx, session.Seq)
	if errors.Is(err, storage.ErrNotFound) {
		return serviceerrors.NewNotFound("session not found")
	}
	if err != nil {
		return serviceerrors.NewAppError(err).Wrap(err, "failed to delete session")
	}

	logger.Infof(ctx, "session %d deleted by %s", id, owner.Login)
	return nil
}

func (i *Implementation) ListSessions(ctx context.Context) ([]models.Session, error) {
	sessions, err := i.store.ListSessions(ctx)
	if err != nil {
		return nil, serviceerrors.NewAppError(err).Wrap(err, "failed to list sessions")
	}
	return sessions, nil
}
