package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"encryption-service/internal/models"
	"encryption-service/internal/pkg/serviceerrors"
	"encryption-service/internal/service"
)

type cipherService interface {
	CreateUser(ctx context.Context, login, secret string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListMethods(ctx context.Context) ([]models.Method, error)
	CreateSession(ctx context.Context, req service.CreateSession) (models.Session, error)
	GetSession(ctx context.Context, id int) (models.Session, error)
	DeleteSession(ctx context.Context, id int, secret string) error
	ListSessions(ctx context.Context) ([]models.Session, error)
}

type Implementation struct {
	s cipherService
}

func New(s cipherService) *Implementation {
	return &Implementation{s: s}
}

type message struct {
	Message string `json:"message"`
}

type createUserRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
}

type user struct {
	Login string `json:"login"`
}

type createSessionRequest struct {
	UserLogin string          `json:"user_login"`
	Secret    string          `json:"secret"`
	MethodID  int             `json:"method_id"`
	Text      string          `json:"text"`
	Params    json.RawMessage `json:"params"`
	Action    string          `json:"action"`
}

type deleteSessionRequest struct {
	Secret string `json:"secret"`
}

// CreateUser POST /users — регистрация пользователя
func (i *Implementation) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := i.s.CreateUser(ctx, req.Login, req.Secret); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, message{Message: "user created successfully"})
}

// ListUsers GET /users — логины всех пользователей, секреты не отдаются
func (i *Implementation) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := i.s.ListUsers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	transportUsers := make([]user, 0, len(users))
	for _, u := range users {
		transportUsers = append(transportUsers, user{Login: u.Login})
	}

	writeJSON(ctx, w, http.StatusOK, transportUsers)
}

// ListMethods GET /methods
func (i *Implementation) ListMethods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	methods, err := i.s.ListMethods(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, methods)
}

// CreateSession POST /sessions — шифрование или расшифровка текста
func (i *Implementation) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSessionRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := i.s.CreateSession(ctx, service.CreateSession{
		UserLogin: req.UserLogin,
		Secret:    req.Secret,
		MethodID:  req.MethodID,
		Text:      req.Text,
		Params:    req.Params,
		Action:    req.Action,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, session)
}

// GetSession GET /sessions/{id}
func (i *Implementation) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := sessionID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := i.s.GetSession(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, session)
}

// DeleteSession DELETE /sessions/{id} — удаление сессии владельцем
func (i *Implementation) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := sessionID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req deleteSessionRequest
	if err = decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err = i.s.DeleteSession(ctx, id, req.Secret); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, message{Message: "session deleted"})
}

// ListSessions GET /sessions/all — все сессии без фильтрации и пагинации
func (i *Implementation) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, err := i.s.ListSessions(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, sessions)
}

func sessionID(r *http.Request) (int, error) {
	// только цифры: "+1" и "-1" дают 404
	id, err := strconv.ParseUint(chi.URLParam(r, sessionIDParam), 10, strconv.IntSize-1)
	if err != nil {
		return 0, serviceerrors.NewNotFound("session not found").Wrap(err, "session id is not an integer")
	}
	return int(id), nil
}

// decodeBody читает JSON из тела запроса. При allowEmpty пустое тело даёт
// нулевое значение.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	if err != nil {
		return serviceerrors.NewBadRequest().Wrap(err, "invalid request body")
	}
	return nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(ContentType, ApplicationJSONType)
	w.WriteHeader(code)
	if _, err = w.Write(body); err != nil {
		serviceerrors.NewAppError(err).Wrap(err, "failed to write response").LogServerError(ctx)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := serviceerrors.AppErrorFromError(err).LogServerError(ctx)

	w.Header().Set(ContentType, ApplicationJSONType)
	w.WriteHeader(appErr.Code)
	_, _ = w.Write([]byte(appErr.String()))
}
