package serviceerrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"encryption-service/internal/pkg/logger"
)

type AppError struct {
	Msg         string `json:"message"`
	Code        int    `json:"-"`
	Base        error  `json:"-"`
	Description string `json:"description,omitempty"`
}

func NewBadRequest() *AppError {
	return &AppError{"bad request", http.StatusBadRequest, nil, ""}
}

func NewValidation(msg string) *AppError {
	return &AppError{msg, http.StatusBadRequest, nil, ""}
}

// NewAuthorization одно сообщение на любую ошибку логина или секрета.
func NewAuthorization() *AppError {
	return &AppError{"invalid user login or secret", http.StatusBadRequest, nil, ""}
}

func NewConflict(msg string) *AppError {
	return &AppError{msg, http.StatusBadRequest, nil, ""}
}

func NewNotFound(msg string) *AppError {
	return &AppError{msg, http.StatusNotFound, nil, ""}
}

func NewAppError(err error) *AppError {
	return &AppError{"internal error", http.StatusInternalServerError, err, ""}
}

func AppErrorFromError(inputError error) *AppError {
	var appErr *AppError
	ok := errors.As(inputError, &appErr)
	if !ok {
		return NewAppError(inputError)
	}
	return appErr
}

func (err *AppError) IsInternalError() bool {
	return err.Code/100 == 5
}

func (err *AppError) Wrap(baseErr error, desc string) *AppError {
	err.Base = baseErr
	err.Description = desc
	return err
}

func (err *AppError) Is(target error) bool {
	var targetAppErr *AppError
	if !errors.As(target, &targetAppErr) {
		return target == err.Base
	}
	return targetAppErr.Code == err.Code && targetAppErr.Msg == err.Msg
}

func (err *AppError) Unwrap() error {
	return err.Base
}

func (err *AppError) LogServerError(ctx context.Context) *AppError {
	if err.IsInternalError() {
		logger.Errorf(ctx, "%d %s %v", err.Code, err.Description, err.Base)
	}

	return err
}

func (err *AppError) Error() string {
	return err.Msg
}

func (err *AppError) String() string {
	errBuffer, er := json.Marshal(err)
	if er != nil {
		panic(er)
	}
	return string(errBuffer)
}
