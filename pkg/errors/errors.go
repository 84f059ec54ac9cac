package errors

import (
	"errors"
	"net/http"
)

// 错误码（对外响应中的 error 字段）
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeDuplicate     = "DUPLICATE"
	CodeHasRelations  = "HAS_RELATIONS"
	CodeWeekLocked    = "WEEK_LOCKED"
	CodeAlreadyClosed = "ALREADY_CLOSED"
	CodeAlreadyOpen   = "ALREADY_OPEN"
	CodeCopyError     = "COPY_ERROR"
	CodeTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError 携带 HTTP 状态码与错误码的业务错误
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// New 创建 AppError
func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// Wrap 以 cause 为底层错误创建 AppError
func Wrap(cause error, status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: cause}
}

// ── 常见快捷方式 ──

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, CodeValidation, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func Duplicate(message string) *AppError {
	return New(http.StatusBadRequest, CodeDuplicate, message)
}

func HasRelations(message string) *AppError {
	return New(http.StatusBadRequest, CodeHasRelations, message)
}

func WeekLocked(message string) *AppError {
	return New(http.StatusForbidden, CodeWeekLocked, message)
}

// As 提取错误链中的 AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
