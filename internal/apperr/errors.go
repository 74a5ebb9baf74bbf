// File: internal/apperr/errors.go
package apperr

import "errors"

// 全域錯誤分類，handler 依 errors.Is 對應 HTTP 狀態碼
var (
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("resource already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
)
