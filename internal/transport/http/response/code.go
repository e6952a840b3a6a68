package response

import (
	"errors"
	"net/http"

	"healthy-backend/internal/domain"
)

// 业务错误 → HTTP 状态码，按顺序匹配
var statusTable = []struct {
	err    error
	status int
}{
	{domain.ErrDuplicateEmail, http.StatusBadRequest},
	{domain.ErrMissingToken, http.StatusBadRequest},
	{domain.ErrInvalidToken, http.StatusBadRequest},
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrNotFound, http.StatusNotFound},
}

// MsgInternal is the only message a 5xx ever carries.
const MsgInternal = "internal error"

// StatusOf maps err to an HTTP status. Unknown errors are 500.
func StatusOf(err error) int {
	for _, row := range statusTable {
		if errors.Is(err, row.err) {
			return row.status
		}
	}
	return http.StatusInternalServerError
}
