// Package apperr defines the error kinds the API distinguishes and the fixed
// table that maps them onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"

	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

var (
	// ErrBadRequest marks missing or malformed required input.
	ErrBadRequest = errors.New(httperrors.MsgBadRequest)
	// ErrNotFound marks an empty result page or a missing question/category.
	ErrNotFound = errors.New(httperrors.MsgNotFound)
	// ErrUnprocessable marks failed create validation or a storage failure
	// during create, delete or category lookup.
	ErrUnprocessable = errors.New(httperrors.MsgUnprocessable)
)

var statusTable = []struct {
	kind    error
	status  int
	message string
}{
	{ErrBadRequest, http.StatusBadRequest, httperrors.MsgBadRequest},
	{ErrNotFound, http.StatusNotFound, httperrors.MsgNotFound},
	{ErrUnprocessable, http.StatusUnprocessableEntity, httperrors.MsgUnprocessable},
}

// Status returns the HTTP status for err and the public message to send with
// it. Errors that carry no kind map to 500.
func Status(err error) (int, string) {
	for _, row := range statusTable {
		if errors.Is(err, row.kind) {
			return row.status, row.message
		}
	}
	return http.StatusInternalServerError, httperrors.MsgInternalError
}
