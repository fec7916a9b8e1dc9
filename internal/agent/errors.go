package agent

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("agent unauthorized")
	ErrConflict            = errors.New("conflict")
	ErrConflictRejected    = errors.New("conflict batch rejected")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	ErrNoSession = errors.New("no stored session")
)

func errorsIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
