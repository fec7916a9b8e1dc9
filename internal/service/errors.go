package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrUnsupportedConflictEntityType fails a conflict batch that names an
	// entity type outside the handler registry. Nothing is mutated when
	// this error is returned.
	ErrUnsupportedConflictEntityType = errors.New("unsupported conflict entity type")

	ErrNoConflictsProvided = errors.New("no conflicts provided")
)
