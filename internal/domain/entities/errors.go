package entities

import "errors"

// Domain errors
var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrCallNotFound         = errors.New("scheduled call not found")
	ErrProcessNotFound      = errors.New("process not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProcessAlreadyLinked = errors.New("process already linked to call")

	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
