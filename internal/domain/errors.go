package domain

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
)

var (
	ErrEventFull         = errors.New("event is at full capacity")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventNotApproved  = errors.New("event is not available for registration")
)

var (
	ErrEmailTaken = errors.New("email already exists")
)

var (
	ErrValidation = errors.New("validation error")
)
