package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUserDoesNotExist    = errors.New("user does not exist")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrSessionDoesNotExist = errors.New("session does not exist")
)
