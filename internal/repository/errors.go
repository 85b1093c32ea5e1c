package repository

import "errors"

var (
	ErrNotFound       = errors.New("entity not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUpdateFailed   = errors.New("update failed")
	ErrDeleteFailed   = errors.New("delete failed")
)
