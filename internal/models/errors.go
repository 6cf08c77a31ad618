package models

import (
	"errors"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrDuplicate   = errors.New("duplicate slug")
	ErrHasChildren = errors.New("category has subcategories")
)
