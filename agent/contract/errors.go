package contract

import "errors"

var (
	ErrModelInvoke = errors.New("backend generate failed")
	ErrPersistence = errors.New("contact log write failed")
	ErrValidation  = errors.New("validation failed")
)
