package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrReferenced indicates that a resource cannot be removed because other records still reference it.
var ErrReferenced = errors.New("resource is referenced by other records")

// ErrInternal indicates an unexpected failure inside the application or its storage layer.
var ErrInternal = errors.New("internal error")
