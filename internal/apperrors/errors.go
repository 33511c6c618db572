package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrTransient indicates a transient failure (e.g. repeated row-lock conflicts);
// the whole operation is safe to retry.
var ErrTransient = errors.New("transient failure, retry the operation")

// ErrNoBaseCurrency indicates that the tenant has no base currency configured.
// This is a hard configuration error, not a fallback case.
var ErrNoBaseCurrency = errors.New("no base currency configured for tenant")

// ErrNoTenant indicates that an operation was invoked without a tenant in scope.
var ErrNoTenant = errors.New("no tenant in scope")
