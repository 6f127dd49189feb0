package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty slug, assigning a deprecated tag).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a create or alias operation would collide with
// an existing record: duplicate slug, duplicate alias, or an existence
// precondition violated at the store. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnsupported is returned for operations requested against an entity type
// the backend does not yet support (e.g. influencer tagging).
// Handlers should map this to HTTP 501.
var ErrUnsupported = errors.New("unsupported")

// ErrStore is returned when the backing store is unreachable or fails in an
// unexpected way. Not locally recoverable; handlers map it to HTTP 500.
var ErrStore = errors.New("store error")
