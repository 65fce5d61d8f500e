package services

import "errors"

// ErrNotFound is returned when a document does not exist or does not belong
// to the requesting owner. Handlers map it to 404; bulk operations skip it.
var ErrNotFound = errors.New("not found")

// ErrInvalid wraps malformed input: bad ids, unknown priorities, missing
// required fields. Handlers map it to 400.
var ErrInvalid = errors.New("invalid input")
