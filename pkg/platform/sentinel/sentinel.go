package sentinel

import "errors"

// ErrNotFound is returned (optionally wrapped) by stores when an entity does
// not exist. Services translate it into a domain not_found error.
//
// For validation errors use pkg/domain-errors directly.
var ErrNotFound = errors.New("not found")
