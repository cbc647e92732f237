package resource

import "errors"

// ErrResourceNotFound indicates a bundled resource file is missing.
var ErrResourceNotFound = errors.New("resource not found")
