package configs

import "errors"

// ErrValueNotFound reports that no loaded config file defines the looked-up
// path.
var ErrValueNotFound = errors.New("value not found")
