package database

import "errors"

// ErrNotFound is returned by repository writes that matched no document.
// Reads return (nil, nil) instead.
var ErrNotFound = errors.New("document not found")
