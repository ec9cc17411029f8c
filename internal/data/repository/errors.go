package repository

import "errors"

// ErrNoRows is returned by updates and deletes that matched no row. Lookups
// return a nil entity instead.
var ErrNoRows = errors.New("no rows affected")
