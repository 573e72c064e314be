// Package repository implements the data access layer on top of MySQL.
// This file defines sentinel errors shared across repositories so that
// higher layers can distinguish failure scenarios without string
// matching.  Point lookups report a missing row as a nil record rather
// than an error; the sentinels below cover conflicts that need a
// dedicated response.
package repository

import "errors"

// ErrEmailExists is returned when a user insert or update collides with
// the unique index on users.email.  Handlers translate this into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
