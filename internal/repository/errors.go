// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that a document with the requested id
// does not exist, while ErrDuplicateName signals that a unique index
// rejected an insert or update.
package repository

import "errors"

// ErrNotFound is returned when a document cannot be located by id or by
// another unique criterion. Handlers translate this into an HTTP 404
// response carrying the requested id.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName is returned when the unique index on bootcamp names
// rejects a write. Handlers translate this into an HTTP 400 response.
var ErrDuplicateName = errors.New("duplicate name")

// ErrEmailExists is returned when the unique index on user emails rejects
// a write. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")
