// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings.
package repository

import "errors"

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as reserving a locker whose status is no
// longer AVAILABLE. Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
