// Package repository implements MySQL persistence for the rental store.
// Sentinel errors declared here let handlers translate store failures
// into HTTP statuses without inspecting SQL details. Missing rows are
// reported as sql.ErrNoRows straight from database/sql.
package repository

import "errors"

// ErrEmailExists is returned when a user registration collides with the
// unique email index. Handlers translate it into HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrOutOfStock is returned when a rental cannot be opened because the
// movie either does not exist or has no copies left. The two causes are
// deliberately indistinguishable, matching the conditional decrement
// that guards the stock invariant. Handlers translate it into HTTP 400.
var ErrOutOfStock = errors.New("movie not in stock or invalid movie")

// ErrAlreadyReturned is returned when a return is attempted on a rental
// whose DateReturned is already set. Closed rentals are never reopened.
// Handlers translate it into HTTP 400.
var ErrAlreadyReturned = errors.New("rental already processed")
