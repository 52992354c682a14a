// Package handler implements the HTTP endpoints of the rental store
// API. Each resource gets a handler struct holding the stores it needs;
// stores are consumed as narrow interfaces so tests can substitute
// function-field mocks.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID parses the :id path parameter. A malformed or non-positive id
// is reported as an error; resource routes answer it with 404 because a
// garbage id can never name an existing record.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}
