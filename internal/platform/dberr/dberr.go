// Copyright (c) 2026 Aanchal Alytcs. All rights reserved.
// Author: aanchaluke77@gmail.com

// Package dberr translates PostgreSQL errors into [apperr.AppError] values so
// repositories never leak driver details to handlers.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aanchalalytcs/showcase/internal/platform/apperr"
)

// uniqueViolation is the SQLSTATE of a duplicate key.
const uniqueViolation = "23505"

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap classifies a database error. action names the failed operation in the
// wrapped cause (e.g. "insert_audit_event").
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Conflict("Record already exists")
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
