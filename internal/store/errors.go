// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer. Each aggregate gets its
// own store struct around a shared *sql.DB pool; all SQL lives here.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup, update, or delete targets a
	// row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSlugExists is returned when a create or update would produce a
	// slug already taken by another row of the same table.
	ErrSlugExists = errors.New("slug already exists")
)

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505). Slug collisions are pre-checked before every
// write, but two concurrent writers can both pass the check; the unique
// index is the real guarantee, and this maps its rejection back to
// ErrSlugExists so racing callers see the same error as sequential ones.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
