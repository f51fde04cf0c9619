// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, description, slug, created_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category and returns it. The slug must already be
// resolved by the caller; Create fails with ErrSlugExists when it is taken.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, c.Slug).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check category slug: %w", err)
	}
	if exists {
		return nil, ErrSlugExists
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.Slug,
	)
	result, err := scanCategory(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// List returns all categories ordered by creation time, most recent first.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns ErrNotFound if no row matches.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns ErrNotFound if no row matches.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// CategoryUpdate describes a partial category update. Nil pointer fields are
// left unchanged. SetDescription marks the description as present in the
// request, so "description omitted" and "description explicitly cleared"
// (SetDescription true, Description nil) stay distinguishable.
type CategoryUpdate struct {
	Name           *string
	Slug           *string
	Description    *string
	SetDescription bool
}

// Update applies a partial update to a category and returns the updated row.
// Supplying a slug that belongs to a different category fails with
// ErrSlugExists; a missing id fails with ErrNotFound. The read-modify-write
// cycle runs in one transaction with the row locked.
func (s *CategoryStore) Update(id uuid.UUID, upd CategoryUpdate) (*models.Category, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category for update: %w", err)
	}

	if upd.Slug != nil && *upd.Slug != c.Slug {
		var otherID uuid.UUID
		err := tx.QueryRow(`SELECT id FROM categories WHERE slug = $1`, *upd.Slug).Scan(&otherID)
		if err == nil {
			return nil, ErrSlugExists
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("check category slug: %w", err)
		}
		c.Slug = *upd.Slug
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.SetDescription {
		c.Description = upd.Description
	}

	_, err = tx.Exec(`
		UPDATE categories SET name = $1, description = $2, slug = $3
		WHERE id = $4
	`, c.Name, c.Description, c.Slug, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit category update: %w", err)
	}
	return c, nil
}

// Delete removes a category by ID. Associations to posts are removed by the
// ON DELETE CASCADE foreign key. Returns ErrNotFound if no row matched.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
