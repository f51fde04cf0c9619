// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/models"
)

// PostStore handles all post-related database operations, including the
// many-to-many associations to categories.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, slug, status, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(&p.ID, &p.Title, &p.Content, &p.Slug, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post and its category associations in a single
// transaction, so a failed association insert (for example a categoryID
// that references no category) rolls back the post row as well. Fails with
// ErrSlugExists when the slug is taken.
func (s *PostStore) Create(p *models.Post, categoryIDs []uuid.UUID) (*models.Post, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, p.Slug).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check post slug: %w", err)
	}
	if exists {
		return nil, ErrSlugExists
	}

	row := tx.QueryRow(`
		INSERT INTO posts (title, content, slug, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		p.Title, p.Content, p.Slug, p.Status,
	)
	result, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err := tx.Exec(`
			INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
		`, result.ID, categoryID)
		if err != nil {
			return nil, fmt.Errorf("link post to category %s: %w", categoryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit post create: %w", err)
	}
	return result, nil
}

// PostFilter narrows and paginates List results. Nil Status and CategoryID
// mean "no filter". Limit and Offset are applied as given; the handler layer
// enforces their bounds.
type PostFilter struct {
	Status     *models.PostStatus
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}

// List returns posts ordered by creation time, most recent first. When
// CategoryID is set, matching association rows are looked up first and the
// post query is filtered by that ID set; a category with no posts yields an
// empty result, not an error.
func (s *PostStore) List(f PostFilter) ([]models.Post, error) {
	var postIDs []uuid.UUID
	if f.CategoryID != nil {
		rows, err := s.db.Query(`SELECT post_id FROM post_categories WHERE category_id = $1`, *f.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("list post ids for category: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id uuid.UUID
			if err := rows.Scan(&id); err != nil {
				return nil, fmt.Errorf("scan post id: %w", err)
			}
			postIDs = append(postIDs, id)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("list post ids for category: %w", err)
		}
		if len(postIDs) == 0 {
			return []models.Post{}, nil
		}
	}

	var (
		conds []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(postIDs) > 0 {
		placeholders := make([]string, len(postIDs))
		for i, id := range postIDs {
			args = append(args, id)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, "id IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a post by its slug, joined with its full category
// references. Returns ErrNotFound if no post matches.
func (s *PostStore) FindBySlug(slug string) (*models.PostWithCategories, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY c.name
	`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list post categories: %w", err)
	}
	defer rows.Close()

	result := &models.PostWithCategories{Post: *p, Categories: []models.CategoryRef{}}
	for rows.Next() {
		var ref models.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Slug); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		result.Categories = append(result.Categories, ref)
	}
	return result, rows.Err()
}

// FindByID retrieves a post by ID plus its associated category IDs.
// Returns ErrNotFound if no post matches.
func (s *PostStore) FindByID(id uuid.UUID) (*models.PostWithCategoryIDs, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	rows, err := s.db.Query(`SELECT category_id FROM post_categories WHERE post_id = $1`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list post category ids: %w", err)
	}
	defer rows.Close()

	result := &models.PostWithCategoryIDs{Post: *p, CategoryIDs: []uuid.UUID{}}
	for rows.Next() {
		var categoryID uuid.UUID
		if err := rows.Scan(&categoryID); err != nil {
			return nil, fmt.Errorf("scan post category id: %w", err)
		}
		result.CategoryIDs = append(result.CategoryIDs, categoryID)
	}
	return result, rows.Err()
}

// PostUpdate describes a partial post update. Nil pointer fields are left
// unchanged. CategoryIDs replaces the full association set when non-nil;
// an empty non-nil slice removes every association.
type PostUpdate struct {
	Title       *string
	Content     *string
	Slug        *string
	Status      *models.PostStatus
	CategoryIDs []uuid.UUID
}

// Update applies a partial update to a post, always refreshing updated_at,
// and returns the updated row plus the slug the post had before the update
// (callers use it for cache invalidation). Association replacement and the
// read-modify-write cycle share one transaction, so a failed re-insert
// cannot strand the post with its associations half-replaced. Fails with
// ErrNotFound when no post matches and ErrSlugExists when the new slug
// belongs to a different post.
func (s *PostStore) Update(id uuid.UUID, upd PostUpdate) (*models.Post, string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("find post for update: %w", err)
	}
	prevSlug := p.Slug

	if upd.Slug != nil && *upd.Slug != p.Slug {
		var otherID uuid.UUID
		err := tx.QueryRow(`SELECT id FROM posts WHERE slug = $1`, *upd.Slug).Scan(&otherID)
		if err == nil {
			return nil, "", ErrSlugExists
		}
		if err != sql.ErrNoRows {
			return nil, "", fmt.Errorf("check post slug: %w", err)
		}
		p.Slug = *upd.Slug
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}

	row = tx.QueryRow(`
		UPDATE posts SET
			title = $1, content = $2, slug = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+postColumns,
		p.Title, p.Content, p.Slug, p.Status, p.ID,
	)
	result, err := scanPost(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", ErrSlugExists
		}
		return nil, "", fmt.Errorf("update post: %w", err)
	}

	// Full replace of the association set, not a diff.
	if upd.CategoryIDs != nil {
		if _, err := tx.Exec(`DELETE FROM post_categories WHERE post_id = $1`, id); err != nil {
			return nil, "", fmt.Errorf("clear post categories: %w", err)
		}
		for _, categoryID := range upd.CategoryIDs {
			_, err := tx.Exec(`
				INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
			`, id, categoryID)
			if err != nil {
				return nil, "", fmt.Errorf("link post to category %s: %w", categoryID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit post update: %w", err)
	}
	return result, prevSlug, nil
}

// Delete removes a post by ID and returns the slug it had, for cache
// invalidation. Associations are removed by the ON DELETE CASCADE foreign
// key. Returns ErrNotFound if no row matched.
func (s *PostStore) Delete(id uuid.UUID) (string, error) {
	var slug string
	err := s.db.QueryRow(`DELETE FROM posts WHERE id = $1 RETURNING slug`, id).Scan(&slug)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete post: %w", err)
	}
	return slug, nil
}
