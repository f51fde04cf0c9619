// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain types shared by the store and handler
// layers: posts, categories, and their association shapes.
package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Valid reports whether the status is one of the two known states.
func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// Post represents a single content entry. Content holds raw Markdown source;
// rendering is the consumer's concern.
type Post struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Slug      string     `json:"slug"`
	Status    PostStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CategoryRef is the trimmed category shape embedded in post responses.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// PostWithCategories is a post joined with its full category references.
// Returned by slug lookups, where consumers render category links.
type PostWithCategories struct {
	Post
	Categories []CategoryRef `json:"categories"`
}

// PostWithCategoryIDs is a post plus only its associated category IDs.
// Returned by ID lookups, where consumers (edit forms) match IDs against
// a separately fetched category list.
type PostWithCategoryIDs struct {
	Post
	CategoryIDs []uuid.UUID `json:"categoryIds"`
}
