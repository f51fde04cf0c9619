// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/models"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/slug"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/store"
)

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
}

type updateCategoryRequest struct {
	Name        *string        `json:"name" validate:"omitempty,min=1,max=100"`
	Description OptionalString `json:"description"`
	Slug        *string        `json:"slug"`
}

// resolveSlug picks the explicitly supplied slug when present, otherwise
// derives one from the fallback text (a title or name).
func resolveSlug(explicit *string, fallback string) string {
	if explicit != nil && *explicit != "" {
		return *explicit
	}
	return slug.Generate(fallback)
}

// CategoryCreate handles category creation. The slug derives from the name
// unless supplied; a collision fails with 409.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !a.decodeJSON(w, r, &req) || !a.checkInput(w, &req) {
		return
	}

	categorySlug := resolveSlug(req.Slug, req.Name)
	if categorySlug == "" {
		writeError(w, http.StatusBadRequest, "name does not produce a usable slug; supply one explicitly.")
		return
	}

	category, err := a.categories.Create(&models.Category{
		Name:        req.Name,
		Description: req.Description,
		Slug:        categorySlug,
	})
	if err != nil {
		a.storeError(w, err, msgCategoryNotFound, msgCategorySlugTaken)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// CategoryList returns all categories, most recently created first.
// Unpaginated; the category set is assumed small.
func (a *API) CategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List()
	if err != nil {
		a.storeError(w, err, msgCategoryNotFound, msgCategorySlugTaken)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CategoryGet returns a single category by ID.
func (a *API) CategoryGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	category, err := a.categories.FindByID(id)
	if err != nil {
		a.storeError(w, err, msgCategoryNotFound, msgCategorySlugTaken)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryGetBySlug returns a single category by slug.
func (a *API) CategoryGetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := a.categories.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		a.storeError(w, err, msgCategoryNotFound, msgCategorySlugTaken)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryUpdate applies a partial update. Because category names and slugs
// are embedded in cached post responses, any successful update clears the
// post cache.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if !a.decodeJSON(w, r, &req) || !a.checkInput(w, &req) {
		return
	}

	category, err := a.categories.Update(id, store.CategoryUpdate{
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description.Value,
		SetDescription: req.Description.Set,
	})
	if err != nil {
		a.storeError(w, err, msgCategoryNotFound, msgCategorySlugTaken)
		return
	}

	a.postCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, category)
}

// CategoryDelete removes a category; its post associations cascade away.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := a.categories.Delete(id); err != nil {
		a.storeError(w, err, msgCategoryNotFound, msgCategorySlugTaken)
		return
	}

	a.postCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
