// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/models"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/store"
)

// defaultListLimit is the page size applied when the caller omits limit.
const defaultListLimit = 50

type createPostRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Content     string      `json:"content" validate:"required"`
	Slug        *string     `json:"slug"`
	Status      string      `json:"status" validate:"omitempty,oneof=draft published"`
	CategoryIDs []uuid.UUID `json:"categoryIds"`
}

type updatePostRequest struct {
	Title       *string      `json:"title" validate:"omitempty,min=1,max=200"`
	Content     *string      `json:"content" validate:"omitempty,min=1"`
	Slug        *string      `json:"slug"`
	Status      *string      `json:"status" validate:"omitempty,oneof=draft published"`
	CategoryIDs *[]uuid.UUID `json:"categoryIds"`
}

type listPostsRequest struct {
	Status     string     `json:"status" validate:"omitempty,oneof=draft published"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Limit      int        `json:"limit" validate:"min=1,max=100"`
	Offset     int        `json:"offset" validate:"min=0"`
}

// PostCreate handles post creation. The slug derives from the title unless
// supplied; a collision fails with 409. The post row and its category
// associations are written atomically, so a bad categoryId leaves nothing
// behind.
func (a *API) PostCreate(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !a.decodeJSON(w, r, &req) || !a.checkInput(w, &req) {
		return
	}

	status := models.PostStatusDraft
	if req.Status != "" {
		status = models.PostStatus(req.Status)
	}

	postSlug := resolveSlug(req.Slug, req.Title)
	if postSlug == "" {
		writeError(w, http.StatusBadRequest, "title does not produce a usable slug; supply one explicitly.")
		return
	}

	post, err := a.posts.Create(&models.Post{
		Title:   req.Title,
		Content: req.Content,
		Slug:    postSlug,
		Status:  status,
	}, req.CategoryIDs)
	if err != nil {
		a.storeError(w, err, msgPostNotFound, msgPostSlugTaken)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// PostList returns posts ordered by creation time descending, filtered by
// optional status and categoryId query parameters and paginated by
// limit/offset (default 50, max 100).
func (a *API) PostList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := listPostsRequest{Status: q.Get("status"), Limit: defaultListLimit}

	if v := q.Get("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid categoryId: must be a UUID.")
			return
		}
		req.CategoryID = &id
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit: must be an integer.")
			return
		}
		req.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid offset: must be an integer.")
			return
		}
		req.Offset = n
	}
	if !a.checkInput(w, &req) {
		return
	}

	filter := store.PostFilter{
		CategoryID: req.CategoryID,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if req.Status != "" {
		status := models.PostStatus(req.Status)
		filter.Status = &status
	}

	posts, err := a.posts.List(filter)
	if err != nil {
		a.storeError(w, err, msgPostNotFound, msgPostSlugTaken)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// PostGetBySlug returns a post with its full category references. Responses
// are served from the Valkey cache when possible and stored there on miss.
func (a *API) PostGetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if body, ok := a.postCache.Get(ctx, slugParam); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	post, err := a.posts.FindBySlug(slugParam)
	if err != nil {
		a.storeError(w, err, msgPostNotFound, msgPostSlugTaken)
		return
	}

	body, err := json.Marshal(post)
	if err != nil {
		slog.Error("marshal post failed", "error", err, "slug", slugParam)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	a.postCache.Set(ctx, slugParam, body)
	writeRawJSON(w, http.StatusOK, body)
}

// PostGet returns a post with only its associated category IDs, the shape
// edit forms consume.
func (a *API) PostGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	post, err := a.posts.FindByID(id)
	if err != nil {
		a.storeError(w, err, msgPostNotFound, msgPostSlugTaken)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// PostUpdate applies a partial update. A categoryIds field, when present,
// replaces the full association set; an empty list clears it. Cached
// responses for both the old and new slug are invalidated.
func (a *API) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req updatePostRequest
	if !a.decodeJSON(w, r, &req) || !a.checkInput(w, &req) {
		return
	}

	upd := store.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
		Slug:    req.Slug,
	}
	if req.Status != nil {
		status := models.PostStatus(*req.Status)
		upd.Status = &status
	}
	if req.CategoryIDs != nil {
		upd.CategoryIDs = *req.CategoryIDs
	}

	post, prevSlug, err := a.posts.Update(id, upd)
	if err != nil {
		a.storeError(w, err, msgPostNotFound, msgPostSlugTaken)
		return
	}

	a.postCache.Invalidate(r.Context(), prevSlug, post.Slug)
	writeJSON(w, http.StatusOK, post)
}

// PostDelete removes a post; its category associations cascade away.
func (a *API) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	deletedSlug, err := a.posts.Delete(id)
	if err != nil {
		a.storeError(w, err, msgPostNotFound, msgPostSlugTaken)
		return
	}

	a.postCache.Invalidate(r.Context(), deletedSlug)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
