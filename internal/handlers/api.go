// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the blogging platform's
// JSON API. One endpoint corresponds to one logical operation; every
// request payload is checked against its input contract before any
// database access.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/cache"
	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/store"
)

// User-visible messages for the common failure modes.
const (
	msgPostNotFound      = "Post not found."
	msgCategoryNotFound  = "Category not found."
	msgPostSlugTaken     = "A post with this slug already exists."
	msgCategorySlugTaken = "A category with this slug already exists."
	msgInternalError     = "Internal server error."
)

// API groups the remote-procedure handlers for posts and categories.
type API struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	postCache  *cache.PostCache // nil disables caching
	validate   *validator.Validate
}

// NewAPI creates the API handler group. postCache may be nil when Valkey
// is not configured.
func NewAPI(posts *store.PostStore, categories *store.CategoryStore, postCache *cache.PostCache) *API {
	v := validator.New()
	// Report field names by their JSON tags so validation messages match
	// the wire format the caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &API{posts: posts, categories: categories, postCache: postCache, validate: v}
}

// successResponse acknowledges a delete.
type successResponse struct {
	Success bool `json:"success"`
}

// errorResponse carries a single human-readable message; no structured
// error codes beyond the HTTP status.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeRawJSON writes an already-serialized JSON body.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError writes an errorResponse with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads the request body into dst. Returns false after writing
// a 400 response when the body is malformed, including malformed UUIDs
// inside it.
func (a *API) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// checkInput validates dst's declared contract. Returns false after writing
// a 400 response describing the first violation.
func (a *API) checkInput(w http.ResponseWriter, dst any) bool {
	err := a.validate.Struct(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		writeError(w, http.StatusBadRequest, validationMessage(verrs[0]))
	} else {
		writeError(w, http.StatusBadRequest, "Invalid input.")
	}
	return false
}

// validationMessage renders a single field error as a human-readable message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s is too long (max %s characters).", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", fe.Field(), fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be empty.", fe.Field())
		}
		return fmt.Sprintf("%s must be at least %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid.", fe.Field())
	}
}

// storeError maps store-layer errors to responses. notFound and conflict
// are the entity-specific messages for the two recoverable failure modes;
// anything else surfaces as an opaque 500.
func (a *API) storeError(w http.ResponseWriter, err error, notFound, conflict string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, store.ErrSlugExists):
		writeError(w, http.StatusConflict, conflict)
	default:
		slog.Error("store operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

// parseID extracts and parses the {id} route parameter. Returns false after
// writing a 400 response when the value is not a UUID.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id: must be a UUID.")
		return uuid.Nil, false
	}
	return id, true
}
