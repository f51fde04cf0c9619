// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumericRun matches one or more consecutive characters that are
// neither a lowercase letter nor a digit. Each run collapses to one hyphen.
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Generate is deterministic and makes no uniqueness promise; callers must
// check for collisions before persisting. An empty input yields an empty
// slug, which callers should reject when a slug is required.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumericRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
