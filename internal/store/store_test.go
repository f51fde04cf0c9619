// store_test.go provides shared test infrastructure for store integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ratanlodhi/Multi-User-Blogging-Platform/internal/database"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanPost deletes a post by slug; associations cascade.
func cleanPost(t *testing.T, db *sql.DB, slug string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM posts WHERE slug = $1", slug); err != nil {
		t.Errorf("clean post %q: %v", slug, err)
	}
}

// cleanCategory deletes a category by slug; associations cascade.
func cleanCategory(t *testing.T, db *sql.DB, slug string) {
	t.Helper()
	if _, err := db.Exec("DELETE FROM categories WHERE slug = $1", slug); err != nil {
		t.Errorf("clean category %q: %v", slug, err)
	}
}
