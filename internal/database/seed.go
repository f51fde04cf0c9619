package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// seedCategory is one category row inserted by Seed.
type seedCategory struct {
	name        string
	description string
	slug        string
}

// seedPost is one post row inserted by Seed. categorySlugs names the
// categories the post is linked to.
type seedPost struct {
	title         string
	slug          string
	content       string
	status        string
	categorySlugs []string
}

var seedCategories = []seedCategory{
	{"Technology", "Articles about programming and software development", "technology"},
	{"Travel", "Travel guides, tips, and destination recommendations", "travel"},
	{"Food", "Recipes, restaurant reviews, and culinary adventures", "food"},
	{"Lifestyle", "Tips and insights on living your best life", "lifestyle"},
}

var seedPosts = []seedPost{
	{
		title:  "Building a Blog API in Go",
		slug:   "building-a-blog-api-in-go",
		status: "published",
		content: "# Building a Blog API in Go\n\nGo's standard library and a handful of " +
			"small packages are all you need for a solid HTTP API.\n\n## Why Go?\n\n" +
			"- Fast compile times\n- A single static binary\n- First-class concurrency\n",
		categorySlugs: []string{"technology"},
	},
	{
		title:  "Top 10 Travel Destinations for 2026",
		slug:   "top-10-travel-destinations-2026",
		status: "published",
		content: "# Top 10 Travel Destinations for 2026\n\nFrom quiet coastal towns to " +
			"high mountain passes, here are the places worth planning around this year.\n",
		categorySlugs: []string{"travel"},
	},
	{
		title:  "The Perfect Homemade Pizza Recipe",
		slug:   "perfect-homemade-pizza-recipe",
		status: "published",
		content: "# The Perfect Homemade Pizza\n\nGreat pizza starts with a slow-fermented " +
			"dough. Give it 48 hours in the fridge and the rest takes care of itself.\n",
		categorySlugs: []string{"food"},
	},
	{
		title:  "5 Productivity Hacks for Remote Workers",
		slug:   "5-productivity-hacks-remote-workers",
		status: "published",
		content: "# 5 Productivity Hacks for Remote Workers\n\nWorking from home rewards " +
			"routine. Start with a fixed shutdown time and work backwards.\n",
		categorySlugs: []string{"lifestyle", "technology"},
	},
	{
		title:  "Understanding Database Transactions",
		slug:   "understanding-database-transactions",
		status: "draft",
		content: "# Understanding Database Transactions\n\nA draft exploring isolation " +
			"levels and why read-modify-write cycles need more care than they get.\n",
		categorySlugs: []string{"technology"},
	},
}

// Seed populates the database with sample categories and posts for
// development. It is a no-op when any post already exists, so repeated
// startups do not duplicate data.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count); err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	categoryIDs := make(map[string]uuid.UUID, len(seedCategories))
	for _, c := range seedCategories {
		var id uuid.UUID
		err := db.QueryRow(`
			INSERT INTO categories (name, description, slug)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, c.name, c.description, c.slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.slug, err)
		}
		categoryIDs[c.slug] = id
	}

	for _, p := range seedPosts {
		var postID uuid.UUID
		err := db.QueryRow(`
			INSERT INTO posts (title, content, slug, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, p.title, p.content, p.slug, p.status).Scan(&postID)
		if err != nil {
			return fmt.Errorf("seed insert post %q: %w", p.slug, err)
		}

		for _, cs := range p.categorySlugs {
			if _, err := db.Exec(`
				INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
			`, postID, categoryIDs[cs]); err != nil {
				return fmt.Errorf("seed link post %q to %q: %w", p.slug, cs, err)
			}
		}
	}

	slog.Info("database seeded with sample content",
		"categories", len(seedCategories),
		"posts", len(seedPosts),
	)
	return nil
}
