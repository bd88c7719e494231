// Package models defines core data structures for recipes, categories, queries, and search results.
package models

import "time"

// Recipe represents a stored recipe with its catalog metadata.
type Recipe struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Ingredients     []string  `json:"ingredients" db:"ingredients"`
	Tags            []string  `json:"tags" db:"tags"`
	CategoryID      string    `json:"category_id,omitempty" db:"category_id"`
	Difficulty      int       `json:"difficulty" db:"difficulty"`
	PrepTimeMinutes int       `json:"prep_time_minutes" db:"prep_time_minutes"`
	Rating          float64   `json:"rating" db:"rating"`
	FavoriteCount   int       `json:"favorite_count" db:"favorite_count"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Popularity returns the recipe's popularity signal normalized to [0, 1],
// derived from the average rating (0-5 scale).
func (r *Recipe) Popularity() float64 {
	p := r.Rating / 5.0
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// RecipeInput is the input for creating or updating a recipe.
type RecipeInput struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Ingredients     []string `json:"ingredients,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	CategoryID      string   `json:"category_id,omitempty"`
	Difficulty      int      `json:"difficulty,omitempty"`
	PrepTimeMinutes int      `json:"prep_time_minutes,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	FavoriteCount   int      `json:"favorite_count,omitempty"`
}

// Category is a node in the recipe category hierarchy.
type Category struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	ParentID string `json:"parent_id,omitempty" db:"parent_id"`
}
