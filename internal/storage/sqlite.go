package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/receitaro/receitaro/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		ingredients TEXT,
		tags TEXT,
		category_id TEXT,
		difficulty INTEGER DEFAULT 1,
		prep_time_minutes INTEGER DEFAULT 0,
		rating REAL DEFAULT 0,
		favorite_count INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at);
	CREATE INDEX IF NOT EXISTS idx_recipes_category_id ON recipes(category_id);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT
	);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateRecipe inserts a recipe.
func (s *SQLiteStorage) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	ingredients, tags, err := marshalLists(recipe)
	if err != nil {
		return err
	}

	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recipes (id, title, description, ingredients, tags, category_id,
		 difficulty, prep_time_minutes, rating, favorite_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Title, recipe.Description, ingredients, tags, recipe.CategoryID,
		recipe.Difficulty, recipe.PrepTimeMinutes, recipe.Rating, recipe.FavoriteCount,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	return err
}

// GetRecipe returns a recipe by ID.
func (s *SQLiteStorage) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, ingredients, tags, category_id,
		 difficulty, prep_time_minutes, rating, favorite_count, created_at, updated_at
		 FROM recipes WHERE id = ?`, id)
	recipe, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe not found: %s", id)
	}
	return recipe, err
}

// UpdateRecipe updates an existing recipe.
func (s *SQLiteStorage) UpdateRecipe(ctx context.Context, recipe *models.Recipe) error {
	ingredients, tags, err := marshalLists(recipe)
	if err != nil {
		return err
	}

	recipe.UpdatedAt = time.Now()

	result, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET title = ?, description = ?, ingredients = ?, tags = ?,
		 category_id = ?, difficulty = ?, prep_time_minutes = ?, rating = ?,
		 favorite_count = ?, updated_at = ? WHERE id = ?`,
		recipe.Title, recipe.Description, ingredients, tags,
		recipe.CategoryID, recipe.Difficulty, recipe.PrepTimeMinutes, recipe.Rating,
		recipe.FavoriteCount, recipe.UpdatedAt, recipe.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("recipe not found: %s", recipe.ID)
	}
	return nil
}

// DeleteRecipe removes a recipe by ID.
func (s *SQLiteStorage) DeleteRecipe(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	return err
}

// ListRecipes returns all recipes ordered by creation time. The search engine
// scans this collection; there is no index to query.
func (s *SQLiteStorage) ListRecipes(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, ingredients, tags, category_id,
		 difficulty, prep_time_minutes, rating, favorite_count, created_at, updated_at
		 FROM recipes ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// CountRecipes returns the number of stored recipes.
func (s *SQLiteStorage) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count)
	return count, err
}

// CreateCategory inserts a category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *models.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, parent_id) VALUES (?, ?, ?)`,
		category.ID, category.Name, category.ParentID)
	return err
}

// ListCategories returns all categories.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, parent_id FROM categories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		var parentID sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &parentID); err != nil {
			return nil, err
		}
		c.ParentID = parentID.String
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var recipe models.Recipe
	var ingredients, tags string
	var categoryID sql.NullString

	err := row.Scan(&recipe.ID, &recipe.Title, &recipe.Description, &ingredients, &tags,
		&categoryID, &recipe.Difficulty, &recipe.PrepTimeMinutes, &recipe.Rating,
		&recipe.FavoriteCount, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		return nil, err
	}
	recipe.CategoryID = categoryID.String

	if ingredients != "" {
		if err := json.Unmarshal([]byte(ingredients), &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredients: %w", err)
		}
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &recipe.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	return &recipe, nil
}

func marshalLists(recipe *models.Recipe) (string, string, error) {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	tags, err := json.Marshal(recipe.Tags)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(ingredients), string(tags), nil
}
