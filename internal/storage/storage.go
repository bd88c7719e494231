// Package storage defines the persistence interface for recipes and categories.
package storage

import (
	"context"

	"github.com/receitaro/receitaro/internal/models"
)

// Storage defines recipe and category persistence operations.
type Storage interface {
	// Recipe operations
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe *models.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	ListRecipes(ctx context.Context) ([]*models.Recipe, error)
	CountRecipes(ctx context.Context) (int64, error)

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]*models.Category, error)

	Close() error
}
