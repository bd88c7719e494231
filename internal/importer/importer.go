// Package importer loads recipes in bulk from JSON and XLSX files into storage.
package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/receitaro/receitaro/internal/models"
	"github.com/receitaro/receitaro/internal/storage"
)

// Importer reads recipe files and upserts their contents into storage.
type Importer struct {
	storage storage.Storage
	logger  *zap.Logger
}

// NewImporter creates an Importer.
func NewImporter(store storage.Storage, logger *zap.Logger) *Importer {
	return &Importer{storage: store, logger: logger}
}

// Import loads recipes from path, dispatching on the file extension.
// Returns the number of recipes imported.
func (i *Importer) Import(ctx context.Context, path string) (int, error) {
	var inputs []*models.RecipeInput
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		inputs, err = ReadJSON(path)
	case ".xlsx":
		inputs, err = ReadXLSX(path)
	default:
		return 0, fmt.Errorf("unsupported recipe file: %s", path)
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, input := range inputs {
		if input == nil || input.Title == "" {
			continue
		}
		recipe := FromInput(input)
		if err := i.upsert(ctx, recipe); err != nil {
			i.logger.Warn("failed to import recipe",
				zap.String("title", recipe.Title), zap.Error(err))
			continue
		}
		count++
	}
	i.logger.Info("recipes imported", zap.String("path", path), zap.Int("count", count))
	return count, nil
}

func (i *Importer) upsert(ctx context.Context, recipe *models.Recipe) error {
	if _, err := i.storage.GetRecipe(ctx, recipe.ID); err == nil {
		return i.storage.UpdateRecipe(ctx, recipe)
	}
	return i.storage.CreateRecipe(ctx, recipe)
}

// FromInput converts a RecipeInput to a Recipe, assigning an ID when missing
// and clamping difficulty into the 1-3 range.
func FromInput(input *models.RecipeInput) *models.Recipe {
	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	difficulty := input.Difficulty
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 3 {
		difficulty = 3
	}
	return &models.Recipe{
		ID:              id,
		Title:           input.Title,
		Description:     input.Description,
		Ingredients:     input.Ingredients,
		Tags:            input.Tags,
		CategoryID:      input.CategoryID,
		Difficulty:      difficulty,
		PrepTimeMinutes: input.PrepTimeMinutes,
		Rating:          input.Rating,
		FavoriteCount:   input.FavoriteCount,
		CreatedAt:       time.Now(),
	}
}
