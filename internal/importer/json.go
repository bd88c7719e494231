package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/receitaro/receitaro/internal/models"
)

// ReadJSON reads a JSON file containing an array of recipe inputs.
func ReadJSON(path string) ([]*models.RecipeInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	var inputs []*models.RecipeInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to parse recipe file: %w", err)
	}
	return inputs, nil
}
