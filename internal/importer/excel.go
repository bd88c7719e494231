package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/receitaro/receitaro/internal/models"
)

// ReadXLSX reads recipes from the first sheet of an Excel workbook. The first
// row is a header naming the columns; recognized headers are id, title,
// description, ingredients, tags, category_id, difficulty, prep_time_minutes,
// rating, and favorite_count. List cells are ";"-separated.
func ReadXLSX(path string) ([]*models.RecipeInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}

	inputs := make([]*models.RecipeInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		input := &models.RecipeInput{
			ID:              cell(row, columns, "id"),
			Title:           cell(row, columns, "title"),
			Description:     cell(row, columns, "description"),
			Ingredients:     splitList(cell(row, columns, "ingredients")),
			Tags:            splitList(cell(row, columns, "tags")),
			CategoryID:      cell(row, columns, "category_id"),
			Difficulty:      cellInt(row, columns, "difficulty"),
			PrepTimeMinutes: cellInt(row, columns, "prep_time_minutes"),
			Rating:          cellFloat(row, columns, "rating"),
			FavoriteCount:   cellInt(row, columns, "favorite_count"),
		}
		if input.Title == "" {
			continue
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func cell(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellInt(row []string, columns map[string]int, name string) int {
	n, _ := strconv.Atoi(cell(row, columns, name))
	return n
}

func cellFloat(row []string, columns map[string]int, name string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(cell(row, columns, name), ",", "."), 64)
	return v
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
