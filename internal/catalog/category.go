// Package catalog provides category-hierarchy traversal and advisory filter
// application over recipe collections. These run before or after the search
// engine; the engine itself never enforces them.
package catalog

import "github.com/receitaro/receitaro/internal/models"

// Tree is a category hierarchy indexed by ID.
type Tree struct {
	byID map[string]*models.Category
}

// NewTree builds a Tree from a flat category list.
func NewTree(categories []*models.Category) *Tree {
	byID := make(map[string]*models.Category, len(categories))
	for _, c := range categories {
		if c != nil && c.ID != "" {
			byID[c.ID] = c
		}
	}
	return &Tree{byID: byID}
}

// Get returns the category with the given ID, if present.
func (t *Tree) Get(id string) (*models.Category, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// IsWithin reports whether categoryID equals ancestorID or descends from it.
// Walks parent links with a visit guard against malformed cycles.
func (t *Tree) IsWithin(categoryID, ancestorID string) bool {
	if categoryID == "" || ancestorID == "" {
		return false
	}
	visited := make(map[string]struct{})
	for id := categoryID; id != ""; {
		if id == ancestorID {
			return true
		}
		if _, seen := visited[id]; seen {
			return false
		}
		visited[id] = struct{}{}
		c, ok := t.byID[id]
		if !ok {
			return false
		}
		id = c.ParentID
	}
	return false
}

// Subtree returns the IDs of rootID and all its descendants.
func (t *Tree) Subtree(rootID string) []string {
	if _, ok := t.byID[rootID]; !ok {
		return nil
	}
	ids := []string{rootID}
	for _, c := range t.byID {
		if c.ID != rootID && t.IsWithin(c.ID, rootID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// FilterByCategory keeps recipes whose category is categoryID or one of its
// descendants. An empty categoryID keeps everything.
func (t *Tree) FilterByCategory(recipes []*models.Recipe, categoryID string) []*models.Recipe {
	if categoryID == "" {
		return recipes
	}
	filtered := make([]*models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r == nil {
			continue
		}
		if t.IsWithin(r.CategoryID, categoryID) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
