package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/receitaro/receitaro/internal/config"
	"github.com/receitaro/receitaro/internal/models"
	"github.com/receitaro/receitaro/internal/search"
	"github.com/receitaro/receitaro/internal/storage"
)

func newTestServer(t *testing.T) (*Server, chi.Router) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "recipes.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	searcher := search.NewSearcher(search.NewResultCache())
	s := NewServer(searcher, store, cfg, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/recipes", s.handleCreateRecipe)
	r.Get("/api/v1/recipes/{id}", s.handleGetRecipe)
	r.Put("/api/v1/recipes/{id}", s.handleUpdateRecipe)
	r.Delete("/api/v1/recipes/{id}", s.handleDeleteRecipe)
	r.Get("/api/v1/categories", s.handleListCategories)
	r.Get("/health", s.handleHealth)
	return s, r
}

func seedRecipe(t *testing.T, s *Server, recipe *models.Recipe) {
	t.Helper()
	if err := s.storage.CreateRecipe(context.Background(), recipe); err != nil {
		t.Fatalf("failed to seed recipe: %v", err)
	}
}

func doJSON(t *testing.T, r chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch(t *testing.T) {
	s, r := newTestServer(t)
	// Old timestamps keep the recency boost out of the way so only keyword
	// relevance decides who clears the score floor.
	old := time.Now().AddDate(0, -6, 0)
	seedRecipe(t, s, &models.Recipe{ID: "1", Title: "Bolo de Chocolate", Difficulty: 2, CreatedAt: old})
	seedRecipe(t, s, &models.Recipe{ID: "2", Title: "Salada Verde", Difficulty: 1, CreatedAt: old})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/search?q=bolo+de+chocolate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("Total = %d, want 1", resp.Total)
	}
	if resp.Results[0].Recipe.ID != "1" {
		t.Errorf("top result = %s, want 1", resp.Results[0].Recipe.ID)
	}
	if resp.Query != "bolo de chocolate" {
		t.Errorf("Query = %q", resp.Query)
	}
}

func TestHandleSearch_LimitParam(t *testing.T) {
	s, r := newTestServer(t)
	for _, id := range []string{"1", "2", "3"} {
		seedRecipe(t, s, &models.Recipe{ID: id, Title: "Bolo " + id})
	}

	rec := doJSON(t, r, http.MethodGet, "/api/v1/search?q=bolo&limit=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Total)
	}
}

func TestHandleSearch_InferredFilters(t *testing.T) {
	_, r := newTestServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/v1/search?q=jantar+vegetariano+30+min", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Filters.MaxTimeMinutes != 30 {
		t.Errorf("MaxTimeMinutes = %d, want 30", resp.Filters.MaxTimeMinutes)
	}
	if len(resp.Filters.DietaryTypes) != 1 || resp.Filters.DietaryTypes[0] != "vegetariano" {
		t.Errorf("DietaryTypes = %v", resp.Filters.DietaryTypes)
	}
}

func TestRecipeCRUDEndpoints(t *testing.T) {
	_, r := newTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/recipes", map[string]interface{}{
		"title":       "Pão de Queijo",
		"ingredients": []string{"polvilho", "queijo"},
		"difficulty":  1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Recipe
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created recipe: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created recipe has no ID")
	}

	rec = doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPut, "/api/v1/recipes/"+created.ID, map[string]interface{}{
		"title": "Pão de Queijo Mineiro",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Recipe
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode updated recipe: %v", err)
	}
	if updated.Title != "Pão de Queijo Mineiro" {
		t.Errorf("Title = %s", updated.Title)
	}

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/recipes/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/v1/recipes/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestHandleCreateRecipe_Validation(t *testing.T) {
	_, r := newTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/recipes", map[string]interface{}{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty title status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid body status = %d, want 400", w.Code)
	}
}

func TestMutationInvalidatesSearchCache(t *testing.T) {
	s, r := newTestServer(t)
	seedRecipe(t, s, &models.Recipe{ID: "1", Title: "Bolo Simples"})

	// Warm the cache.
	doJSON(t, r, http.MethodGet, "/api/v1/search?q=bolo", nil)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/recipes", map[string]interface{}{"title": "Bolo Novo"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/v1/search?q=bolo", nil)
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2 (cache must be invalidated on create)", resp.Total)
	}
}

func TestHandleListCategories(t *testing.T) {
	s, r := newTestServer(t)
	if err := s.storage.CreateCategory(context.Background(), &models.Category{ID: "doces", Name: "Doces"}); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	rec := doJSON(t, r, http.MethodGet, "/api/v1/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Categories []*models.Category `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Categories) != 1 || resp.Categories[0].ID != "doces" {
		t.Errorf("categories = %+v", resp.Categories)
	}
}

func TestHandleHealth(t *testing.T) {
	_, r := newTestServer(t)
	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %s", got)
	}
}
