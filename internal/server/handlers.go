package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/receitaro/receitaro/internal/importer"
	"github.com/receitaro/receitaro/internal/metrics"
	"github.com/receitaro/receitaro/internal/models"
	"github.com/receitaro/receitaro/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("q")

	opts := search.Options{
		MaxResults: s.config.Search.MaxResults,
		MinScore:   s.config.Search.MinScore,
		Boosts: search.FieldBoosts{
			Title:       s.config.Search.TitleBoost,
			Description: s.config.Search.DescriptionBoost,
			Ingredients: s.config.Search.IngredientsBoost,
			Tags:        s.config.Search.TagsBoost,
		},
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			opts.MaxResults = n
		}
	}
	if minScore := r.URL.Query().Get("min_score"); minScore != "" {
		if v, err := strconv.ParseFloat(minScore, 64); err == nil && v > 0 {
			opts.MinScore = v
		}
	}

	s.logger.Debug("search request", zap.String("query", rawQuery), zap.Int("limit", opts.MaxResults))
	metrics.RecordSearch()

	start := time.Now()
	candidates, err := s.storage.ListRecipes(r.Context())
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	query, results := s.searcher.Search(rawQuery, candidates, opts)

	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Query:       rawQuery,
		Results:     results,
		Total:       len(results),
		QueryTime:   time.Since(start).Milliseconds(),
		Suggestions: query.Suggestions,
		Filters:     query.Filters,
	})
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	recipe := importer.FromInput(&input)
	s.logger.Debug("create recipe request", zap.String("id", recipe.ID), zap.String("title", recipe.Title))
	if err := s.storage.CreateRecipe(r.Context(), recipe); err != nil {
		s.logger.Error("create recipe failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.searcher.InvalidateAll()
	s.respondJSON(w, http.StatusCreated, recipe)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipe, err := s.storage.GetRecipe(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "recipe not found")
		return
	}
	s.respondJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input models.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.ID = id
	recipe := importer.FromInput(&input)
	if existing, err := s.storage.GetRecipe(r.Context(), id); err == nil {
		recipe.CreatedAt = existing.CreatedAt
	}
	s.logger.Debug("update recipe request", zap.String("id", id))
	if err := s.storage.UpdateRecipe(r.Context(), recipe); err != nil {
		s.logger.Error("update recipe failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.searcher.InvalidateAll()
	s.respondJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete recipe request", zap.String("id", id))
	if err := s.storage.DeleteRecipe(r.Context(), id); err != nil {
		s.logger.Error("delete recipe failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.searcher.InvalidateAll()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.storage.ListCategories(r.Context())
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
