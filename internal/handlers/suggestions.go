package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/martellev/mealplanner/internal/models"
	"github.com/martellev/mealplanner/internal/services"
)

type SuggestionHandler struct {
	planner *services.Planner
}

func NewSuggestionHandler(planner *services.Planner) *SuggestionHandler {
	return &SuggestionHandler{planner: planner}
}

// List returns the ranked suggestions for a course. limit only trims the
// response; explain=true includes the score breakdown.
func (handler *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	course := models.Course(chi.URLParam(r, "course"))
	if !course.Valid() {
		writeError(w, http.StatusNotFound, "unknown course")
		return
	}

	limit, err := parseLimit(r, 0, 1000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Query().Get("explain") == "true" {
		scored := handler.planner.ScoredSuggestions(course)
		writeJSON(w, http.StatusOK, truncate(scored, limit))
		return
	}
	writeJSON(w, http.StatusOK, truncate(handler.planner.Suggest(course), limit))
}

func truncate[T any](values []T, limit int) []T {
	if limit > 0 && len(values) > limit {
		return values[:limit]
	}
	return values
}
