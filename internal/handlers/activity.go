package handlers

import (
	"log/slog"
	"net/http"

	"github.com/martellev/mealplanner/internal/models"
	"github.com/martellev/mealplanner/internal/repository"
)

type ActivityHandler struct {
	activityRepo repository.ActivityRepository
}

func NewActivityHandler(activityRepo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

func (handler *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, 20, 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := handler.activityRepo.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("finding recent activity", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	if entries == nil {
		entries = []models.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
