package handlers

import (
	"net/http"
	"slices"

	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
	"github.com/martellev/mealplanner/internal/services"
)

type PlanHandler struct {
	planner *services.Planner
}

func NewPlanHandler(planner *services.Planner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

type planRequest struct {
	ID        uuid.UUID  `json:"id"`
	Date      string     `json:"date"`
	Breakfast *uuid.UUID `json:"breakfast"`
	Lunch     *uuid.UUID `json:"lunch"`
	Dinner    *uuid.UUID `json:"dinner"`
	Snack     *uuid.UUID `json:"snack"`
}

func (handler *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	plans := handler.planner.Plans()
	slices.SortStableFunc(plans, func(a, b models.DayPlan) int {
		return a.Date.Compare(b.Date)
	})
	if plans == nil {
		plans = []models.DayPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (handler *PlanHandler) Day(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r.URL.Query().Get("date"), handler.planner.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, handler.planner.ResolvedPlanFor(day))
}

func (handler *PlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	day, err := parseDay(r.URL.Query().Get("date"), handler.planner.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, handler.planner.Week(day))
}

// Save upserts a plan. Meal references are stored as given; ones that do
// not resolve show up as unset.
func (handler *PlanHandler) Save(w http.ResponseWriter, r *http.Request) {
	var request planRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if request.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	day, err := parseDay(request.Date, handler.planner.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan := handler.planner.SavePlan(r.Context(), models.DayPlan{
		ID:        request.ID,
		Date:      day,
		Breakfast: request.Breakfast,
		Lunch:     request.Lunch,
		Dinner:    request.Dinner,
		Snack:     request.Snack,
	})
	writeJSON(w, http.StatusOK, plan)
}
