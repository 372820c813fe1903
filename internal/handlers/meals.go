package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
	"github.com/martellev/mealplanner/internal/services"
)

type MealHandler struct {
	planner *services.Planner
}

func NewMealHandler(planner *services.Planner) *MealHandler {
	return &MealHandler{planner: planner}
}

func (handler *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := services.MealFilter{Query: r.URL.Query().Get("q")}
	if course := r.URL.Query().Get("course"); course != "" {
		filter.Course = models.Course(course)
		if !filter.Course.Valid() {
			writeError(w, http.StatusBadRequest, "unknown course")
			return
		}
	}

	meals := handler.planner.FindMeals(filter)
	if meals == nil {
		meals = []models.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (handler *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	meal, err := handler.planner.Meal(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (handler *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var meal models.Meal
	if err := decodeJSON(w, r, &meal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !meal.Course.Valid() {
		writeError(w, http.StatusBadRequest, "course is required")
		return
	}

	created, err := handler.planner.AddMeal(r.Context(), meal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	var meal models.Meal
	if err := decodeJSON(w, r, &meal); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !meal.Course.Valid() {
		writeError(w, http.StatusBadRequest, "course is required")
		return
	}
	meal.ID = id

	updated, err := handler.planner.UpdateMeal(r.Context(), meal)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (handler *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	if err := handler.planner.DeleteMeal(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *MealHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	id, ok := mealIDParam(w, r)
	if !ok {
		return
	}

	var request struct {
		Favorite bool `json:"favorite"`
	}
	if err := decodeJSON(w, r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := handler.planner.SetFavorite(r.Context(), id, request.Favorite)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func mealIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "meal not found")
		return uuid.Nil, false
	}
	return id, true
}
