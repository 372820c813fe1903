package handlers

import (
	"net/http"

	"github.com/martellev/mealplanner/internal/models"
	"github.com/martellev/mealplanner/internal/services"
)

type ProfileHandler struct {
	planner *services.Planner
}

func NewProfileHandler(planner *services.Planner) *ProfileHandler {
	return &ProfileHandler{planner: planner}
}

type profileResponse struct {
	models.UserProfile
	services.Energy
}

func (handler *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile := handler.planner.Profile()
	writeJSON(w, http.StatusOK, profileResponse{UserProfile: profile, Energy: services.ComputeEnergy(profile)})
}

func (handler *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := decodeJSON(w, r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !profile.Sex.Valid() || !profile.Activity.Valid() {
		writeError(w, http.StatusBadRequest, "sex and activity are required")
		return
	}

	saved := handler.planner.SaveProfile(r.Context(), profile)
	writeJSON(w, http.StatusOK, profileResponse{UserProfile: saved, Energy: services.ComputeEnergy(saved)})
}
