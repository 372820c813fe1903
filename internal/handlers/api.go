package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/martellev/mealplanner/internal/services"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps planner errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMealNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrMealNameRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateMeal):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// parseDay reads a YYYY-MM-DD or RFC 3339 value in location. An empty value
// means now.
func parseDay(value string, location *time.Location) (time.Time, error) {
	if value == "" {
		return time.Now().In(location), nil
	}
	if day, err := time.ParseInLocation("2006-01-02", value, location); err == nil {
		return day, nil
	}
	instant, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: expected YYYY-MM-DD", value)
	}
	return instant, nil
}

func parseLimit(r *http.Request, fallback, maximum int) (int, error) {
	value := r.URL.Query().Get("limit")
	if value == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	return min(limit, maximum), nil
}
