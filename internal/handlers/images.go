package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/martellev/mealplanner/internal/services"
)

const maxImageBytes = 10 << 20

type ImageHandler struct {
	planner *services.Planner
}

func NewImageHandler(planner *services.Planner) *ImageHandler {
	return &ImageHandler{planner: planner}
}

func (handler *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "reading image")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "image body is empty")
		return
	}

	handle, err := handler.planner.SaveImage(r.Context(), data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "saving image failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"handle": handle})
}

func (handler *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	location, err := handler.planner.ImageLocation(chi.URLParam(r, "handle"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		http.Redirect(w, r, location, http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, location)
}
