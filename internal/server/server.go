package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/martellev/mealplanner/internal/config"
	"github.com/martellev/mealplanner/internal/handlers"
	"github.com/martellev/mealplanner/internal/middleware"
	"github.com/martellev/mealplanner/internal/repository"
	"github.com/martellev/mealplanner/internal/services"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(planner *services.Planner, activityRepo repository.ActivityRepository, cfg config.Config) *Server {
	mealHandler := handlers.NewMealHandler(planner)
	profileHandler := handlers.NewProfileHandler(planner)
	suggestionHandler := handlers.NewSuggestionHandler(planner)
	planHandler := handlers.NewPlanHandler(planner)
	imageHandler := handlers.NewImageHandler(planner)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	icalHandler := handlers.NewICalHandler(planner)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAPIToken(cfg.APIToken))

		r.Get("/ical", icalHandler.Feed)
		r.Get("/images/{handle}", imageHandler.Serve)

		r.Get("/api/meals", mealHandler.List)
		r.Post("/api/meals", mealHandler.Create)
		r.Get("/api/meals/{id}", mealHandler.Get)
		r.Put("/api/meals/{id}", mealHandler.Update)
		r.Delete("/api/meals/{id}", mealHandler.Delete)
		r.Post("/api/meals/{id}/favorite", mealHandler.Favorite)

		r.Get("/api/profile", profileHandler.Get)
		r.Put("/api/profile", profileHandler.Update)

		r.Get("/api/suggestions/{course}", suggestionHandler.List)

		r.Get("/api/plans", planHandler.List)
		r.Get("/api/plans/day", planHandler.Day)
		r.Get("/api/plans/week", planHandler.Week)
		r.Put("/api/plans", planHandler.Save)

		r.Post("/api/images", imageHandler.Upload)

		r.Get("/api/activity", activityHandler.Recent)
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
