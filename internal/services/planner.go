package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
)

var (
	ErrMealNotFound     = errors.New("meal not found")
	ErrMealNameRequired = errors.New("meal name is required")
	ErrDuplicateMeal    = errors.New("meal id already exists")
)

// Gateway is the durable side of the planner. Loads never fail: missing or
// unreadable documents come back as seed, default or empty values.
type Gateway interface {
	LoadMeals(ctx context.Context) []models.Meal
	SaveMeals(ctx context.Context, meals []models.Meal) error
	LoadProfile(ctx context.Context) models.UserProfile
	SaveProfile(ctx context.Context, profile models.UserProfile) error
	LoadPlans(ctx context.Context) []models.DayPlan
	SavePlans(ctx context.Context, plans []models.DayPlan) error
	SaveImage(ctx context.Context, data []byte) (string, error)
	ImageLocation(handle string) (string, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, message string) error
}

type MealFilter struct {
	Query  string
	Course models.Course
}

// Planner owns the catalog, profile and plans of one installation. Every
// mutation, including its save, completes before the next one starts. Save
// failures are logged and the in-memory state stays authoritative.
type Planner struct {
	mutex    sync.RWMutex
	gateway  Gateway
	activity ActivityRecorder
	location *time.Location

	meals   []models.Meal
	profile models.UserProfile
	plans   []models.DayPlan
}

func NewPlanner(gateway Gateway, activity ActivityRecorder, location *time.Location) *Planner {
	if location == nil {
		location = time.Local
	}
	return &Planner{
		gateway:  gateway,
		activity: activity,
		location: location,
		profile:  models.DefaultProfile(),
	}
}

func (planner *Planner) Bootstrap(ctx context.Context) {
	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	planner.meals = planner.gateway.LoadMeals(ctx)
	planner.profile = planner.gateway.LoadProfile(ctx)
	planner.plans = planner.gateway.LoadPlans(ctx)
	slog.Info("planner loaded", "meals", len(planner.meals), "plans", len(planner.plans))
}

func (planner *Planner) Location() *time.Location {
	return planner.location
}

func (planner *Planner) Meals() []models.Meal {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return slices.Clone(planner.meals)
}

func (planner *Planner) FindMeals(filter MealFilter) []models.Meal {
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	var found []models.Meal
	for _, meal := range planner.Meals() {
		if query != "" && !strings.Contains(strings.ToLower(meal.Name), query) {
			continue
		}
		if filter.Course != "" && meal.Course != filter.Course {
			continue
		}
		found = append(found, meal)
	}
	return found
}

func (planner *Planner) Meal(id uuid.UUID) (models.Meal, error) {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()

	index := planner.mealIndex(id)
	if index < 0 {
		return models.Meal{}, ErrMealNotFound
	}
	return planner.meals[index], nil
}

func (planner *Planner) AddMeal(ctx context.Context, meal models.Meal) (models.Meal, error) {
	if strings.TrimSpace(meal.Name) == "" {
		return models.Meal{}, ErrMealNameRequired
	}

	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	} else if planner.mealIndex(meal.ID) >= 0 {
		return models.Meal{}, ErrDuplicateMeal
	}

	planner.meals = append(planner.meals, meal)
	planner.saveMeals(ctx)
	planner.record(ctx, "Added meal: "+meal.Name)
	return meal, nil
}

func (planner *Planner) UpdateMeal(ctx context.Context, meal models.Meal) (models.Meal, error) {
	if strings.TrimSpace(meal.Name) == "" {
		return models.Meal{}, ErrMealNameRequired
	}

	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	index := planner.mealIndex(meal.ID)
	if index < 0 {
		return models.Meal{}, ErrMealNotFound
	}

	planner.meals[index] = meal
	planner.saveMeals(ctx)
	planner.record(ctx, "Updated meal: "+meal.Name)
	return meal, nil
}

// DeleteMeal removes the meal from the catalog. Plans that still reference
// it are left alone; the reference resolves to unset from now on.
func (planner *Planner) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	index := planner.mealIndex(id)
	if index < 0 {
		return ErrMealNotFound
	}

	name := planner.meals[index].Name
	planner.meals = slices.Delete(slices.Clone(planner.meals), index, index+1)
	planner.saveMeals(ctx)
	planner.record(ctx, "Deleted meal: "+name)
	return nil
}

func (planner *Planner) SetFavorite(ctx context.Context, id uuid.UUID, favorite bool) (models.Meal, error) {
	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	index := planner.mealIndex(id)
	if index < 0 {
		return models.Meal{}, ErrMealNotFound
	}

	planner.meals[index].IsFavorite = favorite
	planner.saveMeals(ctx)
	return planner.meals[index], nil
}

func (planner *Planner) Profile() models.UserProfile {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return cloneProfile(planner.profile)
}

func (planner *Planner) SaveProfile(ctx context.Context, profile models.UserProfile) models.UserProfile {
	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	planner.profile = cloneProfile(profile)
	if err := planner.gateway.SaveProfile(ctx, planner.profile); err != nil {
		slog.Error("saving profile", "error", err)
	}
	planner.record(ctx, "Saved profile")
	return cloneProfile(planner.profile)
}

func (planner *Planner) Energy() Energy {
	return ComputeEnergy(planner.Profile())
}

func (planner *Planner) Plans() []models.DayPlan {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return slices.Clone(planner.plans)
}

// Snapshot copies the catalog and the plans under one read lock, so the two
// always agree with each other.
func (planner *Planner) Snapshot() ([]models.Meal, []models.DayPlan) {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return slices.Clone(planner.meals), slices.Clone(planner.plans)
}

func (planner *Planner) PlanFor(date time.Time) models.DayPlan {
	return GetPlan(date, planner.Plans(), planner.location)
}

// SavePlan normalizes the plan's date, upserts it and persists the whole
// plan collection.
func (planner *Planner) SavePlan(ctx context.Context, plan models.DayPlan) models.DayPlan {
	plan.Date = StartOfDay(plan.Date, planner.location)
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}

	planner.mutex.Lock()
	defer planner.mutex.Unlock()

	planner.plans = UpsertPlan(plan, planner.plans)
	if err := planner.gateway.SavePlans(ctx, planner.plans); err != nil {
		slog.Error("saving plans", "error", err)
	}
	planner.record(ctx, "Updated plan for "+plan.Date.Format("Jan 2, 2006"))
	return plan
}

func (planner *Planner) ResolvedPlanFor(date time.Time) ResolvedPlan {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return ResolvePlan(GetPlan(date, planner.plans, planner.location), planner.meals)
}

func (planner *Planner) Week(date time.Time) []ResolvedPlan {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()

	var week []ResolvedPlan
	for _, day := range WeekAround(date, planner.location) {
		week = append(week, ResolvePlan(GetPlan(day, planner.plans, planner.location), planner.meals))
	}
	return week
}

func (planner *Planner) Suggest(course models.Course) []models.Meal {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return SuggestMeals(course, planner.profile, planner.meals)
}

func (planner *Planner) ScoredSuggestions(course models.Course) []ScoredMeal {
	planner.mutex.RLock()
	defer planner.mutex.RUnlock()
	return ScoreMeals(course, planner.profile, planner.meals)
}

func (planner *Planner) SaveImage(ctx context.Context, data []byte) (string, error) {
	handle, err := planner.gateway.SaveImage(ctx, data)
	if err != nil {
		slog.Error("saving image", "error", err)
		return "", fmt.Errorf("saving image: %w", err)
	}
	return handle, nil
}

func (planner *Planner) ImageLocation(handle string) (string, error) {
	return planner.gateway.ImageLocation(handle)
}

func (planner *Planner) mealIndex(id uuid.UUID) int {
	return slices.IndexFunc(planner.meals, func(meal models.Meal) bool {
		return meal.ID == id
	})
}

func (planner *Planner) saveMeals(ctx context.Context) {
	if err := planner.gateway.SaveMeals(ctx, planner.meals); err != nil {
		slog.Error("saving meals", "error", err)
	}
}

func (planner *Planner) record(ctx context.Context, message string) {
	slog.Info(message)
	if planner.activity == nil {
		return
	}
	if err := planner.activity.Record(ctx, message); err != nil {
		slog.Error("recording activity", "error", err)
	}
}

func cloneProfile(profile models.UserProfile) models.UserProfile {
	profile.PreferredFlavors = slices.Clone(profile.PreferredFlavors)
	profile.DislikedMealIDs = slices.Clone(profile.DislikedMealIDs)
	profile.Allergies = slices.Clone(profile.Allergies)
	return profile
}
