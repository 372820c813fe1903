package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
)

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// GetPlan returns the plan stored for date's day, or a new empty plan for
// that day. The new plan is not added to plans.
func GetPlan(date time.Time, plans []models.DayPlan, loc *time.Location) models.DayPlan {
	day := StartOfDay(date, loc)
	for _, plan := range plans {
		if plan.Date.Equal(day) {
			return plan
		}
	}
	return models.DayPlan{ID: uuid.New(), Date: day}
}

// UpsertPlan replaces the plan with the same id, else the plan for the same
// day, else appends. Replacement keeps the original position.
func UpsertPlan(plan models.DayPlan, plans []models.DayPlan) []models.DayPlan {
	updated := make([]models.DayPlan, len(plans), len(plans)+1)
	copy(updated, plans)

	for index, existing := range updated {
		if existing.ID == plan.ID {
			updated[index] = plan
			return updated
		}
	}
	for index, existing := range updated {
		if existing.Date.Equal(plan.Date) {
			updated[index] = plan
			return updated
		}
	}
	return append(updated, plan)
}

// WeekAround returns the seven days centred on date.
func WeekAround(date time.Time, loc *time.Location) []time.Time {
	day := StartOfDay(date, loc)
	days := make([]time.Time, 0, 7)
	for offset := -3; offset <= 3; offset++ {
		days = append(days, day.AddDate(0, 0, offset))
	}
	return days
}

type ResolvedPlan struct {
	Plan      models.DayPlan `json:"plan"`
	Breakfast *models.Meal   `json:"breakfast"`
	Lunch     *models.Meal   `json:"lunch"`
	Dinner    *models.Meal   `json:"dinner"`
	Snack     *models.Meal   `json:"snack"`
	Calories  int            `json:"calories"`
}

func (resolved ResolvedPlan) Meals() []*models.Meal {
	return []*models.Meal{resolved.Breakfast, resolved.Lunch, resolved.Dinner, resolved.Snack}
}

// ResolvePlan looks up each course's meal in the catalog. References to
// meals no longer in the catalog resolve to nil.
func ResolvePlan(plan models.DayPlan, catalog []models.Meal) ResolvedPlan {
	byID := make(map[uuid.UUID]models.Meal, len(catalog))
	for _, meal := range catalog {
		byID[meal.ID] = meal
	}

	resolved := ResolvedPlan{Plan: plan}
	lookup := func(course models.Course) *models.Meal {
		id := plan.MealFor(course)
		if id == nil {
			return nil
		}
		meal, ok := byID[*id]
		if !ok {
			return nil
		}
		resolved.Calories += meal.Calories
		return &meal
	}
	resolved.Breakfast = lookup(models.CourseBreakfast)
	resolved.Lunch = lookup(models.CourseLunch)
	resolved.Dinner = lookup(models.CourseDinner)
	resolved.Snack = lookup(models.CourseSnack)
	return resolved
}

// PlanCalories sums the calories of the plan's resolvable meals.
func PlanCalories(plan models.DayPlan, catalog []models.Meal) int {
	return ResolvePlan(plan, catalog).Calories
}
