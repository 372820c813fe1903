package services

import (
	"math"
	"sort"

	"github.com/martellev/mealplanner/internal/models"
)

const (
	calorieWeight = 0.6
	flavorWeight  = 0.25
	favoriteBonus = 0.15
)

type ScoredMeal struct {
	Meal          models.Meal `json:"meal"`
	Target        float64     `json:"target"`
	CalorieScore  float64     `json:"calorieScore"`
	FlavorScore   float64     `json:"flavorScore"`
	FavoriteBonus float64     `json:"favoriteBonus"`
	Total         float64     `json:"total"`
}

// SuggestMeals ranks the catalog's meals for a course, best fit first.
func SuggestMeals(course models.Course, profile models.UserProfile, catalog []models.Meal) []models.Meal {
	scored := ScoreMeals(course, profile, catalog)
	meals := make([]models.Meal, 0, len(scored))
	for _, candidate := range scored {
		meals = append(meals, candidate.Meal)
	}
	return meals
}

// ScoreMeals filters the catalog down to meals eligible for the course and
// profile and returns them sorted by descending total score. Ties keep
// catalog order.
func ScoreMeals(course models.Course, profile models.UserProfile, catalog []models.Meal) []ScoredMeal {
	target := CourseTarget(course, TDEE(profile))

	scored := make([]ScoredMeal, 0)
	for _, meal := range catalog {
		if meal.Course != course {
			continue
		}
		if profile.DislikedMealIDs.Contains(meal.ID) {
			continue
		}
		if meal.Allergens.Intersects(profile.Allergies) {
			continue
		}
		scored = append(scored, scoreMeal(meal, profile, target))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Total > scored[j].Total
	})
	return scored
}

func scoreMeal(meal models.Meal, profile models.UserProfile, target float64) ScoredMeal {
	deviation := math.Abs(float64(meal.Calories)-target) / math.Max(target, 1)
	calorieScore := 1 - math.Min(deviation, 1)

	matched := 0
	for _, flavor := range meal.Flavors {
		if profile.PreferredFlavors.Contains(flavor) {
			matched++
		}
	}
	flavorScore := float64(matched) / float64(max(len(meal.Flavors), 1))

	bonus := 0.0
	if meal.IsFavorite {
		bonus = favoriteBonus
	}

	return ScoredMeal{
		Meal:          meal,
		Target:        target,
		CalorieScore:  calorieScore,
		FlavorScore:   flavorScore,
		FavoriteBonus: bonus,
		Total:         calorieWeight*calorieScore + flavorWeight*flavorScore + bonus,
	}
}
