package services

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
)

func newMeal(name string, course models.Course, calories int) models.Meal {
	return models.Meal{ID: uuid.New(), Name: name, Course: course, Calories: calories}
}

func mealNames(meals []models.Meal) []string {
	var names []string
	for _, meal := range meals {
		names = append(names, meal.Name)
	}
	return names
}

func TestSuggestMeals_FiltersByCourse(t *testing.T) {
	profile := models.DefaultProfile()
	catalog := []models.Meal{
		newMeal("Oatmeal", models.CourseBreakfast, 600),
		newMeal("Salad", models.CourseLunch, 800),
		newMeal("Pancakes", models.CourseBreakfast, 700),
	}

	got := SuggestMeals(models.CourseBreakfast, profile, catalog)
	if len(got) != 2 {
		t.Fatalf("expected 2 breakfast meals, got %v", mealNames(got))
	}
	for _, meal := range got {
		if meal.Course != models.CourseBreakfast {
			t.Errorf("unexpected course %s for %s", meal.Course, meal.Name)
		}
	}
}

func TestSuggestMeals_ExcludesDislikedRegardlessOfScore(t *testing.T) {
	profile := models.DefaultProfile()
	perfect := newMeal("Perfect", models.CourseLunch, 864)
	perfect.IsFavorite = true
	other := newMeal("Other", models.CourseLunch, 100)
	profile.DislikedMealIDs = models.NewMealIDSet(perfect.ID)

	got := SuggestMeals(models.CourseLunch, profile, []models.Meal{perfect, other})
	if len(got) != 1 || got[0].ID != other.ID {
		t.Errorf("expected only Other, got %v", mealNames(got))
	}
}

func TestSuggestMeals_ExcludesSharedAllergens(t *testing.T) {
	profile := models.DefaultProfile()
	profile.Allergies = models.NewAllergenSet(models.AllergenNuts, models.AllergenFish)

	nutty := newMeal("Nutty", models.CourseSnack, 120)
	nutty.Allergens = models.NewAllergenSet(models.AllergenDairy, models.AllergenNuts)
	dairy := newMeal("Dairy", models.CourseSnack, 120)
	dairy.Allergens = models.NewAllergenSet(models.AllergenDairy)
	plain := newMeal("Plain", models.CourseSnack, 120)

	got := SuggestMeals(models.CourseSnack, profile, []models.Meal{nutty, dairy, plain})
	if names := mealNames(got); len(names) != 2 || names[0] != "Dairy" || names[1] != "Plain" {
		t.Errorf("expected [Dairy Plain], got %v", names)
	}
}

func TestSuggestMeals_SortedByScoreDescending(t *testing.T) {
	profile := models.DefaultProfile()
	profile.PreferredFlavors = models.NewFlavorSet(models.FlavorSweet)
	target := CourseTarget(models.CourseBreakfast, TDEE(profile))

	far := newMeal("Far", models.CourseBreakfast, int(target*3))
	near := newMeal("Near", models.CourseBreakfast, int(target))
	sweet := newMeal("Sweet", models.CourseBreakfast, int(target))
	sweet.Flavors = models.NewFlavorSet(models.FlavorSweet)
	favorite := newMeal("Favorite", models.CourseBreakfast, int(target))
	favorite.Flavors = models.NewFlavorSet(models.FlavorSweet)
	favorite.IsFavorite = true

	scored := ScoreMeals(models.CourseBreakfast, profile, []models.Meal{far, near, sweet, favorite})
	want := []string{"Favorite", "Sweet", "Near", "Far"}
	for index, candidate := range scored {
		if candidate.Meal.Name != want[index] {
			t.Errorf("position %d: expected %s, got %s", index, want[index], candidate.Meal.Name)
		}
		if index > 0 && candidate.Total > scored[index-1].Total {
			t.Errorf("scores not non-increasing at %d", index)
		}
	}
}

func TestSuggestMeals_StableForEqualScores(t *testing.T) {
	profile := models.DefaultProfile()
	var catalog []models.Meal
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		catalog = append(catalog, newMeal(name, models.CourseDinner, 10))
	}

	got := mealNames(SuggestMeals(models.CourseDinner, profile, catalog))
	want := []string{"A", "B", "C", "D", "E"}
	for index := range want {
		if got[index] != want[index] {
			t.Fatalf("expected catalog order %v, got %v", want, got)
		}
	}
}

func TestScoreMeals_ExactTargetScoresPointSix(t *testing.T) {
	// BMR 1490, sedentary TDEE 1788, breakfast target 447 kcal.
	profile := models.UserProfile{Age: 23, Sex: models.SexMale, HeightCm: 160, WeightKg: 60, Activity: models.ActivitySedentary}
	catalog := []models.Meal{
		newMeal("First", models.CourseBreakfast, 447),
		newMeal("Second", models.CourseBreakfast, 447),
	}

	scored := ScoreMeals(models.CourseBreakfast, profile, catalog)
	if len(scored) != 2 {
		t.Fatalf("expected 2 scored meals, got %d", len(scored))
	}
	for _, candidate := range scored {
		if math.Abs(candidate.Total-0.6) > 1e-9 {
			t.Errorf("%s: expected 0.6, got %v", candidate.Meal.Name, candidate.Total)
		}
	}
}

func TestScoreMeal_Components(t *testing.T) {
	profile := models.DefaultProfile()
	profile.PreferredFlavors = models.NewFlavorSet(models.FlavorUmami)

	tests := []struct {
		name         string
		meal         models.Meal
		target       float64
		wantCalorie  float64
		wantFlavor   float64
		wantFavorite float64
	}{
		{
			name:        "half deviation",
			meal:        models.Meal{Calories: 150},
			target:      100,
			wantCalorie: 0.5,
		},
		{
			name:        "deviation beyond target clamps to zero",
			meal:        models.Meal{Calories: 1000},
			target:      100,
			wantCalorie: 0,
		},
		{
			name:        "zero target uses divisor of one",
			meal:        models.Meal{Calories: 0},
			target:      0,
			wantCalorie: 1,
		},
		{
			name:        "partial flavor match",
			meal:        models.Meal{Calories: 100, Flavors: models.NewFlavorSet(models.FlavorUmami, models.FlavorSavory)},
			target:      100,
			wantCalorie: 1,
			wantFlavor:  0.5,
		},
		{
			name:         "favorite bonus",
			meal:         models.Meal{Calories: 100, IsFavorite: true},
			target:       100,
			wantCalorie:  1,
			wantFavorite: 0.15,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			scored := scoreMeal(test.meal, profile, test.target)
			if math.Abs(scored.CalorieScore-test.wantCalorie) > 1e-9 {
				t.Errorf("calorie score: expected %v, got %v", test.wantCalorie, scored.CalorieScore)
			}
			if math.Abs(scored.FlavorScore-test.wantFlavor) > 1e-9 {
				t.Errorf("flavor score: expected %v, got %v", test.wantFlavor, scored.FlavorScore)
			}
			if scored.FavoriteBonus != test.wantFavorite {
				t.Errorf("favorite bonus: expected %v, got %v", test.wantFavorite, scored.FavoriteBonus)
			}
			want := 0.6*test.wantCalorie + 0.25*test.wantFlavor + test.wantFavorite
			if math.Abs(scored.Total-want) > 1e-9 {
				t.Errorf("total: expected %v, got %v", want, scored.Total)
			}
		})
	}
}

func TestSuggestMeals_EmptyCatalog(t *testing.T) {
	got := SuggestMeals(models.CourseSnack, models.DefaultProfile(), nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}
