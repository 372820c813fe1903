package models

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Meal struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Calories       int         `json:"calories"`
	Course         Course      `json:"course"`
	Flavors        FlavorSet   `json:"flavors"`
	Allergens      AllergenSet `json:"allergies"`
	BestCookedWith string      `json:"bestCookedWith"`
	BestServedAs   string      `json:"bestServedAs"`
	ImageHandle    *string     `json:"imageFilename,omitempty"`
	IsFavorite     bool        `json:"isFavorite"`
}

// MealIDSet holds distinct meal ids sorted by their string form.
type MealIDSet []uuid.UUID

func NewMealIDSet(ids ...uuid.UUID) MealIDSet {
	var set MealIDSet
	for _, id := range ids {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	slices.SortFunc(set, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	return set
}

func (set MealIDSet) Contains(id uuid.UUID) bool {
	return slices.Contains(set, id)
}

func (set MealIDSet) MarshalJSON() ([]byte, error) {
	return marshalSet([]uuid.UUID(set))
}

func (set *MealIDSet) UnmarshalJSON(data []byte) error {
	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*set = NewMealIDSet(ids...)
	return nil
}

type UserProfile struct {
	Age              int           `json:"age"`
	Sex              Sex           `json:"sex"`
	HeightCm         float64       `json:"heightCm"`
	WeightKg         float64       `json:"weightKg"`
	Activity         ActivityLevel `json:"activity"`
	PreferredFlavors FlavorSet     `json:"preferredFlavors"`
	DislikedMealIDs  MealIDSet     `json:"dislikedMealIDs"`
	Allergies        AllergenSet   `json:"allergies"`
}

// DefaultProfile is the profile of a fresh installation.
func DefaultProfile() UserProfile {
	return UserProfile{
		Age:      25,
		Sex:      SexMale,
		HeightCm: 170,
		WeightKg: 65,
		Activity: ActivityModerate,
	}
}

// DayPlan assigns at most one meal per course to a calendar day. Date is
// always midnight of that day.
type DayPlan struct {
	ID        uuid.UUID  `json:"id"`
	Date      time.Time  `json:"date"`
	Breakfast *uuid.UUID `json:"breakfast,omitempty"`
	Lunch     *uuid.UUID `json:"lunch,omitempty"`
	Dinner    *uuid.UUID `json:"dinner,omitempty"`
	Snack     *uuid.UUID `json:"snack,omitempty"`
}

func (plan DayPlan) MealFor(course Course) *uuid.UUID {
	switch course {
	case CourseBreakfast:
		return plan.Breakfast
	case CourseLunch:
		return plan.Lunch
	case CourseDinner:
		return plan.Dinner
	case CourseSnack:
		return plan.Snack
	}
	return nil
}

func (plan *DayPlan) SetMeal(course Course, mealID *uuid.UUID) {
	switch course {
	case CourseBreakfast:
		plan.Breakfast = mealID
	case CourseLunch:
		plan.Lunch = mealID
	case CourseDinner:
		plan.Dinner = mealID
	case CourseSnack:
		plan.Snack = mealID
	}
}

type ActivityEntry struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
