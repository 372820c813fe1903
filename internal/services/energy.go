package services

import "github.com/martellev/mealplanner/internal/models"

var courseTargetShares = map[models.Course]float64{
	models.CourseBreakfast: 0.25,
	models.CourseLunch:     0.35,
	models.CourseDinner:    0.35,
	models.CourseSnack:     0.05,
}

// BMR estimates basal metabolic rate in kcal/day with the Mifflin-St Jeor
// equation. Out-of-range inputs are accepted as-is.
func BMR(profile models.UserProfile) float64 {
	base := 10*profile.WeightKg + 6.25*profile.HeightCm - 5*float64(profile.Age)
	if profile.Sex == models.SexFemale {
		return base - 161
	}
	return base + 5
}

// TDEE scales BMR by the profile's activity multiplier.
func TDEE(profile models.UserProfile) float64 {
	return BMR(profile) * profile.Activity.Multiplier()
}

// CourseTarget is the share of daily energy a single course should provide.
func CourseTarget(course models.Course, tdee float64) float64 {
	return tdee * courseTargetShares[course]
}

type Energy struct {
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
}

func ComputeEnergy(profile models.UserProfile) Energy {
	return Energy{BMR: BMR(profile), TDEE: TDEE(profile)}
}
