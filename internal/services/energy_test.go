package services

import (
	"math"
	"testing"

	"github.com/martellev/mealplanner/internal/models"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name    string
		profile models.UserProfile
		want    float64
	}{
		{
			name:    "male reference profile",
			profile: models.UserProfile{Age: 25, Sex: models.SexMale, HeightCm: 170, WeightKg: 65},
			want:    1592.5,
		},
		{
			name:    "female offset",
			profile: models.UserProfile{Age: 25, Sex: models.SexFemale, HeightCm: 170, WeightKg: 65},
			want:    1426.5,
		},
		{
			name:    "age zero is accepted",
			profile: models.UserProfile{Age: 0, Sex: models.SexMale, HeightCm: 170, WeightKg: 65},
			want:    1717.5,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := BMR(test.profile); math.Abs(got-test.want) > 1e-9 {
				t.Errorf("expected %v, got %v", test.want, got)
			}
		})
	}
}

func TestTDEE_ScalesByActivity(t *testing.T) {
	profile := models.DefaultProfile()
	if got := TDEE(profile); math.Abs(got-2468.375) > 1e-9 {
		t.Errorf("expected 2468.375, got %v", got)
	}

	profile.Activity = models.ActivitySedentary
	if got := TDEE(profile); math.Abs(got-1911) > 1e-9 {
		t.Errorf("expected 1911, got %v", got)
	}
}

func TestCourseTarget(t *testing.T) {
	tests := map[models.Course]float64{
		models.CourseBreakfast: 250,
		models.CourseLunch:     350,
		models.CourseDinner:    350,
		models.CourseSnack:     50,
	}
	for course, want := range tests {
		if got := CourseTarget(course, 1000); math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", course, want, got)
		}
	}
}
