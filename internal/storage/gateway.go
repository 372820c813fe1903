package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/martellev/mealplanner/internal/models"
)

const (
	mealsDocument   = "meals"
	profileDocument = "profile"
	plansDocument   = "plans"
)

// Gateway persists the planner's catalog, profile and plans as JSON
// documents and its images through an ImageStore. Loads never fail.
type Gateway struct {
	documents DocumentStore
	images    ImageStore
}

func NewGateway(documents DocumentStore, images ImageStore) *Gateway {
	return &Gateway{documents: documents, images: images}
}

// LoadMeals returns the stored catalog. A fresh installation gets the seed
// catalog, which is saved so the seeded ids stay stable across restarts.
func (gateway *Gateway) LoadMeals(ctx context.Context) []models.Meal {
	var meals []models.Meal
	found, err := gateway.load(ctx, mealsDocument, &meals, func() error { return validateMeals(meals) })
	switch {
	case err != nil:
		slog.Warn("loading meals, using seed catalog", "error", err)
		return SeedMeals()
	case !found:
		seed := SeedMeals()
		if err := gateway.SaveMeals(ctx, seed); err != nil {
			slog.Error("saving seed catalog", "error", err)
		}
		return seed
	}
	return meals
}

func (gateway *Gateway) SaveMeals(ctx context.Context, meals []models.Meal) error {
	if meals == nil {
		meals = []models.Meal{}
	}
	return gateway.save(ctx, mealsDocument, meals)
}

func (gateway *Gateway) LoadProfile(ctx context.Context) models.UserProfile {
	var profile models.UserProfile
	found, err := gateway.load(ctx, profileDocument, &profile, func() error { return validateProfile(profile) })
	switch {
	case err != nil:
		slog.Warn("loading profile, using default", "error", err)
		return models.DefaultProfile()
	case !found:
		profile = models.DefaultProfile()
		if err := gateway.SaveProfile(ctx, profile); err != nil {
			slog.Error("saving default profile", "error", err)
		}
	}
	return profile
}

func (gateway *Gateway) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	return gateway.save(ctx, profileDocument, profile)
}

func (gateway *Gateway) LoadPlans(ctx context.Context) []models.DayPlan {
	var plans []models.DayPlan
	if _, err := gateway.load(ctx, plansDocument, &plans, func() error { return validatePlans(plans) }); err != nil {
		slog.Warn("loading plans, starting empty", "error", err)
		return nil
	}
	return plans
}

func (gateway *Gateway) SavePlans(ctx context.Context, plans []models.DayPlan) error {
	if plans == nil {
		plans = []models.DayPlan{}
	}
	return gateway.save(ctx, plansDocument, plans)
}

func (gateway *Gateway) SaveImage(ctx context.Context, data []byte) (string, error) {
	return gateway.images.Save(ctx, data)
}

func (gateway *Gateway) ImageLocation(handle string) (string, error) {
	if !ValidImageHandle(handle) {
		return "", ErrInvalidImageHandle
	}
	return gateway.images.Location(handle), nil
}

// load decodes the named document into target and runs validate on the
// result. found is false when the document does not exist yet; err is set
// when it exists but is unusable.
func (gateway *Gateway) load(ctx context.Context, name string, target any, validate func() error) (found bool, err error) {
	data, err := gateway.documents.Read(ctx, name)
	if errors.Is(err, ErrDocumentNotFound) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return true, fmt.Errorf("decoding %s document: %w", name, err)
	}
	if err := validate(); err != nil {
		return true, fmt.Errorf("validating %s document: %w", name, err)
	}
	return true, nil
}

// validateMeals rejects catalogs with missing or repeated ids or unknown
// courses. Missing keys never reach UnmarshalText, so decoding alone lets
// them through.
func validateMeals(meals []models.Meal) error {
	seen := make(map[uuid.UUID]bool, len(meals))
	for index, meal := range meals {
		if meal.ID == uuid.Nil {
			return fmt.Errorf("meal %d: missing id", index)
		}
		if seen[meal.ID] {
			return fmt.Errorf("meal %d: duplicate id %s", index, meal.ID)
		}
		seen[meal.ID] = true
		if !meal.Course.Valid() {
			return fmt.Errorf("meal %s: missing or unknown course", meal.ID)
		}
	}
	return nil
}

func validateProfile(profile models.UserProfile) error {
	if !profile.Sex.Valid() {
		return errors.New("profile: missing or unknown sex")
	}
	if !profile.Activity.Valid() {
		return errors.New("profile: missing or unknown activity")
	}
	return nil
}

func validatePlans(plans []models.DayPlan) error {
	for index, plan := range plans {
		if plan.ID == uuid.Nil {
			return fmt.Errorf("plan %d: missing id", index)
		}
		if plan.Date.IsZero() {
			return fmt.Errorf("plan %s: missing date", plan.ID)
		}
	}
	return nil
}

func (gateway *Gateway) save(ctx context.Context, name string, value any) error {
	data, err := encodeDocument(value)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", name, err)
	}
	if err := gateway.documents.Write(ctx, name, data); err != nil {
		return fmt.Errorf("saving %s document: %w", name, err)
	}
	return nil
}

// encodeDocument renders value as indented JSON with object keys sorted.
func encodeDocument(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var generic any
	if err := decoder.Decode(&generic); err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(generic); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// SeedMeals is the catalog a fresh installation starts with.
func SeedMeals() []models.Meal {
	return []models.Meal{
		{
			ID:             uuid.New(),
			Name:           "Oatmeal & Berries",
			Calories:       320,
			Course:         models.CourseBreakfast,
			Flavors:        models.NewFlavorSet(models.FlavorSweet),
			Allergens:      models.NewAllergenSet(models.AllergenGluten),
			BestCookedWith: "Oats, almond milk",
			BestServedAs:   "Warm bowl",
			IsFavorite:     true,
		},
		{
			ID:             uuid.New(),
			Name:           "Grilled Chicken Salad",
			Calories:       450,
			Course:         models.CourseLunch,
			Flavors:        models.NewFlavorSet(models.FlavorSavory, models.FlavorUmami),
			BestCookedWith: "Olive oil, lemon",
			BestServedAs:   "Fresh",
		},
		{
			ID:             uuid.New(),
			Name:           "Salmon & Quinoa",
			Calories:       560,
			Course:         models.CourseDinner,
			Flavors:        models.NewFlavorSet(models.FlavorUmami, models.FlavorSavory),
			Allergens:      models.NewAllergenSet(models.AllergenFish, models.AllergenSesame),
			BestCookedWith: "Pan-sear",
			BestServedAs:   "Plate",
		},
		{
			ID:             uuid.New(),
			Name:           "Greek Yogurt & Nuts",
			Calories:       280,
			Course:         models.CourseSnack,
			Flavors:        models.NewFlavorSet(models.FlavorSweet),
			Allergens:      models.NewAllergenSet(models.AllergenDairy, models.AllergenNuts),
			BestCookedWith: "Honey",
			BestServedAs:   "Cup",
		},
	}
}
