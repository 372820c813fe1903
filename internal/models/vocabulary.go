package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

type Course string

const (
	CourseBreakfast Course = "breakfast"
	CourseLunch     Course = "lunch"
	CourseDinner    Course = "dinner"
	CourseSnack     Course = "snack"
)

// Courses lists every course in day order.
var Courses = []Course{CourseBreakfast, CourseLunch, CourseDinner, CourseSnack}

func (course Course) Valid() bool {
	return slices.Contains(Courses, course)
}

func (course *Course) UnmarshalText(text []byte) error {
	value := Course(text)
	if !value.Valid() {
		return fmt.Errorf("unknown course %q", text)
	}
	*course = value
	return nil
}

type Flavor string

const (
	FlavorSweet  Flavor = "sweet"
	FlavorSalty  Flavor = "salty"
	FlavorSour   Flavor = "sour"
	FlavorBitter Flavor = "bitter"
	FlavorUmami  Flavor = "umami"
	FlavorSpicy  Flavor = "spicy"
	FlavorSavory Flavor = "savory"
)

var Flavors = []Flavor{FlavorSweet, FlavorSalty, FlavorSour, FlavorBitter, FlavorUmami, FlavorSpicy, FlavorSavory}

func (flavor Flavor) Valid() bool {
	return slices.Contains(Flavors, flavor)
}

func (flavor *Flavor) UnmarshalText(text []byte) error {
	value := Flavor(text)
	if !value.Valid() {
		return fmt.Errorf("unknown flavor %q", text)
	}
	*flavor = value
	return nil
}

type Allergen string

const (
	AllergenNuts      Allergen = "nuts"
	AllergenDairy     Allergen = "dairy"
	AllergenGluten    Allergen = "gluten"
	AllergenEggs      Allergen = "eggs"
	AllergenShellfish Allergen = "shellfish"
	AllergenSoy       Allergen = "soy"
	AllergenFish      Allergen = "fish"
	AllergenSesame    Allergen = "sesame"
)

var Allergens = []Allergen{
	AllergenNuts, AllergenDairy, AllergenGluten, AllergenEggs,
	AllergenShellfish, AllergenSoy, AllergenFish, AllergenSesame,
}

func (allergen Allergen) Valid() bool {
	return slices.Contains(Allergens, allergen)
}

func (allergen *Allergen) UnmarshalText(text []byte) error {
	value := Allergen(text)
	if !value.Valid() {
		return fmt.Errorf("unknown allergen %q", text)
	}
	*allergen = value
	return nil
}

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (sex Sex) Valid() bool {
	return sex == SexMale || sex == SexFemale
}

func (sex *Sex) UnmarshalText(text []byte) error {
	value := Sex(text)
	if !value.Valid() {
		return fmt.Errorf("unknown sex %q", text)
	}
	*sex = value
	return nil
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "veryActive"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Multiplier returns the TDEE factor for the level. Unknown levels never
// survive decoding, so the zero return only happens for hand-built values.
func (level ActivityLevel) Multiplier() float64 {
	return activityMultipliers[level]
}

func (level ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[level]
	return ok
}

func (level *ActivityLevel) UnmarshalText(text []byte) error {
	value := ActivityLevel(text)
	if !value.Valid() {
		return fmt.Errorf("unknown activity level %q", text)
	}
	*level = value
	return nil
}

// FlavorSet holds distinct flavors in vocabulary order.
type FlavorSet []Flavor

func NewFlavorSet(flavors ...Flavor) FlavorSet {
	return FlavorSet(normalizeSet(flavors, Flavors))
}

func (set FlavorSet) Contains(flavor Flavor) bool {
	return slices.Contains(set, flavor)
}

func (set FlavorSet) MarshalJSON() ([]byte, error) {
	return marshalSet([]Flavor(set))
}

func (set *FlavorSet) UnmarshalJSON(data []byte) error {
	var flavors []Flavor
	if err := json.Unmarshal(data, &flavors); err != nil {
		return err
	}
	*set = NewFlavorSet(flavors...)
	return nil
}

// AllergenSet holds distinct allergens in vocabulary order.
type AllergenSet []Allergen

func NewAllergenSet(allergens ...Allergen) AllergenSet {
	return AllergenSet(normalizeSet(allergens, Allergens))
}

func (set AllergenSet) Contains(allergen Allergen) bool {
	return slices.Contains(set, allergen)
}

// Intersects reports whether the two sets share at least one allergen.
func (set AllergenSet) Intersects(other AllergenSet) bool {
	for _, allergen := range set {
		if other.Contains(allergen) {
			return true
		}
	}
	return false
}

func (set AllergenSet) MarshalJSON() ([]byte, error) {
	return marshalSet([]Allergen(set))
}

func (set *AllergenSet) UnmarshalJSON(data []byte) error {
	var allergens []Allergen
	if err := json.Unmarshal(data, &allergens); err != nil {
		return err
	}
	*set = NewAllergenSet(allergens...)
	return nil
}

func normalizeSet[T comparable](values []T, vocabulary []T) []T {
	var normalized []T
	for _, candidate := range vocabulary {
		if slices.Contains(values, candidate) {
			normalized = append(normalized, candidate)
		}
	}
	return normalized
}

func marshalSet[T any](values []T) ([]byte, error) {
	if values == nil {
		values = []T{}
	}
	return json.Marshal(values)
}
