package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Step is one concrete step of a hydrated workout.
type Step struct {
	Order    int      `bson:"order" json:"order"`
	Label    string   `bson:"label" json:"label"`
	Duration string   `bson:"duration,omitempty" json:"duration,omitempty"` // human string, e.g. "5 min", "90 sec"
	Distance *float64 `bson:"distance,omitempty" json:"distance,omitempty"` // meters
	Effort   string   `bson:"effort" json:"effort"`
	Notes    string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// HydratedWorkout is the concrete expansion of a token for a given unit system.
// The zero value means "no hydration data": callers fall back to skeleton defaults.
type HydratedWorkout struct {
	Variant           string   `bson:"variant,omitempty" json:"variant,omitempty"`
	DistanceMi        *float64 `bson:"distanceMi,omitempty" json:"distanceMi,omitempty"`
	DistanceKm        *float64 `bson:"distanceKm,omitempty" json:"distanceKm,omitempty"`
	Minutes           *float64 `bson:"minutes,omitempty" json:"minutes,omitempty"`
	Value             *float64 `bson:"value,omitempty" json:"value,omitempty"`
	Steps             []Step   `bson:"steps,omitempty" json:"steps,omitempty"`               // executable, for run-time guidance
	DisplaySteps      []Step   `bson:"displaySteps,omitempty" json:"displaySteps,omitempty"` // coarse, for summaries
	GlobalDescription string   `bson:"globalDescription,omitempty" json:"globalDescription,omitempty"`
}

// IsEmpty reports whether hydration produced nothing at all.
func (h HydratedWorkout) IsEmpty() bool {
	return h.Variant == "" && h.DistanceMi == nil && h.DistanceKm == nil && h.Minutes == nil &&
		h.Value == nil && len(h.Steps) == 0 && len(h.DisplaySteps) == 0 && h.GlobalDescription == ""
}

// WorkoutTemplate is the shared skeleton persisted once per base code per plan generation.
// Steps are never stored here with unresolved placeholders; they live in the hydrated
// per-day data.
type WorkoutTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"` // TOKEN_<base>
	Base        string             `bson:"base" json:"base"`
	Type        string             `bson:"type" json:"type"`
	SubType     string             `bson:"subType,omitempty" json:"subType,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Steps       []Step             `bson:"steps" json:"steps"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
