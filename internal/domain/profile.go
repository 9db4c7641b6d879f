package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnitSystem selects how distances are presented.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// IsValid reports whether u is a known unit system.
func (u UnitSystem) IsValid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Week-start conventions.
const (
	WeekStartSunday = 0
	WeekStartMonday = 1
)

// TrainingProfile is what the user wants to train for.
type TrainingProfile struct {
	GoalDistance  string   `bson:"goalDistance" json:"goalDistance"`
	PreferredDays []string `bson:"preferredDays" json:"preferredDays"` // ordered weekday names
	FitnessLevel  string   `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"`
	DaysPerWeek   int      `bson:"daysPerWeek" json:"daysPerWeek"`
}

// DisplayProfile holds the user's calendar and unit preferences.
type DisplayProfile struct {
	WeekStartDay int        `bson:"weekStartDay" json:"weekStartDay"` // 0 = Sunday, 1 = Monday
	UnitSystem   UnitSystem `bson:"unitSystem" json:"unitSystem"`
}

// UserProfile is the stored pair of profiles the scheduler consumes.
type UserProfile struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Training  TrainingProfile    `bson:"training" json:"training"`
	Display   DisplayProfile     `bson:"display" json:"display"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
