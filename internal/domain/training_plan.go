// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanMeta records what a plan was generated from.
type PlanMeta struct {
	Goal        string `bson:"goal" json:"goal"`
	Template    string `bson:"template" json:"template"`
	Weeks       int    `bson:"weeks" json:"weeks"`
	Level       string `bson:"level,omitempty" json:"level,omitempty"`
	DaysPerWeek int    `bson:"daysPerWeek" json:"daysPerWeek"`
}

// DayEntry is one calendar day of a plan. Rest days are kept for UI continuity.
type DayEntry struct {
	Date              time.Time           `bson:"date" json:"date"`
	WorkoutTemplateID *primitive.ObjectID `bson:"workoutTemplateId,omitempty" json:"workoutTemplateId,omitempty"`
	Description       Token               `bson:"description" json:"description"`
	Type              string              `bson:"type" json:"type"`
}

// Week is one 7-day cycle of a plan.
type Week struct {
	Week       int        `bson:"week" json:"week"` // 1-based
	MicroCycle int        `bson:"microCycle" json:"microCycle"`
	Days       []DayEntry `bson:"days" json:"days"`
}

// TrainingPlan is the calendar-mapped plan of a user.
// At most one plan per user has IsActive set.
type TrainingPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Meta      PlanMeta           `bson:"meta" json:"meta"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	Plan      []Week             `bson:"plan" json:"plan"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StartDate returns the date of the first day in the plan, or the zero time.
func (p *TrainingPlan) StartDate() time.Time {
	if len(p.Plan) == 0 || len(p.Plan[0].Days) == 0 {
		return time.Time{}
	}
	return p.Plan[0].Days[0].Date
}
