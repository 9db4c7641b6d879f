package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannedWorkoutStatus is the lifecycle state of a planned workout.
type PlannedWorkoutStatus string

const (
	StatusScheduled PlannedWorkoutStatus = "scheduled"
	StatusCompleted PlannedWorkoutStatus = "completed" // set by run tracking or the UI
	StatusSkipped   PlannedWorkoutStatus = "skipped"
)

// IsValid reports whether s is a known status.
func (s PlannedWorkoutStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusSkipped:
		return true
	default:
		return false
	}
}

// PlannedWorkout is one dated, hydrated workout of a user's plan. Only non-rest days get one.
type PlannedWorkout struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID   `bson:"userId" json:"userId"`
	TrainingPlanID    primitive.ObjectID   `bson:"trainingPlanId" json:"trainingPlanId"`
	WorkoutTemplateID primitive.ObjectID   `bson:"workoutTemplateId" json:"workoutTemplateId"`
	ScheduledDate     time.Time            `bson:"scheduledDate" json:"scheduledDate"`
	Status            PlannedWorkoutStatus `bson:"status" json:"status"`
	Token             Token                `bson:"token" json:"token"`
	Hydrated          HydratedWorkout      `bson:"hydrated" json:"hydrated"`
	CompletedAt       *time.Time           `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}
