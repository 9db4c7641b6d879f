package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivitySourceSimulation tags activities synthesized by the progress simulator
// so they can be told apart from tracked ones.
const ActivitySourceSimulation = "simulation"

// Activity is a completed workout in the activity ledger.
type Activity struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID  `bson:"userId" json:"userId"`
	PlannedWorkoutID *primitive.ObjectID `bson:"plannedWorkoutId,omitempty" json:"plannedWorkoutId,omitempty"`
	Type             string              `bson:"type" json:"type"`
	StartedAt        time.Time           `bson:"startedAt" json:"startedAt"`
	DurationSeconds  int                 `bson:"durationSeconds" json:"durationSeconds"`
	DistanceMeters   float64             `bson:"distanceMeters" json:"distanceMeters"`
	Calories         int                 `bson:"calories" json:"calories"`
	Source           string              `bson:"source" json:"source"`
	SimulationRunID  string              `bson:"simulationRunId,omitempty" json:"simulationRunId,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}
