package repository

import (
	"alcyxob/run-coach/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrInvalidInput = RepositoryError("invalid input")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Transactor runs a function as one unit of work. Implementations without
// transactional storage simply call fn.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error)
	// DeactivateAllForUser clears isActive on every plan of the user.
	DeactivateAllForUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UpdateWeeks(ctx context.Context, planID primitive.ObjectID, weeks []domain.Week) error
}

// PlannedWorkoutFilter narrows planned workout listings. Zero fields are ignored.
type PlannedWorkoutFilter struct {
	From *time.Time // inclusive
	To   *time.Time // exclusive
}

// PlannedWorkoutRepository defines the interface for interacting with planned workouts.
type PlannedWorkoutRepository interface {
	CreateMany(ctx context.Context, workouts []domain.PlannedWorkout) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID, filter PlannedWorkoutFilter) ([]domain.PlannedWorkout, error)
	ListByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlannedWorkout, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
	UpdateScheduledDate(ctx context.Context, id primitive.ObjectID, date time.Time) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlannedWorkoutStatus, completedAt *time.Time) error
}

// WorkoutTemplateRepository stores the shared workout skeletons.
type WorkoutTemplateRepository interface {
	Create(ctx context.Context, tmpl *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
}

// ActivityRepository stores completed activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) (primitive.ObjectID, error)
	ListByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Activity, error)
}

// ProfileRepository stores the training and display profiles of users.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}
