package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlannedWorkoutNotFound = errors.New("planned workout not found")
	ErrInvalidStatus          = errors.New("invalid planned workout status")
)

// PlannedWorkoutDetails is a planned workout merged with its skeleton for presentation.
type PlannedWorkoutDetails struct {
	domain.PlannedWorkout
	Name        string `json:"name"`
	Type        string `json:"type"`
	SubType     string `json:"subType,omitempty"`
	Description string `json:"description"`
	// DisplaySteps summarize the workout for UI.
	DisplaySteps []domain.Step `json:"displaySteps"`
	// ExecutableSteps are the authoritative steps for run guidance.
	ExecutableSteps []domain.Step `json:"executableSteps"`
}

type PlannedWorkoutService interface {
	List(ctx context.Context, userID primitive.ObjectID, filter repository.PlannedWorkoutFilter) ([]domain.PlannedWorkout, error)
	GetDetails(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID) (*PlannedWorkoutDetails, error)
	UpdateStatus(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID, status domain.PlannedWorkoutStatus) (*domain.PlannedWorkout, error)
}

type plannedWorkoutService struct {
	workoutRepo  repository.PlannedWorkoutRepository
	templateRepo repository.WorkoutTemplateRepository
	now          func() time.Time
}

func NewPlannedWorkoutService(workoutRepo repository.PlannedWorkoutRepository, templateRepo repository.WorkoutTemplateRepository) PlannedWorkoutService {
	return &plannedWorkoutService{
		workoutRepo:  workoutRepo,
		templateRepo: templateRepo,
		now:          time.Now,
	}
}

func (s *plannedWorkoutService) List(ctx context.Context, userID primitive.ObjectID, filter repository.PlannedWorkoutFilter) ([]domain.PlannedWorkout, error) {
	workouts, err := s.workoutRepo.ListByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.PlannedWorkout{}
	}
	return workouts, nil
}

// GetDetails enriches a planned workout with its skeleton. Display steps come from the
// hydrated display steps, then the hydrated steps, then the skeleton's own steps.
func (s *plannedWorkoutService) GetDetails(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID) (*PlannedWorkoutDetails, error) {
	pw, err := s.getOwned(ctx, userID, plannedWorkoutID)
	if err != nil {
		return nil, err
	}

	skeleton, err := s.templateRepo.GetByID(ctx, pw.WorkoutTemplateID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		logrus.Warnf("planned workout %s references missing skeleton %s", pw.ID.Hex(), pw.WorkoutTemplateID.Hex())
		skeleton = &domain.WorkoutTemplate{}
	}

	details := &PlannedWorkoutDetails{
		PlannedWorkout: *pw,
		Name:           skeleton.Name,
		Type:           skeleton.Type,
		SubType:        skeleton.SubType,
		Description:    skeleton.Description,
	}
	if pw.Hydrated.GlobalDescription != "" {
		details.Description = pw.Hydrated.GlobalDescription
	}

	if pw.Hydrated.IsEmpty() {
		details.DisplaySteps = skeleton.Steps
		details.ExecutableSteps = skeleton.Steps
	} else {
		switch {
		case len(pw.Hydrated.DisplaySteps) > 0:
			details.DisplaySteps = pw.Hydrated.DisplaySteps
		case len(pw.Hydrated.Steps) > 0:
			details.DisplaySteps = pw.Hydrated.Steps
		default:
			details.DisplaySteps = skeleton.Steps
		}
		if len(pw.Hydrated.Steps) > 0 {
			details.ExecutableSteps = pw.Hydrated.Steps
		} else {
			details.ExecutableSteps = skeleton.Steps
		}
	}
	if details.DisplaySteps == nil {
		details.DisplaySteps = []domain.Step{}
	}
	if details.ExecutableSteps == nil {
		details.ExecutableSteps = []domain.Step{}
	}
	return details, nil
}

// UpdateStatus moves a planned workout to status. Completing stamps completedAt,
// any other status clears it.
func (s *plannedWorkoutService) UpdateStatus(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID, status domain.PlannedWorkoutStatus) (*domain.PlannedWorkout, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	pw, err := s.getOwned(ctx, userID, plannedWorkoutID)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if status == domain.StatusCompleted {
		now := s.now().UTC()
		completedAt = &now
	}
	if err := s.workoutRepo.UpdateStatus(ctx, pw.ID, status, completedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlannedWorkoutNotFound
		}
		return nil, err
	}

	return s.getOwned(ctx, userID, plannedWorkoutID)
}

// getOwned hides workouts of other users behind not-found.
func (s *plannedWorkoutService) getOwned(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID) (*domain.PlannedWorkout, error) {
	pw, err := s.workoutRepo.GetByID(ctx, plannedWorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlannedWorkoutNotFound
		}
		return nil, err
	}
	if pw.UserID != userID {
		return nil, ErrPlannedWorkoutNotFound
	}
	return pw, nil
}
