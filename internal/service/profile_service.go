package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/plan"
	"alcyxob/run-coach/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProfileNotFound = errors.New("training profile not found")
	ErrInvalidProfile  = errors.New("invalid training profile")
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*domain.UserProfile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*domain.UserProfile, error) {
	if err := validateProfile(training, display); err != nil {
		return nil, err
	}
	if display.UnitSystem == "" {
		display.UnitSystem = domain.UnitsImperial
	}

	profile := &domain.UserProfile{
		UserID:   userID,
		Training: training,
		Display:  display,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func validateProfile(training domain.TrainingProfile, display domain.DisplayProfile) error {
	if training.GoalDistance == "" {
		return fmt.Errorf("%w: goal distance is required", ErrInvalidProfile)
	}
	if len(training.PreferredDays) == 0 {
		return fmt.Errorf("%w: at least one preferred day is required", ErrInvalidProfile)
	}
	for _, d := range training.PreferredDays {
		if _, ok := plan.WeekdayIndex(d, display.WeekStartDay); !ok {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidProfile, d)
		}
	}
	if training.DaysPerWeek < 0 || training.DaysPerWeek > plan.DaysPerWeek {
		return fmt.Errorf("%w: days per week must be between 0 and %d", ErrInvalidProfile, plan.DaysPerWeek)
	}
	if display.WeekStartDay != domain.WeekStartSunday && display.WeekStartDay != domain.WeekStartMonday {
		return fmt.Errorf("%w: week start day must be 0 (Sunday) or 1 (Monday)", ErrInvalidProfile)
	}
	if display.UnitSystem != "" && !display.UnitSystem.IsValid() {
		return fmt.Errorf("%w: unit system must be %q or %q", ErrInvalidProfile, domain.UnitsMetric, domain.UnitsImperial)
	}
	return nil
}
