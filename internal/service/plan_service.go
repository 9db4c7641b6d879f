package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/plan"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/workout"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoCompatibleTemplate = errors.New("no compatible plan template")
	ErrNoActivePlan         = errors.New("no active training plan")
)

// GenerateResult describes a freshly generated plan.
type GenerateResult struct {
	PlanID            primitive.ObjectID `json:"planId"`
	Template          string             `json:"template"`
	Weeks             int                `json:"weeks"`
	StartDate         time.Time          `json:"startDate"`
	WorkoutsScheduled int                `json:"workoutsScheduled"`
	// DroppedTokens counts workouts that did not fit on the preferred days.
	DroppedTokens    int    `json:"droppedTokens"`
	SkeletonsCreated int    `json:"skeletonsCreated"`
	Message          string `json:"message"`
}

type PlanService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*GenerateResult, error)
	Regenerate(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*GenerateResult, error)
	DeletePlan(ctx context.Context, userID primitive.ObjectID) error
	GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
}

// planService implements the PlanService interface.
type planService struct {
	planRepo     repository.TrainingPlanRepository
	workoutRepo  repository.PlannedWorkoutRepository
	templateRepo repository.WorkoutTemplateRepository
	tx           repository.Transactor
	catalog      *plan.Catalog
	library      workout.Library
	now          func() time.Time
}

// PlanServiceOption customizes a plan service.
type PlanServiceOption func(*planService)

// WithCatalog replaces the built-in plan templates.
func WithCatalog(c *plan.Catalog) PlanServiceOption {
	return func(s *planService) { s.catalog = c }
}

// WithLibrary replaces the built-in workout library.
func WithLibrary(l workout.Library) PlanServiceOption {
	return func(s *planService) { s.library = l }
}

// WithClock sets the source of "today".
func WithClock(now func() time.Time) PlanServiceOption {
	return func(s *planService) { s.now = now }
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.PlannedWorkoutRepository,
	templateRepo repository.WorkoutTemplateRepository,
	tx repository.Transactor,
	opts ...PlanServiceOption,
) PlanService {
	s := &planService{
		planRepo:     planRepo,
		workoutRepo:  workoutRepo,
		templateRepo: templateRepo,
		tx:           tx,
		catalog:      plan.DefaultCatalog(),
		library:      workout.DefaultLibrary,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GeneratePlan replaces the user's plan with one built from the goal's template.
// Everything after the template lookup runs in one transaction.
func (s *planService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*GenerateResult, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	log := logrus.WithFields(logrus.Fields{"user": userID.Hex(), "goal": training.GoalDistance})

	key, tmpl, err := s.catalog.Lookup(training.GoalDistance)
	if err != nil {
		return nil, fmt.Errorf("%w: goal %q resolved to %q", ErrNoCompatibleTemplate, training.GoalDistance, key)
	}

	units := display.UnitSystem
	if !units.IsValid() {
		units = domain.UnitsImperial
	}

	var result *GenerateResult
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Regeneration: nothing from a previous plan survives.
		deleted, err := s.workoutRepo.DeleteByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("delete planned workouts: %w", err)
		}
		deactivated, err := s.planRepo.DeactivateAllForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("deactivate plans: %w", err)
		}
		log.Debugf("cleared %d planned workouts, deactivated %d plans", deleted, deactivated)

		startOfWeek := plan.StartOfWeek(s.now(), display.WeekStartDay)
		preferred, unknown := plan.PreferredDayIndices(training.PreferredDays, display.WeekStartDay)
		if len(unknown) > 0 {
			log.Warnf("ignoring unknown preferred days: %s", strings.Join(unknown, ", "))
		}

		registry := NewSkeletonRegistry(s.templateRepo, s.library)
		weeks := make([]domain.Week, 0, len(tmpl.Weeks))
		var queued []domain.PlannedWorkout
		dropped := 0

		for weekIndex, templateWeek := range tmpl.Weeks {
			schedule, n := plan.Distribute(templateWeek, preferred)
			if n > 0 {
				log.Warnf("week %d: %d workouts do not fit on %d preferred days and were dropped", weekIndex+1, n, len(preferred))
				dropped += n
			}

			week := domain.Week{
				Week:       weekIndex + 1,
				MicroCycle: plan.MicroCycle(weekIndex),
				Days:       make([]domain.DayEntry, 0, plan.DaysPerWeek),
			}
			for slot, token := range schedule {
				base, param := token.Split()
				skeletonID, err := registry.GetOrCreate(ctx, base)
				if err != nil {
					return err
				}
				date := plan.DateFor(startOfWeek, weekIndex, slot)

				entry, _ := s.library.Lookup(base)
				if !token.IsRest() {
					queued = append(queued, domain.PlannedWorkout{
						UserID:            userID,
						WorkoutTemplateID: skeletonID,
						ScheduledDate:     date,
						Status:            domain.StatusScheduled,
						Token:             token,
						Hydrated:          s.library.Hydrate(base, param, units),
					})
				}

				id := skeletonID
				week.Days = append(week.Days, domain.DayEntry{
					Date:              date,
					WorkoutTemplateID: &id,
					Description:       token,
					Type:              dayType(token, base, entry),
				})
			}
			weeks = append(weeks, week)
		}

		daysPerWeek := training.DaysPerWeek
		if daysPerWeek == 0 {
			daysPerWeek = len(preferred)
		}
		trainingPlan := &domain.TrainingPlan{
			UserID: userID,
			Meta: domain.PlanMeta{
				Goal:        training.GoalDistance,
				Template:    key,
				Weeks:       len(weeks),
				Level:       training.FitnessLevel,
				DaysPerWeek: daysPerWeek,
			},
			IsActive: true,
			Plan:     weeks,
		}
		planID, err := s.planRepo.Create(ctx, trainingPlan)
		if err != nil {
			return fmt.Errorf("create training plan: %w", err)
		}

		for i := range queued {
			queued[i].TrainingPlanID = planID
		}
		if _, err := s.workoutRepo.CreateMany(ctx, queued); err != nil {
			return fmt.Errorf("create planned workouts: %w", err)
		}

		result = &GenerateResult{
			PlanID:            planID,
			Template:          key,
			Weeks:             len(weeks),
			StartDate:         startOfWeek,
			WorkoutsScheduled: len(queued),
			DroppedTokens:     dropped,
			SkeletonsCreated:  registry.Len(),
			Message:           generateMessage(len(weeks), key, startOfWeek, len(queued), dropped),
		}
		return nil
	})
	if err != nil {
		log.Errorf("generate plan: %s", err)
		return nil, err
	}

	log.WithField("plan", result.PlanID.Hex()).Infof("generated %d-week plan with %d workouts", result.Weeks, result.WorkoutsScheduled)
	return result, nil
}

// Regenerate clears the user's planned workouts and generates a new plan.
func (s *planService) Regenerate(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*GenerateResult, error) {
	if _, err := s.workoutRepo.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete planned workouts: %w", err)
	}
	return s.GeneratePlan(ctx, userID, training, display)
}

// DeletePlan removes the user's planned workouts and deactivates every plan.
func (s *planService) DeletePlan(ctx context.Context, userID primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.workoutRepo.DeleteByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("delete planned workouts: %w", err)
		}
		deactivated, err := s.planRepo.DeactivateAllForUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("deactivate plans: %w", err)
		}
		logrus.WithField("user", userID.Hex()).Infof("plan deleted: %d planned workouts removed, %d plans deactivated", deleted, deactivated)
		return nil
	})
}

// GetActivePlan returns the user's active plan.
func (s *planService) GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	p, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	return p, nil
}

// dayType is the library subtype, then type; rest days use the lower-cased base.
func dayType(token domain.Token, base string, entry *workout.Entry) string {
	if token.IsRest() || entry == nil {
		return strings.ToLower(base)
	}
	if entry.SubType != "" {
		return entry.SubType
	}
	return entry.Type
}

func generateMessage(weeks int, template string, start time.Time, workouts, dropped int) string {
	msg := fmt.Sprintf("Generated a %d-week %s plan starting %s with %d workouts.", weeks, template, start.Format("2006-01-02"), workouts)
	if dropped > 0 {
		msg += fmt.Sprintf(" %d workouts did not fit on your preferred days.", dropped)
	}
	return msg
}
