package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/plan"
	"alcyxob/run-coach/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidSimulationWeeks = errors.New("weeks to complete must be at least 1")

// SimulationSummary reports what a simulation run changed.
type SimulationSummary struct {
	PlanID              primitive.ObjectID `json:"planId"`
	SimulationRunID     string             `json:"simulationRunId"`
	WeeksCompleted      int                `json:"weeksCompleted"`
	ShiftDays           int                `json:"shiftDays"`
	NewStartDate        time.Time          `json:"newStartDate"`
	WorkoutsRescheduled int                `json:"workoutsRescheduled"`
	WorkoutsCompleted   int                `json:"workoutsCompleted"`
	ActivitiesCreated   int                `json:"activitiesCreated"`
}

// ProgressSimulator moves a plan into the past and fills it with synthetic activities.
// Intended for demos and tests; generated activities carry the simulation source tag.
type ProgressSimulator interface {
	SimulateProgress(ctx context.Context, userID primitive.ObjectID, weeksToComplete int) (*SimulationSummary, error)
}

type progressSimulator struct {
	planRepo     repository.TrainingPlanRepository
	workoutRepo  repository.PlannedWorkoutRepository
	activityRepo repository.ActivityRepository
	tx           repository.Transactor
	faker        *gofakeit.Faker
	bufferDays   int
}

// NewProgressSimulator creates a simulator. A zero seed picks a random one.
func NewProgressSimulator(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.PlannedWorkoutRepository,
	activityRepo repository.ActivityRepository,
	tx repository.Transactor,
	bufferDays int,
	seed int64,
) ProgressSimulator {
	return &progressSimulator{
		planRepo:     planRepo,
		workoutRepo:  workoutRepo,
		activityRepo: activityRepo,
		tx:           tx,
		faker:        gofakeit.New(seed),
		bufferDays:   bufferDays,
	}
}

type dayKey struct {
	date       int64
	skeletonID primitive.ObjectID
}

func keyFor(date time.Time, skeletonID primitive.ObjectID) dayKey {
	return dayKey{date: date.Unix(), skeletonID: skeletonID}
}

func (s *progressSimulator) SimulateProgress(ctx context.Context, userID primitive.ObjectID, weeksToComplete int) (*SimulationSummary, error) {
	if weeksToComplete < 1 {
		return nil, ErrInvalidSimulationWeeks
	}

	active, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	if weeksToComplete > len(active.Plan) {
		weeksToComplete = len(active.Plan)
	}

	shiftDays := weeksToComplete*plan.DaysPerWeek + s.bufferDays
	newStart := active.StartDate().AddDate(0, 0, -shiftDays)
	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"user": userID.Hex(), "plan": active.ID.Hex(), "run": runID})

	// The callback may run more than once; each attempt shifts its own copy of the
	// weeks and the summary is published only on success.
	var summary *SimulationSummary
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		attempt := &SimulationSummary{
			PlanID:          active.ID,
			SimulationRunID: runID,
			WeeksCompleted:  weeksToComplete,
			ShiftDays:       shiftDays,
			NewStartDate:    newStart,
		}
		weeks := cloneWeeks(active.Plan)

		workouts, err := s.workoutRepo.ListByPlanID(ctx, active.ID)
		if err != nil {
			return fmt.Errorf("list planned workouts: %w", err)
		}
		// Keys use the dates as stored, before anything is shifted.
		byDay := make(map[dayKey]domain.PlannedWorkout, len(workouts))
		for _, w := range workouts {
			byDay[keyFor(w.ScheduledDate, w.WorkoutTemplateID)] = w
		}

		for wi := range weeks {
			week := &weeks[wi]
			for di := range week.Days {
				day := &week.Days[di]
				original := day.Date
				shifted := original.AddDate(0, 0, -shiftDays)
				day.Date = shifted

				if day.WorkoutTemplateID == nil || day.Description.IsRest() {
					continue
				}
				pw, ok := byDay[keyFor(original, *day.WorkoutTemplateID)]
				if !ok {
					continue
				}
				if err := s.workoutRepo.UpdateScheduledDate(ctx, pw.ID, shifted); err != nil {
					return fmt.Errorf("reschedule planned workout %s: %w", pw.ID.Hex(), err)
				}
				attempt.WorkoutsRescheduled++

				if wi >= weeksToComplete {
					continue
				}
				activity := s.synthesize(userID, pw, shifted, runID)
				if _, err := s.activityRepo.Create(ctx, activity); err != nil {
					return fmt.Errorf("create simulated activity: %w", err)
				}
				attempt.ActivitiesCreated++

				completedAt := activity.StartedAt.Add(time.Duration(activity.DurationSeconds) * time.Second)
				if err := s.workoutRepo.UpdateStatus(ctx, pw.ID, domain.StatusCompleted, &completedAt); err != nil {
					return fmt.Errorf("complete planned workout %s: %w", pw.ID.Hex(), err)
				}
				attempt.WorkoutsCompleted++
			}
		}

		if err := s.planRepo.UpdateWeeks(ctx, active.ID, weeks); err != nil {
			return fmt.Errorf("update plan dates: %w", err)
		}
		summary = attempt
		return nil
	})
	if err != nil {
		log.Errorf("simulate progress: %s", err)
		return nil, err
	}

	log.Infof("simulated %d weeks: %d activities, plan now starts %s",
		weeksToComplete, summary.ActivitiesCreated, newStart.Format("2006-01-02"))
	return summary, nil
}

func cloneWeeks(weeks []domain.Week) []domain.Week {
	out := make([]domain.Week, len(weeks))
	for i, w := range weeks {
		out[i] = w
		out[i].Days = append([]domain.DayEntry(nil), w.Days...)
	}
	return out
}

// activityRange is the plausible envelope of one workout category.
type activityRange struct {
	activityType string
	minMinutes   int
	maxMinutes   int
	minMeters    float64
	maxMeters    float64
	minCalPerMin int
	maxCalPerMin int
}

var (
	walkRunRange  = activityRange{"walk_run", 20, 35, 2000, 4000, 6, 9}
	easyRange     = activityRange{"run", 25, 50, 4000, 8000, 9, 12}
	longRange     = activityRange{"run", 60, 130, 10000, 22000, 10, 13}
	crossRange    = activityRange{"cross_training", 30, 60, 0, 0, 6, 10}
	tempoRange    = activityRange{"run", 30, 50, 6000, 10000, 11, 14}
	fallbackRange = activityRange{"run", 20, 45, 3000, 7000, 8, 12}
)

func rangeFor(base string) activityRange {
	switch base {
	case "WR":
		return walkRunRange
	case "E":
		return easyRange
	case "L":
		return longRange
	case "X", "F":
		return crossRange
	case "T", "U":
		return tempoRange
	default:
		return fallbackRange
	}
}

func (s *progressSimulator) synthesize(userID primitive.ObjectID, pw domain.PlannedWorkout, date time.Time, runID string) *domain.Activity {
	base, _ := pw.Token.Split()
	r := rangeFor(base)

	minutes := s.faker.Number(r.minMinutes, r.maxMinutes)
	var meters float64
	if r.maxMeters > 0 {
		meters = float64(int(s.faker.Float64Range(r.minMeters, r.maxMeters)))
	}
	startHour := s.faker.Number(6, 19)
	startMinute := s.faker.Number(0, 59)
	pwID := pw.ID

	return &domain.Activity{
		UserID:           userID,
		PlannedWorkoutID: &pwID,
		Type:             r.activityType,
		StartedAt:        date.Add(time.Duration(startHour)*time.Hour + time.Duration(startMinute)*time.Minute),
		DurationSeconds:  minutes * 60,
		DistanceMeters:   meters,
		Calories:         minutes * s.faker.Number(r.minCalPerMin, r.maxCalPerMin),
		Source:           domain.ActivitySourceSimulation,
		SimulationRunID:  runID,
	}
}
