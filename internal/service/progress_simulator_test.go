package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/repository/memory"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestSimulator(store *memory.Store, bufferDays int) ProgressSimulator {
	return NewProgressSimulator(store.TrainingPlans(), store.PlannedWorkouts(), store.Activities(), store, bufferDays, 42)
}

func generateFiveK(t *testing.T, store *memory.Store, userID primitive.ObjectID) *GenerateResult {
	t.Helper()
	training, display := fiveKProfile()
	result, err := newTestPlanService(store).GeneratePlan(context.Background(), userID, training, display)
	require.NoError(t, err)
	return result
}

func TestSimulateProgress_ShiftsAndCompletes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	generated := generateFiveK(t, store, userID)
	before := allPlannedWorkouts(t, store, userID)

	summary, err := newTestSimulator(store, 0).SimulateProgress(ctx, userID, 2)
	require.NoError(t, err)

	assert.Equal(t, generated.PlanID, summary.PlanID)
	assert.Equal(t, 2, summary.WeeksCompleted)
	assert.Equal(t, 14, summary.ShiftDays)
	assert.Equal(t, date(2026, time.October, 5), summary.NewStartDate)
	assert.Equal(t, 27, summary.WorkoutsRescheduled)
	assert.Equal(t, 6, summary.ActivitiesCreated)
	assert.Equal(t, 6, summary.WorkoutsCompleted)
	assert.NotEmpty(t, summary.SimulationRunID)

	after := allPlannedWorkouts(t, store, userID)
	require.Len(t, after, len(before))
	beforeByID := make(map[primitive.ObjectID]domain.PlannedWorkout, len(before))
	for _, pw := range before {
		beforeByID[pw.ID] = pw
	}
	completed := 0
	for _, pw := range after {
		orig := beforeByID[pw.ID]
		assert.Equal(t, orig.ScheduledDate.AddDate(0, 0, -14), pw.ScheduledDate)
		if pw.Status == domain.StatusCompleted {
			completed++
			require.NotNil(t, pw.CompletedAt)
			assert.True(t, pw.ScheduledDate.Before(date(2026, time.October, 19)))
		} else {
			assert.Equal(t, domain.StatusScheduled, pw.Status)
			assert.Nil(t, pw.CompletedAt)
		}
	}
	assert.Equal(t, 6, completed)

	active, err := store.TrainingPlans().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 5), active.StartDate())
	assert.Equal(t, date(2026, time.October, 19), active.Plan[2].Days[0].Date)

	activities, err := store.Activities().ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, activities, 6)
	for _, a := range activities {
		assert.Equal(t, domain.ActivitySourceSimulation, a.Source)
		assert.Equal(t, summary.SimulationRunID, a.SimulationRunID)
		assert.Equal(t, "walk_run", a.Type)
		assert.GreaterOrEqual(t, a.DurationSeconds, 20*60)
		assert.LessOrEqual(t, a.DurationSeconds, 35*60)
		assert.GreaterOrEqual(t, a.DistanceMeters, 2000.0)
		assert.LessOrEqual(t, a.DistanceMeters, 4000.0)
		assert.Positive(t, a.Calories)
		require.NotNil(t, a.PlannedWorkoutID)
	}
}

var errTransientCommit = errors.New("transient transaction error")

// retryingTransactor rolls back the first attempts after fn succeeded and runs fn
// again, the way a driver retries on a transient commit error.
type retryingTransactor struct {
	inner   repository.Transactor
	retries int
	calls   int
}

func (r *retryingTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	for i := 0; i < r.retries; i++ {
		r.calls++
		err := r.inner.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := fn(ctx); err != nil {
				return err
			}
			return errTransientCommit
		})
		if !errors.Is(err, errTransientCommit) {
			return err
		}
	}
	r.calls++
	return r.inner.WithinTransaction(ctx, fn)
}

func TestSimulateProgress_RetriedTransaction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	generateFiveK(t, store, userID)

	tx := &retryingTransactor{inner: store, retries: 1}
	sim := NewProgressSimulator(store.TrainingPlans(), store.PlannedWorkouts(), store.Activities(), tx, 0, 42)
	summary, err := sim.SimulateProgress(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.calls)

	assert.Equal(t, 27, summary.WorkoutsRescheduled)
	assert.Equal(t, 6, summary.WorkoutsCompleted)
	assert.Equal(t, 6, summary.ActivitiesCreated)
	assert.Equal(t, date(2026, time.October, 5), summary.NewStartDate)

	active, err := store.TrainingPlans().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 5), active.StartDate())

	workouts := allPlannedWorkouts(t, store, userID)
	require.NotEmpty(t, workouts)
	assert.Equal(t, date(2026, time.October, 5), workouts[0].ScheduledDate)
	planDates := make(map[int64]bool)
	for _, week := range active.Plan {
		for _, day := range week.Days {
			planDates[day.Date.Unix()] = true
		}
	}
	for _, pw := range workouts {
		assert.True(t, planDates[pw.ScheduledDate.Unix()], "workout on %s has no plan day", pw.ScheduledDate)
	}

	activities, err := store.Activities().ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, activities, 6)
}

func TestSimulateProgress_BufferDays(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	generateFiveK(t, store, userID)

	summary, err := newTestSimulator(store, 3).SimulateProgress(context.Background(), userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, summary.ShiftDays)
	assert.Equal(t, date(2026, time.October, 9), summary.NewStartDate)
	assert.Equal(t, 3, summary.ActivitiesCreated)
}

func TestSimulateProgress_ClampsToPlanLength(t *testing.T) {
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	generateFiveK(t, store, userID)

	summary, err := newTestSimulator(store, 0).SimulateProgress(context.Background(), userID, 50)
	require.NoError(t, err)
	assert.Equal(t, 9, summary.WeeksCompleted)
	assert.Equal(t, 27, summary.ActivitiesCreated)
}

func TestSimulateProgress_Errors(t *testing.T) {
	store := memory.NewStore()
	sim := newTestSimulator(store, 0)

	_, err := sim.SimulateProgress(context.Background(), primitive.NewObjectID(), 2)
	assert.ErrorIs(t, err, ErrNoActivePlan)

	_, err = sim.SimulateProgress(context.Background(), primitive.NewObjectID(), 0)
	assert.ErrorIs(t, err, ErrInvalidSimulationWeeks)
}

func TestRangeFor(t *testing.T) {
	assert.Equal(t, walkRunRange, rangeFor("WR"))
	assert.Equal(t, easyRange, rangeFor("E"))
	assert.Equal(t, longRange, rangeFor("L"))
	assert.Equal(t, crossRange, rangeFor("X"))
	assert.Equal(t, tempoRange, rangeFor("T"))
	assert.Equal(t, fallbackRange, rangeFor("Q"))
}
