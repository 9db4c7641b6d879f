package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/plan"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func repositoryFilter(from, to *time.Time) repository.PlannedWorkoutFilter {
	return repository.PlannedWorkoutFilter{From: from, To: to}
}

func TestGeneratePlan_FiveKMondayAnchored(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()

	result, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 9, result.Weeks)
	assert.Equal(t, plan.Template5K, result.Template)
	assert.Equal(t, date(2026, time.October, 19), result.StartDate)
	assert.Equal(t, 27, result.WorkoutsScheduled)
	assert.Zero(t, result.DroppedTokens)
	assert.NotEmpty(t, result.Message)

	active, err := store.TrainingPlans().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	skeletons := make(map[primitive.ObjectID]bool)
	for _, week := range active.Plan {
		for _, day := range week.Days {
			require.NotNil(t, day.WorkoutTemplateID)
			skeletons[*day.WorkoutTemplateID] = true
		}
	}
	assert.Equal(t, len(skeletons), result.SkeletonsCreated)

	from, to := date(2026, time.October, 19), date(2026, time.October, 26)
	week1, err := store.PlannedWorkouts().ListByUserID(ctx, userID, repositoryFilter(&from, &to))
	require.NoError(t, err)
	require.Len(t, week1, 3)

	wantDates := []time.Time{
		date(2026, time.October, 19),
		date(2026, time.October, 21),
		date(2026, time.October, 23),
	}
	for i, pw := range week1 {
		assert.Equal(t, wantDates[i], pw.ScheduledDate)
		assert.Equal(t, domain.Token("WR/1"), pw.Token)
		assert.Equal(t, "1", pw.Hydrated.Variant)
		assert.Equal(t, domain.StatusScheduled, pw.Status)
		assert.Equal(t, result.PlanID, pw.TrainingPlanID)

		mainSets := 0
		for _, step := range pw.Hydrated.DisplaySteps {
			if step.Label == "Main Set" {
				mainSets++
			}
		}
		assert.Equal(t, 1, mainSets, "display steps of %s", pw.ScheduledDate)
	}
}

func TestGeneratePlan_PlanStructure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()

	result, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)

	active, err := svc.GetActivePlan(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, result.PlanID, active.ID)
	assert.True(t, active.IsActive)
	assert.Equal(t, domain.PlanMeta{
		Goal:        "5K",
		Template:    plan.Template5K,
		Weeks:       9,
		Level:       "beginner",
		DaysPerWeek: 3,
	}, active.Meta)

	require.Len(t, active.Plan, 9)
	assert.Equal(t, 1, active.Plan[0].MicroCycle)
	assert.Equal(t, 2, active.Plan[4].MicroCycle)
	assert.Equal(t, 3, active.Plan[8].MicroCycle)

	week1 := active.Plan[0]
	require.Len(t, week1.Days, 7)
	for slot, day := range week1.Days {
		assert.Equal(t, date(2026, time.October, 19+slot), day.Date)
		require.NotNil(t, day.WorkoutTemplateID)
		switch slot {
		case 0, 2, 4:
			assert.Equal(t, domain.Token("WR/1"), day.Description)
			assert.Equal(t, "walk_run", day.Type)
		default:
			assert.Equal(t, domain.Token("R"), day.Description)
			assert.Equal(t, "r", day.Type)
		}
	}

	// One skeleton per base code is shared across all weeks.
	assert.Equal(t, *week1.Days[0].WorkoutTemplateID, *active.Plan[8].Days[4].WorkoutTemplateID)
	assert.Equal(t, *week1.Days[1].WorkoutTemplateID, *week1.Days[6].WorkoutTemplateID)
	assert.NotEqual(t, *week1.Days[0].WorkoutTemplateID, *week1.Days[1].WorkoutTemplateID)
}

func TestGeneratePlan_DropsWorkoutsBeyondPreferredDays(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()

	// 10K week 1 holds four workouts: L3, E2, X30, E2.
	training := domain.TrainingProfile{
		GoalDistance:  "10k",
		PreferredDays: []string{"Tue", "Thu", "Sat"},
	}
	display := domain.DisplayProfile{WeekStartDay: domain.WeekStartMonday, UnitSystem: domain.UnitsImperial}

	result, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)
	assert.Equal(t, plan.Template10K, result.Template)
	assert.Positive(t, result.DroppedTokens)

	from, to := date(2026, time.October, 19), date(2026, time.October, 26)
	week1, err := store.PlannedWorkouts().ListByUserID(ctx, userID, repositoryFilter(&from, &to))
	require.NoError(t, err)
	require.Len(t, week1, 3)

	assert.Equal(t, domain.Token("L3"), week1[0].Token)
	assert.Equal(t, date(2026, time.October, 20), week1[0].ScheduledDate)
	assert.Equal(t, domain.Token("E2"), week1[1].Token)
	assert.Equal(t, date(2026, time.October, 22), week1[1].ScheduledDate)
	assert.Equal(t, domain.Token("X30"), week1[2].Token)
	assert.Equal(t, date(2026, time.October, 24), week1[2].ScheduledDate)

	active, err := svc.GetActivePlan(ctx, userID)
	require.NoError(t, err)
	// Days per week falls back to the number of preferred days.
	assert.Equal(t, 3, active.Meta.DaysPerWeek)
}

func TestGeneratePlan_PreferredDayOrderIsKept(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()

	training := domain.TrainingProfile{
		GoalDistance:  "10k",
		PreferredDays: []string{"Sat", "Mon", "Wed", "Thu"},
	}
	display := domain.DisplayProfile{WeekStartDay: domain.WeekStartMonday, UnitSystem: domain.UnitsImperial}

	result, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)
	assert.Zero(t, result.DroppedTokens)

	active, err := svc.GetActivePlan(ctx, userID)
	require.NoError(t, err)
	days := active.Plan[0].Days
	assert.Equal(t, domain.Token("L3"), days[5].Description)  // Sat
	assert.Equal(t, domain.Token("E2"), days[0].Description)  // Mon
	assert.Equal(t, domain.Token("X30"), days[2].Description) // Wed
	assert.Equal(t, domain.Token("E2"), days[3].Description)  // Thu
	assert.Equal(t, "long", days[5].Type)
}

func TestGeneratePlan_RegenerationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()

	first, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)
	second, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)
	require.NotEqual(t, first.PlanID, second.PlanID)

	plans, err := store.TrainingPlans().ListByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	activeCount := 0
	for _, p := range plans {
		if p.IsActive {
			activeCount++
			assert.Equal(t, second.PlanID, p.ID)
		}
	}
	assert.Equal(t, 1, activeCount)

	workouts := allPlannedWorkouts(t, store, userID)
	assert.Len(t, workouts, second.WorkoutsScheduled)
	for _, pw := range workouts {
		assert.Equal(t, second.PlanID, pw.TrainingPlanID)
	}
}

func TestGeneratePlan_UnknownBaseLeavesPreviousState(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()

	first, err := newTestPlanService(store).GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)

	broken := plan.NewCatalog(map[string]plan.Template{
		plan.Template5K: {
			Name: "broken",
			Weeks: []plan.WeekTokens{
				{"R", "WR/1", "R", "WR/1", "R", "WR/1", "R"},
				{"R", "ZZ3", "R", "WR/1", "R", "WR/1", "R"},
			},
		},
	})
	_, err = newTestPlanService(store, WithCatalog(broken)).GeneratePlan(ctx, userID, training, display)
	require.ErrorIs(t, err, ErrUnknownWorkoutBase)
	assert.Contains(t, err.Error(), "ZZ")

	active, err := store.TrainingPlans().GetActiveByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.PlanID, active.ID)

	plans, err := store.TrainingPlans().ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Len(t, allPlannedWorkouts(t, store, userID), first.WorkoutsScheduled)
}

func TestGeneratePlan_NoCompatibleTemplate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store, WithCatalog(plan.NewCatalog(map[string]plan.Template{})))
	training, display := fiveKProfile()

	_, err := svc.GeneratePlan(ctx, primitive.NewObjectID(), training, display)
	require.ErrorIs(t, err, ErrNoCompatibleTemplate)
}

func TestGeneratePlan_UnknownGoalFallsBackToFiveK(t *testing.T) {
	store := memory.NewStore()
	svc := newTestPlanService(store)
	training, display := fiveKProfile()
	training.GoalDistance = "ultra"

	result, err := svc.GeneratePlan(context.Background(), primitive.NewObjectID(), training, display)
	require.NoError(t, err)
	assert.Equal(t, plan.Template5K, result.Template)
}

func TestGeneratePlan_SundayAnchoredWeek(t *testing.T) {
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()
	display.WeekStartDay = domain.WeekStartSunday

	result, err := svc.GeneratePlan(context.Background(), userID, training, display)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 18), result.StartDate)

	workouts := allPlannedWorkouts(t, store, userID)
	require.NotEmpty(t, workouts)
	// Mon is slot 1 when weeks start on Sunday.
	assert.Equal(t, date(2026, time.October, 19), workouts[0].ScheduledDate)
}

func TestDeletePlan(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()

	_, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(ctx, userID))

	_, err = svc.GetActivePlan(ctx, userID)
	assert.ErrorIs(t, err, ErrNoActivePlan)
	assert.Empty(t, allPlannedWorkouts(t, store, userID))

	plans, err := store.TrainingPlans().ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestRegenerate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	userID := primitive.NewObjectID()
	training, display := fiveKProfile()

	_, err := svc.GeneratePlan(ctx, userID, training, display)
	require.NoError(t, err)

	training.GoalDistance = "half marathon"
	result, err := svc.Regenerate(ctx, userID, training, display)
	require.NoError(t, err)
	assert.Equal(t, plan.TemplateHalfMarathon, result.Template)

	active, err := svc.GetActivePlan(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, result.PlanID, active.ID)
	assert.Len(t, allPlannedWorkouts(t, store, userID), result.WorkoutsScheduled)
}

func TestGeneratePlan_IsolatesUsers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newTestPlanService(store)
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	training, display := fiveKProfile()

	_, err := svc.GeneratePlan(ctx, alice, training, display)
	require.NoError(t, err)
	bobResult, err := svc.GeneratePlan(ctx, bob, training, display)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(ctx, alice))

	active, err := svc.GetActivePlan(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, bobResult.PlanID, active.ID)
	assert.Len(t, allPlannedWorkouts(t, store, bob), bobResult.WorkoutsScheduled)
}
