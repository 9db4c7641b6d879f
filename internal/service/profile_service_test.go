package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository/memory"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileService_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(memory.NewStore().Profiles())
	userID := primitive.NewObjectID()

	_, err := svc.GetProfile(ctx, userID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	training, display := fiveKProfile()
	display.UnitSystem = ""
	saved, err := svc.UpdateProfile(ctx, userID, training, display)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitsImperial, saved.Display.UnitSystem)

	got, err := svc.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, training, got.Training)
	assert.Equal(t, domain.UnitsImperial, got.Display.UnitSystem)
}

func TestProfileService_Validation(t *testing.T) {
	svc := NewProfileService(memory.NewStore().Profiles())

	tests := []struct {
		name   string
		mutate func(*domain.TrainingProfile, *domain.DisplayProfile)
	}{
		{"missing goal", func(tp *domain.TrainingProfile, _ *domain.DisplayProfile) { tp.GoalDistance = "" }},
		{"no days", func(tp *domain.TrainingProfile, _ *domain.DisplayProfile) { tp.PreferredDays = nil }},
		{"bad weekday", func(tp *domain.TrainingProfile, _ *domain.DisplayProfile) { tp.PreferredDays = []string{"Mon", "Funday"} }},
		{"too many days", func(tp *domain.TrainingProfile, _ *domain.DisplayProfile) { tp.DaysPerWeek = 8 }},
		{"week start", func(_ *domain.TrainingProfile, dp *domain.DisplayProfile) { dp.WeekStartDay = 3 }},
		{"units", func(_ *domain.TrainingProfile, dp *domain.DisplayProfile) { dp.UnitSystem = "furlongs" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			training, display := fiveKProfile()
			tt.mutate(&training, &display)
			_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), training, display)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}
