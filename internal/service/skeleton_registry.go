package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/workout"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnknownWorkoutBase is returned when a plan template references a base code
// the workout library does not define.
var ErrUnknownWorkoutBase = errors.New("unknown workout base")

const skeletonNamePrefix = "TOKEN_"

// SkeletonRegistry persists one skeleton record per base code and remembers its id.
// A registry lives for a single plan generation; it is keyed only by base code,
// so it must never be shared between generations or users.
type SkeletonRegistry struct {
	repo    repository.WorkoutTemplateRepository
	library workout.Library
	ids     map[string]primitive.ObjectID
}

// NewSkeletonRegistry creates an empty registry.
func NewSkeletonRegistry(repo repository.WorkoutTemplateRepository, library workout.Library) *SkeletonRegistry {
	return &SkeletonRegistry{
		repo:    repo,
		library: library,
		ids:     make(map[string]primitive.ObjectID),
	}
}

// GetOrCreate returns the skeleton id for base, persisting the skeleton on first use.
func (r *SkeletonRegistry) GetOrCreate(ctx context.Context, base string) (primitive.ObjectID, error) {
	if id, ok := r.ids[base]; ok {
		return id, nil
	}

	entry, ok := r.library.Lookup(base)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrUnknownWorkoutBase, base)
	}

	// Steps stay empty; they are produced per day by hydration.
	skeleton := &domain.WorkoutTemplate{
		Name:        skeletonNamePrefix + base,
		Base:        base,
		Type:        entry.Type,
		SubType:     entry.SubType,
		Description: entry.Description,
		Steps:       []domain.Step{},
	}
	id, err := r.repo.Create(ctx, skeleton)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create skeleton %s: %w", skeleton.Name, err)
	}

	r.ids[base] = id
	return id, nil
}

// Len returns the number of skeletons resolved so far.
func (r *SkeletonRegistry) Len() int {
	return len(r.ids)
}
