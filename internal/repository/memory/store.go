// Package memory is an in-process implementation of the repository interfaces,
// used for local development and tests.
package memory

import (
	"alcyxob/run-coach/internal/domain"
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one mutex.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	plans     map[primitive.ObjectID]domain.TrainingPlan
	workouts  map[primitive.ObjectID]domain.PlannedWorkout
	templates map[primitive.ObjectID]domain.WorkoutTemplate
	activity  map[primitive.ObjectID]domain.Activity
	profiles  map[primitive.ObjectID]domain.UserProfile
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		plans:     make(map[primitive.ObjectID]domain.TrainingPlan),
		workouts:  make(map[primitive.ObjectID]domain.PlannedWorkout),
		templates: make(map[primitive.ObjectID]domain.WorkoutTemplate),
		activity:  make(map[primitive.ObjectID]domain.Activity),
		profiles:  make(map[primitive.ObjectID]domain.UserProfile),
	}
}

// WithinTransaction runs fn and restores the previous contents if it fails.
// Transactions are serialized; writes made outside a transaction while one is
// running are lost if it rolls back.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	plans     map[primitive.ObjectID]domain.TrainingPlan
	workouts  map[primitive.ObjectID]domain.PlannedWorkout
	templates map[primitive.ObjectID]domain.WorkoutTemplate
	activity  map[primitive.ObjectID]domain.Activity
	profiles  map[primitive.ObjectID]domain.UserProfile
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		plans:     copyMap(s.plans, clonePlan),
		workouts:  copyMap(s.workouts, clonePlannedWorkout),
		templates: copyMap(s.templates, cloneTemplate),
		activity:  copyMap(s.activity, func(a domain.Activity) domain.Activity { return a }),
		profiles:  copyMap(s.profiles, cloneProfile),
	}
}

func (s *Store) restore(snap snapshot) {
	s.plans = snap.plans
	s.workouts = snap.workouts
	s.templates = snap.templates
	s.activity = snap.activity
	s.profiles = snap.profiles
}

func copyMap[V any](m map[primitive.ObjectID]V, clone func(V) V) map[primitive.ObjectID]V {
	out := make(map[primitive.ObjectID]V, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func cloneSteps(steps []domain.Step) []domain.Step {
	if steps == nil {
		return nil
	}
	out := make([]domain.Step, len(steps))
	copy(out, steps)
	return out
}

func clonePlan(p domain.TrainingPlan) domain.TrainingPlan {
	if p.Plan != nil {
		weeks := make([]domain.Week, len(p.Plan))
		for i, w := range p.Plan {
			days := make([]domain.DayEntry, len(w.Days))
			copy(days, w.Days)
			w.Days = days
			weeks[i] = w
		}
		p.Plan = weeks
	}
	return p
}

func clonePlannedWorkout(w domain.PlannedWorkout) domain.PlannedWorkout {
	w.Hydrated.Steps = cloneSteps(w.Hydrated.Steps)
	w.Hydrated.DisplaySteps = cloneSteps(w.Hydrated.DisplaySteps)
	return w
}

func cloneTemplate(t domain.WorkoutTemplate) domain.WorkoutTemplate {
	t.Steps = cloneSteps(t.Steps)
	return t
}

func cloneProfile(p domain.UserProfile) domain.UserProfile {
	if p.Training.PreferredDays != nil {
		p.Training.PreferredDays = append([]string(nil), p.Training.PreferredDays...)
	}
	return p
}
