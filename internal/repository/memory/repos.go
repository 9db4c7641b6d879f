package memory

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlans returns the training plan repository view of the store.
func (s *Store) TrainingPlans() repository.TrainingPlanRepository { return (*planRepo)(s) }

// PlannedWorkouts returns the planned workout repository view of the store.
func (s *Store) PlannedWorkouts() repository.PlannedWorkoutRepository { return (*plannedRepo)(s) }

// WorkoutTemplates returns the skeleton repository view of the store.
func (s *Store) WorkoutTemplates() repository.WorkoutTemplateRepository { return (*templateRepo)(s) }

// Activities returns the activity repository view of the store.
func (s *Store) Activities() repository.ActivityRepository { return (*activityRepo)(s) }

// Profiles returns the profile repository view of the store.
func (s *Store) Profiles() repository.ProfileRepository { return (*profileRepo)(s) }

type planRepo Store

func (r *planRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.plans[plan.ID] = clonePlan(*plan)
	return plan.ID, nil
}

func (r *planRepo) GetActiveByUserID(_ context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found *domain.TrainingPlan
	for _, p := range r.plans {
		if p.UserID != userID || !p.IsActive {
			continue
		}
		if found == nil || p.UpdatedAt.After(found.UpdatedAt) {
			p = clonePlan(p)
			found = &p
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r *planRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans := []domain.TrainingPlan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			plans = append(plans, clonePlan(p))
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].CreatedAt.After(plans[j].CreatedAt) })
	return plans, nil
}

func (r *planRepo) DeactivateAllForUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	now := time.Now().UTC()
	for id, p := range r.plans {
		if p.UserID == userID && p.IsActive {
			p.IsActive = false
			p.UpdatedAt = now
			r.plans[id] = p
			n++
		}
	}
	return n, nil
}

func (r *planRepo) UpdateWeeks(_ context.Context, planID primitive.ObjectID, weeks []domain.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Plan = weeks
	p = clonePlan(p)
	p.UpdatedAt = time.Now().UTC()
	r.plans[planID] = p
	return nil
}

type plannedRepo Store

func (r *plannedRepo) CreateMany(_ context.Context, workouts []domain.PlannedWorkout) ([]primitive.ObjectID, error) {
	for _, w := range workouts {
		if w.UserID == primitive.NilObjectID || w.TrainingPlanID == primitive.NilObjectID {
			return nil, repository.ErrInvalidInput
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]primitive.ObjectID, 0, len(workouts))
	now := time.Now().UTC()
	for i := range workouts {
		w := &workouts[i]
		w.ID = primitive.NewObjectID()
		w.CreatedAt = now
		w.UpdatedAt = now
		if w.Status == "" {
			w.Status = domain.StatusScheduled
		}
		r.workouts[w.ID] = clonePlannedWorkout(*w)
		ids = append(ids, w.ID)
	}
	return ids, nil
}

func (r *plannedRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w = clonePlannedWorkout(w)
	return &w, nil
}

func (r *plannedRepo) ListByUserID(_ context.Context, userID primitive.ObjectID, filter repository.PlannedWorkoutFilter) ([]domain.PlannedWorkout, error) {
	return r.list(func(w domain.PlannedWorkout) bool {
		if w.UserID != userID {
			return false
		}
		if filter.From != nil && w.ScheduledDate.Before(*filter.From) {
			return false
		}
		if filter.To != nil && !w.ScheduledDate.Before(*filter.To) {
			return false
		}
		return true
	}), nil
}

func (r *plannedRepo) ListByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.PlannedWorkout, error) {
	return r.list(func(w domain.PlannedWorkout) bool { return w.TrainingPlanID == planID }), nil
}

func (r *plannedRepo) list(keep func(domain.PlannedWorkout) bool) []domain.PlannedWorkout {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.PlannedWorkout{}
	for _, w := range r.workouts {
		if keep(w) {
			out = append(out, clonePlannedWorkout(w))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out
}

func (r *plannedRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, w := range r.workouts {
		if w.UserID == userID {
			delete(r.workouts, id)
			n++
		}
	}
	return n, nil
}

func (r *plannedRepo) UpdateScheduledDate(_ context.Context, id primitive.ObjectID, date time.Time) error {
	return r.update(id, func(w *domain.PlannedWorkout) { w.ScheduledDate = date })
}

func (r *plannedRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.PlannedWorkoutStatus, completedAt *time.Time) error {
	return r.update(id, func(w *domain.PlannedWorkout) {
		w.Status = status
		w.CompletedAt = completedAt
	})
}

func (r *plannedRepo) update(id primitive.ObjectID, apply func(*domain.PlannedWorkout)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.workouts[id]
	if !ok {
		return repository.ErrNotFound
	}
	apply(&w)
	w.UpdatedAt = time.Now().UTC()
	r.workouts[id] = w
	return nil
}

type templateRepo Store

func (r *templateRepo) Create(_ context.Context, tmpl *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	if tmpl.Name == "" {
		return primitive.NilObjectID, repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tmpl.ID = primitive.NewObjectID()
	tmpl.CreatedAt = time.Now().UTC()
	r.templates[tmpl.ID] = cloneTemplate(*tmpl)
	return tmpl.ID, nil
}

func (r *templateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t = cloneTemplate(t)
	return &t, nil
}

type activityRepo Store

func (r *activityRepo) Create(_ context.Context, a *domain.Activity) (primitive.ObjectID, error) {
	if a.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	r.activity[a.ID] = *a
	return a.ID, nil
}

func (r *activityRepo) ListByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []domain.Activity{}
	for _, a := range r.activity {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

type profileRepo Store

func (r *profileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = cloneProfile(p)
	return &p, nil
}

func (r *profileRepo) Upsert(_ context.Context, profile *domain.UserProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return repository.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.UpdatedAt = time.Now().UTC()
	r.profiles[profile.UserID] = cloneProfile(*profile)
	return nil
}
