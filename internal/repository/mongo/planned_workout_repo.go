// internal/repository/mongo/planned_workout_repo.go
package mongo

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const plannedWorkoutCollectionName = "planned_workouts"

// mongoPlannedWorkoutRepository implements repository.PlannedWorkoutRepository
type mongoPlannedWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoPlannedWorkoutRepository creates a new PlannedWorkout repository.
func NewMongoPlannedWorkoutRepository(db *mongo.Database) repository.PlannedWorkoutRepository {
	return &mongoPlannedWorkoutRepository{
		collection: db.Collection(plannedWorkoutCollectionName),
	}
}

// CreateMany inserts planned workouts in one batch, in order.
func (r *mongoPlannedWorkoutRepository) CreateMany(ctx context.Context, workouts []domain.PlannedWorkout) ([]primitive.ObjectID, error) {
	if len(workouts) == 0 {
		return nil, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(workouts))
	for i := range workouts {
		w := &workouts[i]
		if w.UserID == primitive.NilObjectID || w.TrainingPlanID == primitive.NilObjectID || w.WorkoutTemplateID == primitive.NilObjectID {
			return nil, errors.New("planned workout requires userId, trainingPlanId, and workoutTemplateId")
		}
		w.ID = primitive.NewObjectID()
		w.CreatedAt = now
		w.UpdatedAt = now
		if w.Status == "" {
			w.Status = domain.StatusScheduled
		}
		docs[i] = w
	}

	result, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(result.InsertedIDs))
	for _, raw := range result.InsertedIDs {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			return nil, errors.New("failed to convert inserted planned workout ID")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetByID retrieves a single planned workout by its ID.
func (r *mongoPlannedWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error) {
	var workout domain.PlannedWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByUserID retrieves a user's planned workouts ordered by date.
func (r *mongoPlannedWorkoutRepository) ListByUserID(ctx context.Context, userID primitive.ObjectID, filter repository.PlannedWorkoutFilter) ([]domain.PlannedWorkout, error) {
	query := bson.M{"userId": userID}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lt"] = *filter.To
	}
	if len(dateRange) > 0 {
		query["scheduledDate"] = dateRange
	}
	return r.find(ctx, query)
}

// ListByPlanID retrieves all planned workouts of a plan ordered by date.
func (r *mongoPlannedWorkoutRepository) ListByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlannedWorkout, error) {
	return r.find(ctx, bson.M{"trainingPlanId": planID})
}

func (r *mongoPlannedWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.PlannedWorkout, error) {
	var workouts []domain.PlannedWorkout
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// DeleteByUserID permanently removes every planned workout of a user.
func (r *mongoPlannedWorkoutRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// UpdateScheduledDate moves a planned workout to another date.
func (r *mongoPlannedWorkoutRepository) UpdateScheduledDate(ctx context.Context, id primitive.ObjectID, date time.Time) error {
	return r.set(ctx, id, bson.M{"scheduledDate": date})
}

// UpdateStatus sets the lifecycle status; a nil completedAt clears it.
func (r *mongoPlannedWorkoutRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlannedWorkoutStatus, completedAt *time.Time) error {
	if completedAt == nil {
		return r.update(ctx, id, bson.M{
			"$set":   bson.M{"status": status, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"completedAt": ""},
		})
	}
	return r.set(ctx, id, bson.M{"status": status, "completedAt": *completedAt})
}

func (r *mongoPlannedWorkoutRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	return r.update(ctx, id, bson.M{"$set": fields})
}

func (r *mongoPlannedWorkoutRepository) update(ctx context.Context, id primitive.ObjectID, updateDoc bson.M) error {
	if id == primitive.NilObjectID {
		return errors.New("planned workout ID is required for update")
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePlannedWorkoutIndexes creates necessary indexes. Call during startup.
func EnsurePlannedWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// "all planned workouts for user X", by date
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainingPlanId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
