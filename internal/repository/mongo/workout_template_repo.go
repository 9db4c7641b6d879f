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

const workoutTemplateCollectionName = "workout_templates"

// mongoWorkoutTemplateRepository implements repository.WorkoutTemplateRepository
type mongoWorkoutTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutTemplateRepository creates a new WorkoutTemplate repository backed by MongoDB.
func NewMongoWorkoutTemplateRepository(db *mongo.Database) repository.WorkoutTemplateRepository {
	return &mongoWorkoutTemplateRepository{
		collection: db.Collection(workoutTemplateCollectionName),
	}
}

// Create inserts a new workout skeleton into the database.
func (r *mongoWorkoutTemplateRepository) Create(ctx context.Context, tmpl *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	if tmpl.Base == "" || tmpl.Name == "" {
		return primitive.NilObjectID, errors.New("workout template name and base are required")
	}

	tmpl.ID = primitive.NewObjectID()
	tmpl.CreatedAt = time.Now().UTC()
	if tmpl.Steps == nil {
		tmpl.Steps = []domain.Step{}
	}

	result, err := r.collection.InsertOne(ctx, tmpl)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a workout skeleton by its ID.
func (r *mongoWorkoutTemplateRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	var tmpl domain.WorkoutTemplate
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tmpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

// EnsureWorkoutTemplateIndexes creates necessary indexes. Call during startup.
// Skeletons are created per generation, so base is deliberately not unique.
func EnsureWorkoutTemplateIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "base", Value: 1}},
		Options: options.Index(),
	}
	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
