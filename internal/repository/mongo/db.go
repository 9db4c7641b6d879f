package mongo

import (
	"alcyxob/run-coach/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/multierr"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB establishes a connection to MongoDB using the provided URI.
// It returns the mongo.Client which can be used to access databases and collections.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Connecting is lazy; ping the primary to find out whether the server answers.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the planner.
// Failures are collected rather than stopping at the first one.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return multierr.Combine(
		EnsureTrainingPlanIndexes(ctx, db.Collection(trainingPlanCollectionName)),
		EnsurePlannedWorkoutIndexes(ctx, db.Collection(plannedWorkoutCollectionName)),
		EnsureWorkoutTemplateIndexes(ctx, db.Collection(workoutTemplateCollectionName)),
		EnsureActivityIndexes(ctx, db.Collection(activityCollectionName)),
		EnsureProfileIndexes(ctx, db.Collection(profileCollectionName)),
	)
}

// mongoTransactor runs units of work in a client session transaction.
// Transactions need a replica set; with transactions disabled fn runs directly,
// which is safe for plan generation because it deletes before it recreates.
type mongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

// NewTransactor creates a Transactor backed by MongoDB sessions.
func NewTransactor(client *mongo.Client, enabled bool) repository.Transactor {
	return &mongoTransactor{client: client, enabled: enabled}
}

// WithinTransaction runs fn inside a transaction when enabled.
func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
