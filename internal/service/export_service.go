package service

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrExportUnavailable = errors.New("plan export is not configured")
	ErrExportFailed      = errors.New("failed to export plan")
)

const exportContentType = "application/json"

// PlanExport is the document written to object storage.
type PlanExport struct {
	ExportedAt      time.Time               `json:"exportedAt"`
	Plan            domain.TrainingPlan     `json:"plan"`
	PlannedWorkouts []domain.PlannedWorkout `json:"plannedWorkouts"`
}

// ExportResult tells the caller where to fetch the export.
type ExportResult struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type ExportService interface {
	ExportActivePlan(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error)
}

type exportService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.PlannedWorkoutRepository
	fileStorage storage.FileStorage
	urlExpiry   time.Duration
}

// NewExportService creates an export service. A nil fileStorage disables exports.
func NewExportService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.PlannedWorkoutRepository,
	fileStorage storage.FileStorage,
	urlExpiry time.Duration,
) ExportService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &exportService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		fileStorage: fileStorage,
		urlExpiry:   urlExpiry,
	}
}

// ExportActivePlan uploads a JSON snapshot of the active plan and returns a
// presigned download URL. The user's previous export is removed.
func (s *exportService) ExportActivePlan(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}

	active, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	workouts, err := s.workoutRepo.ListByPlanID(ctx, active.ID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.PlannedWorkout{}
	}

	body, err := json.Marshal(PlanExport{
		ExportedAt:      time.Now().UTC(),
		Plan:            *active,
		PlannedWorkouts: workouts,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExportFailed, err)
	}

	// e.g., exports/<userID>/<uuid>.json
	prefix := exportPrefix(userID)
	objectKey := prefix + uuid.NewString() + ".json"
	if err := s.fileStorage.PutObject(ctx, objectKey, exportContentType, bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExportFailed, err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrExportFailed, err)
	}

	s.deleteSupersededExports(ctx, prefix, objectKey)

	return &ExportResult{
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresAt:   time.Now().UTC().Add(s.urlExpiry),
	}, nil
}

func exportPrefix(userID primitive.ObjectID) string {
	return path.Join("exports", userID.Hex()) + "/"
}

// deleteSupersededExports removes every export under prefix except current.
// A stale export left behind is harmless; failures are only logged.
func (s *exportService) deleteSupersededExports(ctx context.Context, prefix, current string) {
	keys, err := s.fileStorage.ListObjectKeys(ctx, prefix)
	if err != nil {
		logrus.Warnf("list exports under %s: %s", prefix, err)
		return
	}
	for _, key := range keys {
		if key == current {
			continue
		}
		if err := s.fileStorage.DeleteObject(ctx, key); err != nil {
			logrus.Warnf("delete superseded export %s: %s", key, err)
		}
	}
}
