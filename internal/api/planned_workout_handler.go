package api

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type PlannedWorkoutHandler struct {
	plannedWorkoutService service.PlannedWorkoutService
}

func NewPlannedWorkoutHandler(plannedWorkoutService service.PlannedWorkoutService) *PlannedWorkoutHandler {
	return &PlannedWorkoutHandler{plannedWorkoutService: plannedWorkoutService}
}

type UpdateStatusRequest struct {
	Status domain.PlannedWorkoutStatus `json:"status" binding:"required"`
}

// ListPlannedWorkouts returns the caller's planned workouts, optionally
// limited to [from, to) given as YYYY-MM-DD.
// @Router /planned-workouts [get]
func (h *PlannedWorkoutHandler) ListPlannedWorkouts(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	var filter repository.PlannedWorkoutFilter
	for _, q := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filter.From}, {"to", &filter.To}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		// Scheduled dates are UTC midnights, so bounds parse as UTC too.
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Query parameter '"+q.name+"' must be YYYY-MM-DD.")
			return
		}
		*q.dst = &t
	}

	workouts, err := h.plannedWorkoutService.List(c.Request.Context(), userID, filter)
	if err != nil {
		logrus.Errorf("list planned workouts: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve planned workouts.")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetPlannedWorkout returns a planned workout merged with its skeleton.
// @Router /planned-workouts/{id} [get]
func (h *PlannedWorkoutHandler) GetPlannedWorkout(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	id, ok := objectIDParamOrAbort(c, "id")
	if !ok {
		return
	}

	details, err := h.plannedWorkoutService.GetDetails(c.Request.Context(), userID, id)
	if err != nil {
		abortWithWorkoutError(c, err, "Failed to retrieve planned workout.")
		return
	}
	c.JSON(http.StatusOK, details)
}

// UpdatePlannedWorkoutStatus marks a planned workout completed, skipped or scheduled.
// @Router /planned-workouts/{id}/status [patch]
func (h *PlannedWorkoutHandler) UpdatePlannedWorkoutStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	id, ok := objectIDParamOrAbort(c, "id")
	if !ok {
		return
	}

	pw, err := h.plannedWorkoutService.UpdateStatus(c.Request.Context(), userID, id, req.Status)
	if err != nil {
		abortWithWorkoutError(c, err, "Failed to update planned workout.")
		return
	}
	c.JSON(http.StatusOK, pw)
}

func abortWithWorkoutError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrPlannedWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		logrus.Errorf("%s: %s", c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, message)
	}
}
