package api

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/service"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const generateFailedMessage = "Could not build your plan, please try again."

// PlanHandler serves plan generation and the active plan.
type PlanHandler struct {
	planService    service.PlanService
	profileService service.ProfileService
	simulator      service.ProgressSimulator // nil when simulation is disabled
	exportService  service.ExportService
	locker         *service.UserLocker
}

func NewPlanHandler(
	planService service.PlanService,
	profileService service.ProfileService,
	simulator service.ProgressSimulator,
	exportService service.ExportService,
	locker *service.UserLocker,
) *PlanHandler {
	return &PlanHandler{
		planService:    planService,
		profileService: profileService,
		simulator:      simulator,
		exportService:  exportService,
		locker:         locker,
	}
}

type SimulateRequest struct {
	Weeks int `json:"weeks" binding:"required,min=1"`
}

// GeneratePlan builds a plan from the stored profile.
// @Router /plans/generate [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	h.generate(c, h.planService.GeneratePlan)
}

// RegeneratePlan discards the current plan and builds a new one.
// @Router /plans/regenerate [post]
func (h *PlanHandler) RegeneratePlan(c *gin.Context) {
	h.generate(c, h.planService.Regenerate)
}

type generateFunc func(ctx context.Context, userID primitive.ObjectID, training domain.TrainingProfile, display domain.DisplayProfile) (*service.GenerateResult, error)

func (h *PlanHandler) generate(c *gin.Context, fn generateFunc) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusConflict, "Set up your training profile before generating a plan.")
			return
		}
		logrus.Errorf("load profile for plan generation: %s", err)
		abortWithError(c, http.StatusInternalServerError, generateFailedMessage)
		return
	}

	unlock := h.locker.Lock(userID)
	defer unlock()

	result, err := fn(c.Request.Context(), userID, profile.Training, profile.Display)
	if err != nil {
		// Configuration and persistence failures look the same to the user.
		abortWithError(c, http.StatusInternalServerError, generateFailedMessage)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetActivePlan returns the active plan.
// @Router /plans/active [get]
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		h.abortWithPlanError(c, err, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeleteActivePlan removes planned workouts and deactivates all plans.
// @Router /plans/active [delete]
func (h *PlanHandler) DeleteActivePlan(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	unlock := h.locker.Lock(userID)
	defer unlock()

	if err := h.planService.DeletePlan(c.Request.Context(), userID); err != nil {
		logrus.Errorf("delete plan: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// SimulateProgress shifts the active plan into the past with synthetic activities.
// @Router /plans/active/simulate [post]
func (h *PlanHandler) SimulateProgress(c *gin.Context) {
	if h.simulator == nil {
		abortWithError(c, http.StatusNotFound, "Progress simulation is disabled.")
		return
	}
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	unlock := h.locker.Lock(userID)
	defer unlock()

	summary, err := h.simulator.SimulateProgress(c.Request.Context(), userID, req.Weeks)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSimulationWeeks) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.abortWithPlanError(c, err, "Failed to simulate progress.")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportPlan uploads the active plan and returns a download link.
// @Router /plans/active/export [post]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportActivePlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
			return
		}
		h.abortWithPlanError(c, err, "Failed to export plan.")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PlanHandler) abortWithPlanError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrNoActivePlan) {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	logrus.Errorf("%s: %s", c.Request.URL.Path, err)
	abortWithError(c, http.StatusInternalServerError, message)
}
