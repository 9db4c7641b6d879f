package api

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler serves the caller's training and display profile.
type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	GoalDistance  string            `json:"goalDistance" binding:"required"`
	PreferredDays []string          `json:"preferredDays" binding:"required,min=1,max=7"`
	FitnessLevel  string            `json:"fitnessLevel"`
	DaysPerWeek   int               `json:"daysPerWeek" binding:"omitempty,min=1,max=7"`
	WeekStartDay  int               `json:"weekStartDay" binding:"oneof=0 1"`
	UnitSystem    domain.UnitSystem `json:"unitSystem" binding:"omitempty,oneof=metric imperial"`
}

type ProfileResponse struct {
	Training  domain.TrainingProfile `json:"training"`
	Display   domain.DisplayProfile  `json:"display"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

func mapProfileToResponse(p *domain.UserProfile) ProfileResponse {
	return ProfileResponse{
		Training:  p.Training,
		Display:   p.Display,
		UpdatedAt: p.UpdatedAt,
	}
}

// GetProfile returns the stored profile.
// @Router /me/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.Errorf("get profile: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		return
	}

	c.JSON(http.StatusOK, mapProfileToResponse(profile))
}

// UpdateProfile replaces the stored profile.
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}

	training := domain.TrainingProfile{
		GoalDistance:  req.GoalDistance,
		PreferredDays: req.PreferredDays,
		FitnessLevel:  req.FitnessLevel,
		DaysPerWeek:   req.DaysPerWeek,
	}
	display := domain.DisplayProfile{
		WeekStartDay: req.WeekStartDay,
		UnitSystem:   req.UnitSystem,
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, training, display)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.Errorf("update profile: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile.")
		return
	}

	c.JSON(http.StatusOK, mapProfileToResponse(profile))
}
