package api

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/workout"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler previews token hydration without touching storage.
type WorkoutHandler struct {
	library workout.Library
}

func NewWorkoutHandler(library workout.Library) *WorkoutHandler {
	return &WorkoutHandler{library: library}
}

type HydrateResponse struct {
	Token    domain.Token           `json:"token"`
	Base     string                 `json:"base"`
	Param    string                 `json:"param"`
	Units    domain.UnitSystem      `json:"units"`
	Known    bool                   `json:"known"`
	Hydrated domain.HydratedWorkout `json:"hydrated"`
}

// HydrateToken expands ?token= for ?units= (default imperial).
// @Router /workouts/hydrate [get]
func (h *WorkoutHandler) HydrateToken(c *gin.Context) {
	token := domain.Token(c.Query("token"))
	if token == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'token' is required.")
		return
	}
	units := domain.UnitSystem(c.DefaultQuery("units", string(domain.UnitsImperial)))
	if !units.IsValid() {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'units' must be 'metric' or 'imperial'.")
		return
	}

	base, param := token.Split()
	_, known := h.library.Lookup(base)
	c.JSON(http.StatusOK, HydrateResponse{
		Token:    token,
		Base:     base,
		Param:    param,
		Units:    units,
		Known:    known,
		Hydrated: h.library.Hydrate(base, param, units),
	})
}
