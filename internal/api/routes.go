package api

import (
	"alcyxob/run-coach/internal/service"
	"alcyxob/run-coach/internal/workout"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	plannedWorkoutService service.PlannedWorkoutService,
	profileService service.ProfileService,
	simulator service.ProgressSimulator, // nil disables /simulate
	exportService service.ExportService,
) {
	locker := service.NewUserLocker()
	planHandler := NewPlanHandler(planService, profileService, simulator, exportService, locker)
	plannedWorkoutHandler := NewPlannedWorkoutHandler(plannedWorkoutService)
	profileHandler := NewProfileHandler(profileService)
	workoutHandler := NewWorkoutHandler(workout.DefaultLibrary)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me/profile", profileHandler.GetProfile)
		protected.PUT("/me/profile", profileHandler.UpdateProfile)

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.POST("/regenerate", planHandler.RegeneratePlan)
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.DELETE("/active", planHandler.DeleteActivePlan)
			planGroup.POST("/active/simulate", planHandler.SimulateProgress)
			planGroup.POST("/active/export", planHandler.ExportPlan)
		}

		// --- Planned Workout Routes ---
		plannedGroup := protected.Group("/planned-workouts")
		{
			plannedGroup.GET("", plannedWorkoutHandler.ListPlannedWorkouts)
			plannedGroup.GET("/:id", plannedWorkoutHandler.GetPlannedWorkout)
			plannedGroup.PATCH("/:id/status", plannedWorkoutHandler.UpdatePlannedWorkoutStatus)
		}

		protected.GET("/workouts/hydrate", workoutHandler.HydrateToken)
	}
}
