package api

import (
	"alcyxob/run-coach/internal/domain"
	"alcyxob/run-coach/internal/repository/memory"
	"alcyxob/run-coach/internal/service"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

var testNow = time.Date(2026, time.October, 21, 8, 0, 0, 0, time.UTC)

type testAPI struct {
	router *gin.Engine
	store  *memory.Store
}

func newTestAPI(t *testing.T, simulationEnabled bool) *testAPI {
	t.Helper()
	return newTestAPIAt(t, simulationEnabled, testNow)
}

func newTestAPIAt(t *testing.T, simulationEnabled bool, now time.Time) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	planService := service.NewPlanService(store.TrainingPlans(), store.PlannedWorkouts(), store.WorkoutTemplates(), store,
		service.WithClock(func() time.Time { return now }))
	var simulator service.ProgressSimulator
	if simulationEnabled {
		simulator = service.NewProgressSimulator(store.TrainingPlans(), store.PlannedWorkouts(), store.Activities(), store, 0, 7)
	}

	router := gin.New()
	router.Use(RequestLogger())
	SetupRoutes(router, testSecret,
		planService,
		service.NewPlannedWorkoutService(store.PlannedWorkouts(), store.WorkoutTemplates()),
		service.NewProfileService(store.Profiles()),
		simulator,
		service.NewExportService(store.TrainingPlans(), store.PlannedWorkouts(), nil, 0),
	)
	return &testAPI{router: router, store: store}
}

func signToken(t *testing.T, secret, uid string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwtClaims{
		UserID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

var fiveKRequest = UpdateProfileRequest{
	GoalDistance:  "5K",
	PreferredDays: []string{"Mon", "Wed", "Fri"},
	DaysPerWeek:   3,
	WeekStartDay:  domain.WeekStartMonday,
	UnitSystem:    domain.UnitsMetric,
}

func TestPing(t *testing.T) {
	a := newTestAPI(t, false)
	rr := a.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"pong"}`, rr.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	a := newTestAPI(t, false)
	uid := primitive.NewObjectID().Hex()

	tests := []struct {
		name  string
		token string
		raw   string
	}{
		{name: "missing header"},
		{name: "not bearer", raw: "Basic abc"},
		{name: "wrong secret", token: signToken(t, "other", uid, time.Hour)},
		{name: "expired", token: signToken(t, testSecret, uid, -time.Minute)},
		{name: "bad uid", token: signToken(t, testSecret, "not-an-id", time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/v1/plans/active", nil)
			require.NoError(t, err)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.raw != "" {
				req.Header.Set("Authorization", tt.raw)
			}
			rr := httptest.NewRecorder()
			a.router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestPlanLifecycle(t *testing.T) {
	a := newTestAPI(t, false)
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)

	rr := a.do(t, http.MethodPost, "/api/v1/plans/generate", token, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = a.do(t, http.MethodPut, "/api/v1/me/profile", token, fiveKRequest)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/v1/me/profile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var profile ProfileResponse
	decode(t, rr, &profile)
	assert.Equal(t, "5K", profile.Training.GoalDistance)

	rr = a.do(t, http.MethodPost, "/api/v1/plans/generate", token, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var result service.GenerateResult
	decode(t, rr, &result)
	assert.Equal(t, 9, result.Weeks)
	assert.Equal(t, 27, result.WorkoutsScheduled)

	rr = a.do(t, http.MethodGet, "/api/v1/plans/active", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var active domain.TrainingPlan
	decode(t, rr, &active)
	assert.Equal(t, result.PlanID, active.ID)

	rr = a.do(t, http.MethodGet, "/api/v1/planned-workouts?from=2026-10-19&to=2026-10-26", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var week1 []domain.PlannedWorkout
	decode(t, rr, &week1)
	require.Len(t, week1, 3)

	rr = a.do(t, http.MethodGet, "/api/v1/planned-workouts/"+week1[0].ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var details service.PlannedWorkoutDetails
	decode(t, rr, &details)
	assert.Len(t, details.ExecutableSteps, 18)
	assert.Len(t, details.DisplaySteps, 3)

	rr = a.do(t, http.MethodPatch, "/api/v1/planned-workouts/"+week1[0].ID.Hex()+"/status", token,
		UpdateStatusRequest{Status: domain.StatusCompleted})
	require.Equal(t, http.StatusOK, rr.Code)
	var updated domain.PlannedWorkout
	decode(t, rr, &updated)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	rr = a.do(t, http.MethodPatch, "/api/v1/planned-workouts/"+week1[0].ID.Hex()+"/status", token,
		UpdateStatusRequest{Status: "done"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.do(t, http.MethodPost, "/api/v1/plans/regenerate", token, nil)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = a.do(t, http.MethodDelete, "/api/v1/plans/active", token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/plans/active", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlannedWorkouts_DayFilterWithZonedClock(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	a := newTestAPIAt(t, false, time.Date(2026, time.October, 19, 7, 0, 0, 0, berlin))
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)

	rr := a.do(t, http.MethodPut, "/api/v1/me/profile", token, fiveKRequest)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = a.do(t, http.MethodPost, "/api/v1/plans/generate", token, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/v1/planned-workouts?from=2026-10-19&to=2026-10-20", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var monday []domain.PlannedWorkout
	decode(t, rr, &monday)
	require.Len(t, monday, 1)
	assert.True(t, monday[0].ScheduledDate.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)),
		"scheduled %s", monday[0].ScheduledDate)

	rr = a.do(t, http.MethodGet, "/api/v1/planned-workouts?from=2026-10-18&to=2026-10-19", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var sunday []domain.PlannedWorkout
	decode(t, rr, &sunday)
	assert.Empty(t, sunday)
}

func TestPlannedWorkouts_OtherUser(t *testing.T) {
	a := newTestAPI(t, false)
	owner := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)
	other := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPut, "/api/v1/me/profile", owner, fiveKRequest).Code)
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/v1/plans/generate", owner, nil).Code)

	var workouts []domain.PlannedWorkout
	decode(t, a.do(t, http.MethodGet, "/api/v1/planned-workouts", owner, nil), &workouts)
	require.NotEmpty(t, workouts)

	rr := a.do(t, http.MethodGet, "/api/v1/planned-workouts/"+workouts[0].ID.Hex(), other, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/planned-workouts/zzz", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/planned-workouts?from=19-10-2026", owner, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimulateProgress(t *testing.T) {
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)

	disabled := newTestAPI(t, false)
	rr := disabled.do(t, http.MethodPost, "/api/v1/plans/active/simulate", token, SimulateRequest{Weeks: 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	a := newTestAPI(t, true)
	rr = a.do(t, http.MethodPost, "/api/v1/plans/active/simulate", token, SimulateRequest{Weeks: 1})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPut, "/api/v1/me/profile", token, fiveKRequest).Code)
	require.Equal(t, http.StatusCreated, a.do(t, http.MethodPost, "/api/v1/plans/generate", token, nil).Code)

	rr = a.do(t, http.MethodPost, "/api/v1/plans/active/simulate", token, SimulateRequest{Weeks: 1})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var summary service.SimulationSummary
	decode(t, rr, &summary)
	assert.Equal(t, 3, summary.ActivitiesCreated)
	assert.Equal(t, 7, summary.ShiftDays)

	rr = a.do(t, http.MethodPost, "/api/v1/plans/active/simulate", token, map[string]int{"weeks": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExportPlan_Unavailable(t *testing.T) {
	a := newTestAPI(t, false)
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)

	rr := a.do(t, http.MethodPost, "/api/v1/plans/active/export", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHydrateToken(t *testing.T) {
	a := newTestAPI(t, false)
	token := signToken(t, testSecret, primitive.NewObjectID().Hex(), time.Hour)

	rr := a.do(t, http.MethodGet, "/api/v1/workouts/hydrate?token=E4", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp HydrateResponse
	decode(t, rr, &resp)
	assert.True(t, resp.Known)
	assert.Equal(t, "E", resp.Base)
	assert.Equal(t, "4", resp.Param)
	require.NotNil(t, resp.Hydrated.DistanceKm)
	assert.Equal(t, 6.4, *resp.Hydrated.DistanceKm)

	rr = a.do(t, http.MethodGet, "/api/v1/workouts/hydrate?token=ZZ5&units=metric", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &resp)
	assert.False(t, resp.Known)

	rr = a.do(t, http.MethodGet, "/api/v1/workouts/hydrate?token=E4&units=parsecs", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = a.do(t, http.MethodGet, "/api/v1/workouts/hydrate", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
