package main

import (
	"alcyxob/run-coach/internal/api"
	"alcyxob/run-coach/internal/config"
	"alcyxob/run-coach/internal/logging"
	"alcyxob/run-coach/internal/repository"
	"alcyxob/run-coach/internal/repository/memory"
	"alcyxob/run-coach/internal/repository/mongo"
	"alcyxob/run-coach/internal/service"
	"alcyxob/run-coach/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// repositories bundles the persistence layer chosen by database.driver.
type repositories struct {
	plans     repository.TrainingPlanRepository
	planned   repository.PlannedWorkoutRepository
	templates repository.WorkoutTemplateRepository
	activity  repository.ActivityRepository
	profiles  repository.ProfileRepository
	tx        repository.Transactor
	close     func()
}

// @title Run Coach API
// @version 1.0
// @description Training plan generation and scheduling.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Println("starting run coach server...")

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret must be set")
	}

	repos, err := setupRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("could not set up repositories: %s", err)
	}
	defer repos.close()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %s", err)
		}
	} else {
		log.Info("S3 disabled, plan export unavailable")
	}

	// --- Initialize Services ---
	planService := service.NewPlanService(repos.plans, repos.planned, repos.templates, repos.tx)
	plannedWorkoutService := service.NewPlannedWorkoutService(repos.planned, repos.templates)
	profileService := service.NewProfileService(repos.profiles)
	exportService := service.NewExportService(repos.plans, repos.planned, fileStorage, cfg.Planner.ExportURLExpiry)
	var simulator service.ProgressSimulator
	if cfg.Planner.SimulationEnabled {
		log.Warn("progress simulation enabled; simulated activities are tagged with source=simulation")
		simulator = service.NewProgressSimulator(repos.plans, repos.planned, repos.activity, repos.tx, cfg.Planner.SimulationBufferDays, 0)
	}

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, planService, plannedWorkoutService, profileService, simulator, exportService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Println("server exiting")
}

func setupRepositories(cfg config.DatabaseConfig) (*repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			plans:     store.TrainingPlans(),
			planned:   store.PlannedWorkouts(),
			templates: store.WorkoutTemplates(),
			activity:  store.Activities(),
			profiles:  store.Profiles(),
			tx:        store,
			close:     func() {},
		}, nil

	case config.DriverMongo, "":
		dbClient, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, err
		}
		appDB := dbClient.Database(cfg.Name)
		log.Infof("connected to MongoDB database %s", cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			// Queries still work without indexes, just slower.
			log.Errorf("ensure indexes: %s", err)
		}

		return &repositories{
			plans:     mongo.NewMongoTrainingPlanRepository(appDB),
			planned:   mongo.NewMongoPlannedWorkoutRepository(appDB),
			templates: mongo.NewMongoWorkoutTemplateRepository(appDB),
			activity:  mongo.NewMongoActivityRepository(appDB),
			profiles:  mongo.NewMongoProfileRepository(appDB),
			tx:        mongo.NewTransactor(dbClient, cfg.Transactions),
			close: func() {
				log.Println("disconnecting MongoDB...")
				if err := mongo.DisconnectDB(dbClient); err != nil {
					log.Errorf("failed to disconnect MongoDB: %s", err)
				}
			},
		}, nil

	default:
		return nil, errors.New("unknown database driver: " + cfg.Driver)
	}
}
