package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/chenaniah/academy-api/internal/config"
	"github.com/chenaniah/academy-api/internal/database"
	"github.com/chenaniah/academy-api/internal/handler"
	"github.com/chenaniah/academy-api/internal/middleware"
	"github.com/chenaniah/academy-api/internal/repository"
	"github.com/chenaniah/academy-api/internal/router"
	"github.com/chenaniah/academy-api/internal/service"
	cloud "github.com/chenaniah/academy-api/pkg/cloudinary"
	"github.com/chenaniah/academy-api/pkg/localfs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := buildUploader(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create file uploader: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	submissionRepo := repository.NewSubmissionRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	prayerRepo := repository.NewPrayerRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	sessionNoteRepo := repository.NewSessionNoteRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	lifecycleService := service.NewLifecycleService(submissionRepo, appointmentRepo, studentRepo, validate, tokens, logger)
	authService := service.NewAuthService(studentRepo, cfg, validate, tokens, logger)
	reviewService := service.NewSubmissionReviewService(submissionRepo, validate, redisClient, cfg.StatsCacheTTL, logger)
	scheduleService := service.NewScheduleService(appointmentRepo, slotRepo, submissionRepo, evaluationRepo, validate, logger)
	portalService := service.NewStudentPortalService(studentRepo, assignmentRepo, paymentRepo, validate, uploader, logger)
	traineeService := service.NewTraineeAdminService(studentRepo, assignmentRepo, paymentRepo, validate, logger)
	noticeService := service.NewNoticeService(noticeRepo, studentRepo, validate, logger)
	teamService := service.NewTeamService(teamRepo, studentRepo, validate, logger)
	prayerService := service.NewPrayerService(prayerRepo, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, validate, logger)
	sessionNoteService := service.NewSessionNoteService(sessionNoteRepo, attendanceRepo, studentRepo, validate, uploader, logger)
	settingsService := service.NewSettingsService(settingRepo, logger)
	resourceService := service.NewResourceService(resourceRepo, validate, uploader, logger)

	filesHandler := handler.NewFilesHandler(cfg.UploadsDir, logger)

	deps := router.Dependencies{
		AuthHandler:         handler.NewAuthHandler(authService, lifecycleService, validate, logger),
		ApplicantHandler:    handler.NewApplicantHandler(lifecycleService, logger),
		SubmissionHandler:   handler.NewSubmissionHandler(reviewService, validate, logger),
		ScheduleHandler:     handler.NewScheduleHandler(scheduleService, validate, logger),
		StudentHandler:      handler.NewStudentHandler(portalService, validate, logger),
		TraineeHandler:      handler.NewTraineeHandler(traineeService, validate, logger),
		NoticeHandler:       handler.NewNoticeHandler(noticeService, validate, logger),
		TeamHandler:         handler.NewTeamHandler(teamService, validate, logger),
		PrayerHandler:       handler.NewPrayerHandler(prayerService, logger),
		AttendanceHandler:   handler.NewAttendanceHandler(attendanceService, validate, logger),
		SessionNoteHandler:  handler.NewSessionNoteHandler(sessionNoteService, validate, logger),
		RegistrationHandler: handler.NewRegistrationHandler(settingsService, logger),
		ResourceHandler:     handler.NewResourceHandler(resourceService, filesHandler, validate, logger),
		FilesHandler:        filesHandler,
		AudioHandler:        handler.NewAudioHandler(cfg.AudioDir, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSAllowOrigins})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildUploader prefers Cloudinary when credentials are configured and
// falls back to the local uploads directory otherwise.
func buildUploader(cfg config.Config, logger zerolog.Logger) (service.FileUploader, error) {
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		return cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
	}

	return localfs.New(cfg.UploadsDir, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
