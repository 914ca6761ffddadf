package router

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chenaniah/academy-api/internal/config"
	"github.com/chenaniah/academy-api/internal/handler"
	"github.com/chenaniah/academy-api/internal/middleware"
	"github.com/chenaniah/academy-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	ApplicantHandler    *handler.ApplicantHandler
	SubmissionHandler   *handler.SubmissionHandler
	ScheduleHandler     *handler.ScheduleHandler
	StudentHandler      *handler.StudentHandler
	TraineeHandler      *handler.TraineeHandler
	NoticeHandler       *handler.NoticeHandler
	TeamHandler         *handler.TeamHandler
	PrayerHandler       *handler.PrayerHandler
	AttendanceHandler   *handler.AttendanceHandler
	SessionNoteHandler  *handler.SessionNoteHandler
	RegistrationHandler *handler.RegistrationHandler
	ResourceHandler     *handler.ResourceHandler
	FilesHandler        *handler.FilesHandler
	AudioHandler        *handler.AudioHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwt := deps.JWTMiddleware
	if jwt == nil {
		jwt = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole(service.RoleAdmin, service.RoleCoordinator)
	adminOnly := middleware.RequireRole(service.RoleAdmin)
	studentOnly := middleware.RequireRole(service.RoleStudent)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.ApplicantHandler != nil {
		deps.ApplicantHandler.Register(api.Group("/applicant"))
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/submissions", jwt, staffOnly))
		deps.SubmissionHandler.RegisterStats(app.Group("/api", jwt, staffOnly))
	}

	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.RegisterPublic(api.Group("/schedule"))
		deps.ScheduleHandler.RegisterProtected(api.Group("/schedule", jwt, staffOnly))
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(api.Group("/student", jwt, studentOnly))
	}

	if deps.TraineeHandler != nil {
		deps.TraineeHandler.Register(api.Group("/admin/trainees", jwt, adminOnly))
	}

	if deps.NoticeHandler != nil {
		deps.NoticeHandler.RegisterPublic(api.Group("/notices"))
		deps.NoticeHandler.RegisterAuthed(api.Group("/notices", jwt))
		deps.NoticeHandler.RegisterAdmin(api.Group("/notices", jwt, adminOnly))
	}

	if deps.TeamHandler != nil {
		deps.TeamHandler.RegisterAdmin(api.Group("/teams", jwt, adminOnly))
		deps.TeamHandler.RegisterAuthed(api.Group("/teams", jwt))
	}

	if deps.PrayerHandler != nil {
		deps.PrayerHandler.RegisterAdmin(api.Group("/prayer", jwt, adminOnly))
		deps.PrayerHandler.RegisterStudent(api.Group("/prayer", jwt, studentOnly))
	}

	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance", jwt, staffOnly))
	}

	if deps.SessionNoteHandler != nil {
		deps.SessionNoteHandler.RegisterStaff(api.Group("/notes", jwt, staffOnly))
		deps.SessionNoteHandler.RegisterAuthed(api.Group("/notes", jwt))
	}

	if deps.RegistrationHandler != nil {
		deps.RegistrationHandler.RegisterPublic(api.Group("/registration"))
		deps.RegistrationHandler.RegisterAdmin(api.Group("/registration", jwt, adminOnly))
	}

	if deps.ResourceHandler != nil {
		deps.ResourceHandler.RegisterAdmin(api.Group("/resources", jwt, adminOnly))
		deps.ResourceHandler.RegisterAuthed(api.Group("/resources", jwt))
	}

	if deps.FilesHandler != nil {
		deps.FilesHandler.Register(app.Group("/uploads"))
	}

	if deps.AudioHandler != nil {
		deps.AudioHandler.Register(api.Group("/audio", jwt))
	}
}
