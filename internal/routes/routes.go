package routes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/ldagroup/timetracking/internal/audit"
	"github.com/ldagroup/timetracking/internal/auth"
	"github.com/ldagroup/timetracking/internal/config"
	"github.com/ldagroup/timetracking/internal/domain/attendance"
	domainQuote "github.com/ldagroup/timetracking/internal/domain/quote"
	"github.com/ldagroup/timetracking/internal/export"
	"github.com/ldagroup/timetracking/internal/handlers"
	infraRepo "github.com/ldagroup/timetracking/internal/infra/repository"
	"github.com/ldagroup/timetracking/internal/middleware"
	"github.com/ldagroup/timetracking/internal/notify"
	"github.com/ldagroup/timetracking/internal/photo"
	"github.com/ldagroup/timetracking/internal/ratelimit"
	"github.com/ldagroup/timetracking/internal/storage"
	"github.com/ldagroup/timetracking/internal/timezone"
	ucQuote "github.com/ldagroup/timetracking/internal/usecase/quote"
	ucReport "github.com/ldagroup/timetracking/internal/usecase/report"
	ucTimeEntry "github.com/ldagroup/timetracking/internal/usecase/timeentry"
	"github.com/ldagroup/timetracking/internal/validators"
)

const loginWindow = time.Minute

// Options replaces infrastructure that is otherwise built from the config.
type Options struct {
	Clock      timezone.Clock
	Limiter    ratelimit.Limiter
	PhotoStore domainQuote.PhotoStore
	Notifier   domainQuote.Notifier
}

// RegisterRoutes wires every endpoint under /api. The returned function
// stops background work and must be called on shutdown.
func RegisterRoutes(ctx context.Context, r *gin.Engine, db *gorm.DB, cfg *config.Config, opts Options) func() {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	zone := timezone.NewZone(cfg.Timezone)

	clock := opts.Clock
	if clock == nil {
		clock = timezone.SystemClock{}
	}

	timeEntryRepo := infraRepo.NewTimeEntryGormRepository(db)
	reportRepo := infraRepo.NewReportGormRepository(db)
	quoteRepo := infraRepo.NewQuoteGormRepository(db)
	workerRepo := infraRepo.NewWorkerGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	engine := attendance.NewEngine(reportRepo, zone)
	formatter := export.NewFormatter(zone)

	verifier := auth.NewAdminVerifier(cfg.AdminUsername, cfg.AdminPasswordHash, workerRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, "timetracking", auth.DefaultTokenTTL)

	limiter, closeLimiter := loginLimiter(ctx, cfg, opts.Limiter)

	photoStore := opts.PhotoStore
	if photoStore == nil {
		if cfg.S3.Enabled() {
			photoStore = storage.NewS3Store(cfg.S3)
		} else {
			log.Printf("S3 storage not configured, quote photo uploads disabled")
			photoStore = storage.Disabled{}
		}
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(cfg.NotifyEmail, cfg.CompanyName)
	}

	var checkDomain func(string) bool
	if cfg.VerifyEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// USE CASES: TIME ENTRIES
	// ======================================================
	clockInUC := ucTimeEntry.NewClockIn(timeEntryRepo, clock, auditDispatcher)
	clockOutUC := ucTimeEntry.NewClockOut(timeEntryRepo, clock, auditDispatcher)
	updateEntryUC := ucTimeEntry.NewUpdateEntry(timeEntryRepo, auditDispatcher)
	listEntriesUC := ucTimeEntry.NewListEntries(timeEntryRepo)
	activeEntryUC := ucTimeEntry.NewGetActiveEntry(timeEntryRepo)
	removeEntryUC := ucTimeEntry.NewRemoveEntry(timeEntryRepo, auditDispatcher)

	// ======================================================
	// USE CASES: REPORTS
	// ======================================================
	dashboardUC := ucReport.NewDashboard(reportRepo, engine, zone, clock)
	jobCostUC := ucReport.NewJobCostReport(reportRepo)
	materialsUC := ucReport.NewMaterialsReport(reportRepo)
	entriesReportUC := ucReport.NewTimeEntriesReport(reportRepo)
	alertsUC := ucReport.NewAttendanceAlerts(engine, clock)

	// ======================================================
	// USE CASES: QUOTES
	// ======================================================
	quoteUCs := handlers.QuoteUseCases{
		Create:      ucQuote.NewCreateQuote(quoteRepo, clock, auditDispatcher),
		Update:      ucQuote.NewUpdateQuote(quoteRepo, auditDispatcher),
		List:        ucQuote.NewListQuotes(quoteRepo),
		Get:         ucQuote.NewGetQuote(quoteRepo),
		Delete:      ucQuote.NewDeleteQuote(quoteRepo, photoStore, auditDispatcher),
		Send:        ucQuote.NewSendQuote(quoteRepo, clock, auditDispatcher),
		Respond:     ucQuote.NewRespondQuote(quoteRepo, notifier, clock, zone, auditDispatcher),
		Convert:     ucQuote.NewConvertQuote(quoteRepo, clock, auditDispatcher),
		UploadPhoto: ucQuote.NewUploadPhoto(quoteRepo, photoStore, photo.NewNormalizer(), auditDispatcher),
		DeletePhoto: ucQuote.NewDeletePhoto(quoteRepo, photoStore, auditDispatcher),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(verifier, tokens, limiter)
	meHandler := handlers.NewMeHandler()

	workerHandler := handlers.NewWorkerHandler(db, auditDispatcher, checkDomain)
	jobHandler := handlers.NewJobHandler(db, auditDispatcher)
	materialHandler := handlers.NewMaterialHandler(db, zone, clock, auditDispatcher)

	timeEntryHandler := handlers.NewTimeEntryHandler(
		clockInUC,
		clockOutUC,
		updateEntryUC,
		listEntriesUC,
		activeEntryUC,
		removeEntryUC,
		zone,
	)

	reportHandler := handlers.NewReportHandler(
		dashboardUC,
		jobCostUC,
		materialsUC,
		entriesReportUC,
		alertsUC,
		formatter,
		zone,
		clock,
	)

	quoteHandler := handlers.NewQuoteHandler(quoteUCs, zone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, zone)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": cfg.CompanyName + " Time Tracking API", "status": "running"})
		})

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/admin/login", authHandler.Login)

		// ------------------------------
		// FIELD APP (no admin auth)
		// ------------------------------
		api.GET("/workers", workerHandler.List)
		api.GET("/workers/:id", workerHandler.Get)
		api.GET("/workers/:id/active-entry", timeEntryHandler.Active)

		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", jobHandler.Get)

		api.POST("/time-entries/clock-in", timeEntryHandler.ClockIn)
		api.PUT("/time-entries/:id/clock-out", timeEntryHandler.ClockOut)
		api.GET("/time-entries", timeEntryHandler.List)

		api.POST("/materials", materialHandler.Create)
		api.GET("/materials", materialHandler.List)

		api.POST("/quotes/:id/respond", quoteHandler.Respond)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.AdminMiddleware(tokens, verifier))
		{
			admin.GET("/admin/me", meHandler.GetMe)

			admin.POST("/workers", workerHandler.Create)
			admin.PUT("/workers/:id", workerHandler.Update)
			admin.DELETE("/workers/:id", workerHandler.Delete)
			admin.PUT("/workers/:id/archive", workerHandler.Archive)

			admin.POST("/jobs", jobHandler.Create)
			admin.PUT("/jobs/:id", jobHandler.Update)
			admin.DELETE("/jobs/:id", jobHandler.Delete)
			admin.PUT("/jobs/:id/archive", jobHandler.Archive)
			admin.PUT("/jobs/:id/unarchive", jobHandler.Unarchive)

			admin.PUT("/time-entries/:id", timeEntryHandler.Update)
			admin.DELETE("/time-entries/:id", timeEntryHandler.Delete)
			admin.PUT("/time-entries/:id/archive", timeEntryHandler.Archive)

			admin.PUT("/materials/:id", materialHandler.Update)
			admin.DELETE("/materials/:id", materialHandler.Delete)
			admin.PUT("/materials/:id/archive", materialHandler.Archive)
			admin.PUT("/materials/:id/unarchive", materialHandler.Unarchive)

			// ------------------------------
			// REPORTS
			// ------------------------------
			admin.GET("/reports/dashboard", reportHandler.Dashboard)
			admin.GET("/reports/job-costs/:id", reportHandler.JobCosts)
			admin.GET("/reports/materials", reportHandler.Materials)
			admin.GET("/reports/attendance-alerts", reportHandler.AttendanceAlerts)

			admin.GET("/reports/export/job/:id", reportHandler.ExportJob)
			admin.GET("/reports/export/time-entries", reportHandler.ExportTimeEntries)
			admin.GET("/reports/export/materials", reportHandler.ExportMaterials)
			admin.GET("/reports/export/attendance-alerts", reportHandler.ExportAttendanceAlerts)

			// ------------------------------
			// QUOTES
			// ------------------------------
			admin.POST("/quotes", quoteHandler.Create)
			admin.GET("/quotes", quoteHandler.List)
			admin.GET("/quotes/:id", quoteHandler.Get)
			admin.PUT("/quotes/:id", quoteHandler.Update)
			admin.DELETE("/quotes/:id", quoteHandler.Delete)
			admin.POST("/quotes/:id/send", quoteHandler.Send)
			admin.POST("/quotes/:id/convert", quoteHandler.Convert)
			admin.POST("/quotes/:id/photos", quoteHandler.UploadPhoto)
			admin.DELETE("/quotes/:id/photos/:photoId", quoteHandler.DeletePhoto)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return func() {
		auditDispatcher.Close()
		closeLimiter()
	}
}

// loginLimiter uses redis when REDIS_URL is set and reachable, process
// memory otherwise.
func loginLimiter(ctx context.Context, cfg *config.Config, given ratelimit.Limiter) (ratelimit.Limiter, func()) {
	if given != nil {
		return given, func() {}
	}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("invalid REDIS_URL, using in-memory login limiter: %v", err)
		} else {
			client := redis.NewClient(opt)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := client.Ping(pingCtx).Err()
			cancel()
			if err == nil {
				log.Printf("login rate limiter using redis")
				return ratelimit.NewRedis(client, "timetracking:ratelimit:", cfg.LoginRateLimit, loginWindow), func() {
					if err := client.Close(); err != nil {
						log.Printf("failed to close redis client: %v", err)
					}
				}
			}
			log.Printf("redis unreachable, using in-memory login limiter: %v", err)
			_ = client.Close()
		}
	}

	mem := ratelimit.NewMemory(cfg.LoginRateLimit, loginWindow)
	runCtx, cancel := context.WithCancel(ctx)
	go mem.Run(runCtx, loginWindow)
	return mem, cancel
}
