package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/digital-user-report/internal/application"
	"github.com/oksasatya/digital-user-report/internal/container"
	pginfra "github.com/oksasatya/digital-user-report/internal/infrastructure/postgres"
	"github.com/oksasatya/digital-user-report/internal/infrastructure/reportapi"
	handlers "github.com/oksasatya/digital-user-report/internal/interface/http"
	"github.com/oksasatya/digital-user-report/internal/interface/middleware"
	"github.com/oksasatya/digital-user-report/internal/router/modules"
	"github.com/oksasatya/digital-user-report/pkg/helpers"
)

type Services struct {
	Users   *application.UserQueryService
	Reasons *application.ReasonService
	Clients *application.ClientReportService
	Photos  *application.PhotoService
	Reports *application.ReportService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := application.NewUserQueryService(pginfra.NewDigitalUserRepository(pool), logger)

	var pub application.EventPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	index := application.NewReasonIndex(container.GetES(), cfg.ESReasonsIndex, logger)
	reasons := application.NewReasonService(pginfra.NewReasonRepository(pool), pub, index, logger)

	var store application.PhotoStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		store = helpers.NewGCSObjectStore(gcs, cfg.GCSBucket)
	}

	api := reportapi.New(cfg.ReportAPIBaseURL, cfg.ReportAPITimeout)

	return Services{
		Users:   users,
		Reasons: reasons,
		Clients: application.NewClientReportService(users, reasons, cfg.Location()),
		Photos:  application.NewPhotoService(users, store, logger),
		Reports: application.NewReportService(api, container.GetRedis(), cfg.ReportCacheTTL, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	rdb := container.GetRedis()
	svc := buildServices()

	internal := middleware.AllowPrivateIP()
	readLimit := middleware.RateLimit(rdb, middleware.RatePolicy{Name: "read", Limit: 300, Window: time.Minute, Key: middleware.KeyByIP(), Allow: internal})
	proxyLimit := middleware.RateLimit(rdb, middleware.RatePolicy{Name: "proxy", Limit: 120, Window: time.Minute, Key: middleware.KeyByIPAndPath(), Allow: internal})
	writeLimit := middleware.RateLimit(rdb, middleware.RatePolicy{Name: "write", Limit: 60, Window: time.Minute, Key: middleware.KeyByOperator(), Allow: internal})
	opsLimit := middleware.RateLimit(rdb, middleware.RatePolicy{Name: "ops", Limit: 120, Window: time.Minute, Key: middleware.KeyByIP(), Allow: internal})

	var operatorAuth gin.HandlerFunc
	if cfg.OperatorAuthEnabled {
		operatorAuth = middleware.OperatorAuth(container.GetJWT())
	}

	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Clients, svc.Users, svc.Photos), readLimit))
	r.Add(modules.NewReasonModule(handlers.NewReasonHandler(svc.Reasons), operatorAuth, writeLimit))
	r.Add(modules.NewReportModule(handlers.NewReportHandler(svc.Reports), proxyLimit))

	var db handlers.Pinger
	if pool := container.GetPGPool(); pool != nil {
		db = pool
	}
	r.AddRoot(modules.NewOpsModule(handlers.NewHealthHandler(db), cfg.MetricsEnabled, opsLimit))
}
