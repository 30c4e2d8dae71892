package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/teetime/campusride/internal/auth"
	"github.com/teetime/campusride/internal/cache"
	"github.com/teetime/campusride/internal/config"
	"github.com/teetime/campusride/internal/http/handlers"
	"github.com/teetime/campusride/internal/http/middlewares"
	"github.com/teetime/campusride/internal/observability"
	"github.com/teetime/campusride/internal/service"
)

type Deps struct {
	Cfg      config.Config
	Prom     *observability.Prom
	Registry *prometheus.Registry
	JWT      *auth.Manager
	Auth     *service.AuthService
	Rides    *service.RideService
	Cars     *service.CarService
}

func NewRouter(log *slog.Logger, d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("campusride-api"))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health + metrics
	h := handlers.NewHealthHandler(nil)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers
	authHandler := handlers.NewAuthHandler(d.Auth, d.JWT)
	pendingCache := cache.NewPendingRides(2 * time.Second)
	ridesHandler := handlers.NewRidesHandler(d.Rides, pendingCache, d.Prom)
	carsHandler := handlers.NewCarsHandler(d.Cars)
	exportHandler := handlers.NewExportHandler(d.Rides, d.Prom)

	authMw := middlewares.NewAuthMiddleware(d.JWT)

	r.POST("/auth/signup", authHandler.SignUp)
	r.POST("/auth/login", authHandler.Login)

	// authenticated routes
	authed := r.Group("/", authMw.RequireAuth())

	authed.POST("/rides", ridesHandler.CreateRide)
	authed.GET("/rides/pending", ridesHandler.ListPending)
	authed.GET("/rides/mine", ridesHandler.ListMine)
	authed.POST("/rides/:id/cancel", ridesHandler.CancelRide)
	authed.GET("/rides/export", exportHandler.ExportRides)

	// driver-only routes
	driver := authed.Group("/", authMw.RequireDriver())

	driver.GET("/rides/driving", ridesHandler.ListDriving)
	driver.POST("/rides/:id/accept", ridesHandler.AcceptRide)
	driver.POST("/rides/:id/complete", ridesHandler.CompleteRide)
	driver.POST("/cars", carsHandler.AddCar)
	driver.GET("/cars", carsHandler.ListCars)
	driver.DELETE("/cars/:id", carsHandler.DeleteCar)

	return r
}
