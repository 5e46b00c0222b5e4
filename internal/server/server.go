// Package server wires repositories, services and handlers into the HTTP
// router.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic/internal/config"
	"clinic/internal/domain"
	"clinic/internal/middleware"
	"clinic/internal/modules/auth"
	"clinic/internal/modules/blog"
	"clinic/internal/modules/booking"
	"clinic/internal/modules/catalog"
	"clinic/internal/modules/files"
	"clinic/internal/modules/message"
	"clinic/internal/modules/notification"
	"clinic/internal/modules/offer"
	jwtsvc "clinic/internal/pkg/jwt"
	"clinic/internal/pkg/metrics"
	"clinic/internal/pkg/ratelimit"
	"clinic/internal/pkg/response"
	"clinic/internal/pkg/storage"
	"clinic/internal/repository"
)

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Log     zerolog.Logger
	Redis   *redis.Client // nil when not configured
	Storage storage.Storage
}

// Server is the assembled HTTP application.
type Server struct {
	Router *gin.Engine
	Hub    *notification.Hub
	Offers *offer.Service
}

func New(d Deps) *Server {
	cfg := d.Config
	metrics.Register()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// repositories
	userRepo := repository.NewUserRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	offerRepo := repository.NewOfferRepository(d.DB)
	notificationRepo := repository.NewNotificationRepository(d.DB)
	messageRepo := repository.NewMessageRepository(d.DB)
	serviceRepo := repository.NewServiceRepository(d.DB)
	doctorRepo := repository.NewDoctorRepository(d.DB)
	blogRepo := repository.NewBlogRepository(d.DB)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := notification.NewHub()

	// services
	notificationService := notification.NewService(notificationRepo, hub, cfg.BatchConcurrency, d.Log)
	authService := auth.NewService(userRepo, j, cfg.JWTTTL)
	bookingService := booking.NewService(bookingRepo, serviceRepo, notificationService, d.Log)
	offerService := offer.NewService(offerRepo, notificationService, d.Log)
	messageService := message.NewService(messageRepo, notificationService, cfg.BatchConcurrency, d.Log)
	catalogService := catalog.NewService(serviceRepo, doctorRepo)
	blogService := blog.NewService(blogRepo, notificationService)
	filesService := files.NewService(d.Storage)

	// handlers
	authHandler := auth.NewHandler(authService)
	bookingHandler := booking.NewHandler(bookingService)
	offerHandler := offer.NewHandler(offerService)
	notificationHandler := notification.NewHandler(notificationService, hub, j)
	messageHandler := message.NewHandler(messageService)
	catalogHandler := catalog.NewHandler(catalogService)
	blogHandler := blog.NewHandler(blogService)
	filesHandler := files.NewHandler(filesService)

	limiter := ratelimit.New(cfg.RateLimit, d.Redis)

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Middleware())

	r.GET("/healthz", health(d.DB, d.Redis))
	r.GET("/metrics", metrics.Handler())
	if local, ok := d.Storage.(*storage.LocalStorage); ok && strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		r.Static(cfg.Storage.PublicURL, local.BaseDir())
	}

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		offerHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		blogHandler.RegisterPublicRoutes(v1, middleware.OptionalJWTAuth(j))
		bookingHandler.RegisterPublicRoutes(v1,
			middleware.RateLimit(limiter, "bookings", d.Log),
			middleware.OptionalJWTAuth(j),
		)
		messageHandler.RegisterPublicRoutes(v1, middleware.RateLimit(limiter, "messages", d.Log))
		notificationHandler.RegisterWSRoute(v1)

		// any signed-in user
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
		}

		// every dashboard role
		staff := v1.Group("")
		staff.Use(middleware.JWTAuth(j), middleware.StaffOnly())
		{
			notificationHandler.RegisterRoutes(staff, middleware.AdminOnly())
			filesHandler.RegisterRoutes(staff)
		}

		// front desk
		desk := v1.Group("")
		desk.Use(middleware.JWTAuth(j), middleware.RequireRole(domain.RoleAdmin, domain.RoleSupport))
		{
			bookingHandler.RegisterDeskRoutes(desk)
			messageHandler.RegisterDeskRoutes(desk)
		}

		writers := v1.Group("")
		writers.Use(middleware.JWTAuth(j), middleware.RequireRole(domain.RoleAdmin, domain.RoleEditor, domain.RoleAuthor))
		{
			blogHandler.RegisterWriterRoutes(writers)
		}

		editors := v1.Group("")
		editors.Use(middleware.JWTAuth(j), middleware.RequireRole(domain.RoleAdmin, domain.RoleEditor))
		{
			blogHandler.RegisterEditorRoutes(editors)
		}

		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			authHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
			offerHandler.RegisterAdminRoutes(admin)
			messageHandler.RegisterAdminRoutes(admin)
			catalogHandler.RegisterAdminRoutes(admin)
		}
	}

	return &Server{Router: r, Hub: hub, Offers: offerService}
}

func health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		status := http.StatusOK

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}

		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				// rate limiting falls open, so redis is not fatal
				checks["redis"] = err.Error()
			}
		}

		if status != http.StatusOK {
			response.ErrorWithDetails(c, status, "UNAVAILABLE", "Dependency check failed", checks)
			return
		}
		response.Success(c, status, checks)
	}
}
