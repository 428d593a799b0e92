package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/voxcrm/backend/internal/config"
	"github.com/voxcrm/backend/internal/db"
	"github.com/voxcrm/backend/internal/http/handlers"
	"github.com/voxcrm/backend/internal/http/middleware"
	"github.com/voxcrm/backend/internal/models"
	"github.com/voxcrm/backend/internal/service"

	_ "github.com/voxcrm/backend/docs"
)

func Router(cfg config.Config, store *db.Store, scheduler *service.Scheduler, voice *service.VoiceService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.WebhookSecretHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Scheduler: scheduler,
		Voice:     voice,
		Validator: validator.New(),
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.Authenticate(cfg.JWTSecret), h.Me)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(cfg.JWTSecret))
	{
		authed.GET("/customers", h.CustomersList)
		authed.GET("/customers/:id", h.CustomerDetails)
		authed.POST("/customers", h.CustomerCreate)
		authed.PUT("/customers/:id", h.CustomerUpdate)
		authed.DELETE("/customers/:id", h.CustomerDelete)

		authed.GET("/appointments", h.AppointmentsList)
		authed.GET("/appointments/:id", h.AppointmentDetails)
		authed.POST("/appointments", h.AppointmentCreate)
		authed.PUT("/appointments/:id", h.AppointmentUpdate)
		authed.DELETE("/appointments/:id", h.AppointmentDelete)

		authed.GET("/voice-calls", h.VoiceCallsList)
		authed.GET("/voice-calls/:id", h.VoiceCallDetails)

		authed.GET("/sync/status", h.SyncStatus)
	}

	admin := api.Group("/sync")
	admin.Use(middleware.Authenticate(cfg.JWTSecret), middleware.Authorize(models.RoleAdmin))
	{
		admin.POST("/configure", h.ConfigureSync)
		admin.POST("/trigger", h.TriggerSync)
	}

	webhooks := api.Group("/voice-events")
	webhooks.Use(middleware.WebhookSecret(cfg.WebhookSecret))
	{
		webhooks.POST("/call-started", h.VoiceCallStarted)
		webhooks.POST("/call-ended", h.VoiceCallEnded)
		webhooks.POST("/transcription", h.VoiceTranscription)
		webhooks.POST("/appointment", h.VoiceAppointment)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
