package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/database"
	_ "github.com/hawrami/events-iraq-backend/docs"
	"github.com/hawrami/events-iraq-backend/internal/admin"
	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/banner"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/internal/message"
	"github.com/hawrami/events-iraq-backend/internal/notification"
	"github.com/hawrami/events-iraq-backend/internal/promotion"
	"github.com/hawrami/events-iraq-backend/internal/refdata"
	"github.com/hawrami/events-iraq-backend/internal/reports"
	"github.com/hawrami/events-iraq-backend/internal/translation"
	"github.com/hawrami/events-iraq-backend/middleware"
)

// Setup wires every module and registers the HTTP routes.
// Returns the notification service so main can hand it to the Kafka consumer.
func Setup(r *gin.Engine, cfg *config.Config) notification.Service {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded event images are served straight from disk
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	// ========== Shared services ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	refRepo := refdata.NewRepository(database.DB)
	refSvc := refdata.NewService(refRepo)
	refHandler := refdata.NewHandler(refSvc)

	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, refSvc, auditSvc)
	eventHandler := event.NewHandler(eventSvc, cfg.UploadDir)

	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, notification.NewFCMChannel())
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Auth ==========
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	// ========== Public ==========
	{
		api.GET("/cities", refHandler.GetCities)
		api.GET("/categories", refHandler.GetCategories)

		// Event listings are public but show attendance state when logged in
		api.GET("/events", middleware.OptionalAuthMiddleware(cfg, authSvc), eventHandler.ListEvents)
		api.GET("/events/:id", middleware.OptionalAuthMiddleware(cfg, authSvc), eventHandler.GetEvent)

		bannerRepo := banner.NewRepository(database.DB)
		bannerSvc := banner.NewService(bannerRepo, auditSvc)
		bannerHandler := banner.NewHandler(bannerSvc)
		api.GET("/banners", bannerHandler.GetBanners)
		api.POST("/banners/:id/click", bannerHandler.TrackClick)
		api.POST("/banners/:id/view", bannerHandler.TrackView)

		translationRepo := translation.NewRepository(database.DB)
		translationSvc := translation.NewService(translationRepo)
		translationHandler := translation.NewHandler(translationSvc)
		api.GET("/translations/:lang", translationHandler.GetTranslations)

		// ========== Admin (declared here to reuse the handlers above) ==========
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.AuthMiddleware(cfg, authSvc))
		adminGroup.Use(middleware.RBACMiddleware(auth.RoleAdmin))
		{
			adminRepo := admin.NewRepository(database.DB)
			adminSvc := admin.NewService(adminRepo, auditSvc)
			adminHandler := admin.NewHandler(adminSvc)

			adminGroup.GET("/hosts", adminHandler.ListHosts)
			adminGroup.PATCH("/hosts/:id/approve", adminHandler.ApproveHost)
			adminGroup.PATCH("/hosts/:id/reject", adminHandler.RejectHost)

			adminGroup.GET("/events/pending", adminHandler.ListPendingEvents)
			adminGroup.PATCH("/events/:id/approve", adminHandler.ApproveEvent)
			adminGroup.PATCH("/events/:id/reject", adminHandler.RejectEvent)

			adminGroup.GET("/users", adminHandler.GetUsers)
			adminGroup.GET("/stats", adminHandler.GetStats)

			adminGroup.GET("/banners", bannerHandler.ListAllBanners)
			adminGroup.POST("/banners", bannerHandler.CreateBanner)
			adminGroup.PUT("/banners/:id", bannerHandler.UpdateBanner)
			adminGroup.DELETE("/banners/:id", bannerHandler.DeleteBanner)

			adminGroup.PUT("/translations", translationHandler.UpsertTranslation)

			adminGroup.GET("/auditlogs", auditHandler.GetAuditLogs)
			adminGroup.GET("/auditlogs/stats", auditHandler.GetAuditLogStats)
			adminGroup.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)

			reportsRepo := reports.NewRepository(database.DB)
			reportsSvc := reports.NewService(reportsRepo, auditSvc)
			reportsHandler := reports.NewHandler(reportsSvc)
			adminGroup.GET("/reports/:type", reportsHandler.GenerateReport)

			adminGroup.POST("/notifications/broadcast", notifHandler.Broadcast)
		}
	}

	// ========== Authenticated ==========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.PATCH("/auth/language", authHandler.UpdateLanguage)
		protected.PUT("/auth/host-profile", authHandler.SubmitHostProfile)

		protected.POST("/events", eventHandler.CreateEvent)
		protected.PUT("/events/:id", eventHandler.UpdateEvent)
		protected.DELETE("/events/:id", eventHandler.DeleteEvent)
		protected.GET("/events/mine", eventHandler.ListMyEvents)
		protected.POST("/events/:id/attend", eventHandler.ToggleAttendance)
		protected.POST("/events/upload-image", eventHandler.UploadImage)

		messageRepo := message.NewRepository(database.DB)
		messageSvc := message.NewService(messageRepo, authRepo)
		messageHandler := message.NewHandler(messageSvc)

		protected.POST("/messages", messageHandler.SendMessage)
		protected.GET("/messages", messageHandler.ListConversations)
		protected.GET("/messages/unread-count", messageHandler.UnreadCount)
		protected.GET("/messages/:userId", messageHandler.GetConversation)

		protected.GET("/notifications", notifHandler.GetMyNotifications)
		protected.GET("/notifications/unread-count", notifHandler.UnreadCount)
		protected.PATCH("/notifications/read-all", notifHandler.MarkAllRead)
		protected.PATCH("/notifications/:id/read", notifHandler.MarkRead)
		protected.POST("/notifications/device-tokens", notifHandler.RegisterFCMToken)
		protected.DELETE("/notifications/device-tokens", notifHandler.UnregisterFCMToken)

		promotionRepo := promotion.NewRepository(database.DB)
		promotionSvc := promotion.NewService(promotionRepo, eventRepo, cfg, auditSvc)
		promotionHandler := promotion.NewHandler(promotionSvc)

		protected.POST("/promotions", promotionHandler.StartPromotion)
		protected.POST("/promotions/verify", promotionHandler.VerifyPayment)
		protected.GET("/promotions/mine", promotionHandler.ListMyPromotions)
	}

	return notifSvc
}
