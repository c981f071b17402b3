package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hawrami/events-iraq-backend/config"
	"github.com/hawrami/events-iraq-backend/database"
	"github.com/hawrami/events-iraq-backend/internal/auditlog"
	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/banner"
	"github.com/hawrami/events-iraq-backend/internal/event"
	"github.com/hawrami/events-iraq-backend/internal/message"
	"github.com/hawrami/events-iraq-backend/internal/notification"
	"github.com/hawrami/events-iraq-backend/internal/promotion"
	"github.com/hawrami/events-iraq-backend/internal/refdata"
	"github.com/hawrami/events-iraq-backend/internal/translation"
	"github.com/hawrami/events-iraq-backend/routes"
	"github.com/hawrami/events-iraq-backend/utils"
)

// @title Events Iraq API
// @version 1.0
// @description Backend for discovering and hosting local events across Iraq and Kurdistan.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (optional, caching and rate limits degrade without it)
	if err := utils.InitRedis(); err != nil {
		log.Printf("⚠️ Redis unavailable, continuing without cache: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka()

	// Init Firebase
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized successfully")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auth.HostProfile{},
		&refdata.City{},
		&refdata.Category{},
		&refdata.Sponsor{},
		&event.Event{},
		&event.Attendance{},
		&message.Message{},
		&banner.Banner{},
		&translation.Translation{},
		&notification.InAppNotification{},
		&notification.FCMDeviceToken{},
		&promotion.Promotion{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed baseline data
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin: %v", err))
	}
	if err := refdata.SeedReferenceData(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed cities and categories: %v", err))
	}
	if err := translation.SeedTranslations(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed translations: %v", err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		panic(fmt.Sprintf("❌ Failed to create upload directory: %v", err))
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	notifSvc := routes.Setup(router, cfg)

	// In-app notifications arrive through Kafka
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	go notification.StartKafkaConsumer(consumerCtx, notifSvc)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Server starting on port %s\n", port)
	fmt.Printf("📁 Upload directory: %s\n", cfg.UploadDir)

	if err := router.Run(":" + port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
