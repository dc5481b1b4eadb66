// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/handlers"
	"github.com/teeloom/teeloom-backend/internal/middleware"
	"github.com/teeloom/teeloom-backend/internal/services"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize storage service")
	}
	notificationService := services.NewNotificationService(db, cfg)

	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db, cfg, storageService)
	requestService := services.NewRequestService(db, cfg, storageService, notificationService)
	designService := services.NewDesignService(db, cfg, storageService, notificationService)
	canvasService := services.NewCanvasService(db, cfg, storageService)
	previewService := services.NewPreviewService(db, cfg, storageService)
	sizeService := services.NewSizeService(db)
	inventoryService := services.NewInventoryService(db, notificationService)
	billingService := services.NewBillingService(db, cfg, designService, notificationService)
	adminService := services.NewAdminService(db, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	requestHandler := handlers.NewRequestHandler(requestService)
	designHandler := handlers.NewDesignHandler(designService, canvasService, previewService)
	canvasHandler := handlers.NewCanvasHandler(canvasService)
	sizeHandler := handlers.NewSizeHandler(sizeService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	billingHandler := handlers.NewBillingHandler(billingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Profile and portfolio routes
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.PUT("/password", profileHandler.ChangePassword)
			profile.POST("/avatar", middleware.UploadRateLimit(), profileHandler.UploadAvatar)
			profile.GET("/status", profileHandler.GetProfileStatus)

			// Designer-only profile surface
			designer := profile.Group("")
			designer.Use(middleware.DesignerRequired())
			{
				designer.PUT("/contact", profileHandler.UpdateContact)
				designer.PUT("/portfolio", profileHandler.SavePortfolio)
				designer.POST("/portfolio/skills", profileHandler.AddSkill)
				designer.DELETE("/portfolio/skills", profileHandler.RemoveSkill)
				designer.POST("/portfolio/links", profileHandler.AddSocialLink)
				designer.DELETE("/portfolio/links/:id", profileHandler.RemoveSocialLink)
			}
		}

		// Public designer portfolios
		designers := v1.Group("/designers")
		{
			designers.GET("/:id/portfolio", profileHandler.GetPublicPortfolio)
		}

		// Design request routes
		requests := v1.Group("/requests")
		requests.Use(middleware.AuthRequired())
		{
			requests.POST("", requestHandler.SubmitRequest)
			requests.POST("/sketch", middleware.UploadRateLimit(), requestHandler.UploadSketch)
			requests.GET("/mine", requestHandler.ListMyRequests)
			requests.GET("/board", requestHandler.ListRequestCards)
			requests.GET("/:id", requestHandler.GetRequest)
		}

		// Design routes
		designs := v1.Group("/designs")
		designs.Use(middleware.AuthRequired())
		{
			designs.GET("", designHandler.ListDesigns)
			designs.GET("/:id", designHandler.GetDesign)
			designs.POST("/:id/approve", designHandler.ApproveDesign)
			designs.GET("/:id/previews", designHandler.ListPreviews)
			designs.GET("/:id/canvases", canvasHandler.ListCanvases)
			designs.GET("/:id/canvases/:region", canvasHandler.GetCanvas)

			// Designer-only design surface
			protected := designs.Group("")
			protected.Use(middleware.DesignerRequired())
			{
				protected.POST("", designHandler.CreateDesign)
				protected.POST("/:id/finish", designHandler.FinishDesign)
				protected.PUT("/:id/deadline", designHandler.SetDeadline)
				protected.POST("/:id/sources", middleware.UploadRateLimit(), designHandler.UploadSourceFile)
				protected.POST("/:id/previews", middleware.UploadRateLimit(), designHandler.GeneratePreviews)
				protected.POST("/:id/canvases/:region", canvasHandler.EnsureCanvas)
				protected.PUT("/:id/canvases/:region", middleware.CanvasRateLimit(), canvasHandler.SaveCanvas)
				protected.PUT("/:id/canvases/:region/thumbnail", middleware.UploadRateLimit(), canvasHandler.UploadThumbnail)
				protected.POST("/:id/canvases/:region/images", middleware.UploadRateLimit(), canvasHandler.UploadCanvasImage)
			}
		}

		// Shirt size catalog (public reads)
		sizes := v1.Group("/sizes")
		{
			sizes.GET("", sizeHandler.ListSizes)
			sizes.GET("/:id", sizeHandler.GetSize)
		}

		// Billing routes
		billing := v1.Group("/billing")
		billing.Use(middleware.AuthRequired())
		{
			billing.POST("/invoices", middleware.DesignerRequired(), billingHandler.CreateInvoice)
			billing.POST("/confirm", billingHandler.ConfirmPayment)
			billing.GET("/history", billingHandler.GetBillingHistory)
			billing.GET("/earnings", middleware.DesignerRequired(), billingHandler.GetEarnings)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			// Dashboard
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/stats", adminHandler.GetDashboardStats)
			}

			// User management
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", adminHandler.GetUsers)
				adminUsers.PUT("/:id/status", adminHandler.UpdateUserStatus)
			}

			// Request review
			adminRequests := admin.Group("/requests")
			{
				adminRequests.GET("", requestHandler.ListRequests)
				adminRequests.PUT("/:id/approve", requestHandler.ApproveRequest)
				adminRequests.PUT("/:id/reject", requestHandler.RejectRequest)
			}

			// Size catalog management
			adminSizes := admin.Group("/sizes")
			{
				adminSizes.POST("", sizeHandler.CreateSize)
				adminSizes.PUT("/:id", sizeHandler.UpdateSize)
				adminSizes.DELETE("/:id", sizeHandler.DeleteSize)
			}

			// Inventory management
			adminInventory := admin.Group("/inventory")
			{
				adminInventory.GET("/categories", inventoryHandler.ListCategories)
				adminInventory.POST("/categories", inventoryHandler.CreateCategory)
				adminInventory.PUT("/categories/:id", inventoryHandler.UpdateCategory)
				adminInventory.DELETE("/categories/:id", inventoryHandler.DeleteCategory)
				adminInventory.GET("/items", inventoryHandler.ListItems)
				adminInventory.POST("/items", inventoryHandler.CreateItem)
				adminInventory.GET("/items/:id", inventoryHandler.GetItem)
				adminInventory.PUT("/items/:id", inventoryHandler.UpdateItem)
				adminInventory.DELETE("/items/:id", inventoryHandler.DeleteItem)
				adminInventory.POST("/items/:id/adjust", inventoryHandler.AdjustStock)
				adminInventory.GET("/low-stock", inventoryHandler.ListLowStock)
			}

			// Billing management
			adminBilling := admin.Group("/billing")
			{
				adminBilling.POST("/refunds", billingHandler.ProcessRefund)
			}

			// Settings management
			adminSettings := admin.Group("/settings")
			{
				adminSettings.GET("", adminHandler.GetSettings)
				adminSettings.PUT("/:category/:key", adminHandler.UpdateSetting)
			}

			// Audit logs
			adminAudit := admin.Group("/audit-logs")
			{
				adminAudit.GET("", adminHandler.GetAuditLogs)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
