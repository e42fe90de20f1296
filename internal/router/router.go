// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gurukulpustakalaya/backend/internal/config"
	"github.com/gurukulpustakalaya/backend/internal/handlers"
	"github.com/gurukulpustakalaya/backend/internal/middleware"
	"github.com/gurukulpustakalaya/backend/internal/realtime"
	"github.com/gurukulpustakalaya/backend/internal/services"
	"github.com/gurukulpustakalaya/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, feed realtime.Feed) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db, storageService)
	bookService := services.NewBookService(db, cfg, storageService, feed)
	pdfService := services.NewPDFService(db, cfg, storageService, feed)
	categoryService := services.NewCategoryService(db)
	contactService := services.NewContactService(db, cfg)
	adminService := services.NewAdminService(db, bookService, pdfService, feed)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	bookHandler := handlers.NewBookHandler(bookService, contactService)
	pdfHandler := handlers.NewPDFHandler(pdfService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(adminService, profileService)
	eventsHandler := handlers.NewEventsHandler(feed)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
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
	v1 := r.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Profile routes
		profiles := v1.Group("/profiles")
		{
			profiles.GET("/:id", profileHandler.Get)

			protected := profiles.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/me", profileHandler.Update)
				protected.POST("/me/avatar", middleware.UploadRateLimit(), profileHandler.UploadAvatar)
			}
		}

		// Book routes
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)
			books.GET("/:id/contact", bookHandler.Contact)

			protected := books.Group("")
			protected.Use(middleware.AuthRequired(), middleware.ProfileRequired(profileService))
			{
				protected.GET("/mine", bookHandler.MyBooks)
				protected.POST("", middleware.UploadRateLimit(), bookHandler.Create)
				protected.PUT("/:id", bookHandler.Update)
				protected.PUT("/:id/availability", bookHandler.ToggleAvailability)
				protected.DELETE("/:id", bookHandler.Delete)
			}
		}

		// PDF library routes
		pdfs := v1.Group("/pdfs")
		{
			pdfs.GET("", pdfHandler.List)
			pdfs.GET("/:id", pdfHandler.Get)
			pdfs.GET("/:id/download", pdfHandler.Download)

			protected := pdfs.Group("")
			protected.Use(middleware.AuthRequired(), middleware.ProfileRequired(profileService))
			{
				protected.GET("/mine", pdfHandler.MyPDFs)
				protected.POST("", middleware.UploadRateLimit(), pdfHandler.Create)
				protected.DELETE("/:id", pdfHandler.Delete)
			}
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
		}

		// Live change feed (SSE)
		events := v1.Group("/events")
		{
			events.GET("/:collection", eventsHandler.Stream)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(profileService))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/audit-logs", adminHandler.ListAuditLogs)

			adminBooks := admin.Group("/books")
			{
				adminBooks.GET("", adminHandler.ListBooks)
				adminBooks.PUT("/:id/approve", adminHandler.ApproveBook)
				adminBooks.PUT("/:id/reject", adminHandler.RejectBook)
				adminBooks.DELETE("/:id", adminHandler.DeleteBook)
			}

			adminPDFs := admin.Group("/pdfs")
			{
				adminPDFs.GET("", adminHandler.ListPDFs)
				adminPDFs.PUT("/:id/approve", adminHandler.ApprovePDF)
				adminPDFs.PUT("/:id/reject", adminHandler.RejectPDF)
				adminPDFs.DELETE("/:id", adminHandler.DeletePDF)
			}

			adminCategories := admin.Group("/categories")
			{
				adminCategories.POST("", categoryHandler.Create)
				adminCategories.PUT("/:id", categoryHandler.Update)
				adminCategories.DELETE("/:id", categoryHandler.Delete)
			}

			adminProfiles := admin.Group("/profiles")
			{
				adminProfiles.PUT("/:id/promote", adminHandler.PromoteProfile)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
