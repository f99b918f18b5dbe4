package routes

import (
	"eservices-api/controllers"
	"eservices-api/middleware"
	"eservices-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Municipal E-Services API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Dashboard
			protected.GET("/dashboard/stats",
				middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
				controllers.GetDashboardStats)

			// Zoning clearance applications
			zoning := protected.Group("/zoning-applications")
			{
				zoning.GET("", controllers.ListZoningApplications)
				zoning.GET("/:id", controllers.GetZoningApplication)
				zoning.POST("",
					middleware.RequireRole(models.RoleApplicant, models.RoleAdmin),
					controllers.CreateZoningApplication)
				zoning.POST("/:id/submit",
					middleware.RequireRole(models.RoleApplicant, models.RoleAdmin),
					controllers.SubmitZoningApplication)

				// Inspectors take part in zoning review
				zoning.PATCH("/:id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleInspector, models.RoleAdmin),
					controllers.TransitionZoningStatus)
				zoning.GET("/:id/audit",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.AuditZoningApplication)

				zoning.POST("/:id/documents", controllers.AttachZoningDocument)
				zoning.GET("/:id/documents", controllers.ListZoningDocuments)
				zoning.GET("/:id/documents/:document_id/download", controllers.DownloadZoningDocument)
				zoning.PATCH("/:id/documents/:document_id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.ReviewZoningDocument)
			}

			// Subdivision plan review applications
			subdivision := protected.Group("/subdivision-applications")
			{
				subdivision.GET("", controllers.ListSubdivisionApplications)
				subdivision.GET("/:id", controllers.GetSubdivisionApplication)
				subdivision.POST("",
					middleware.RequireRole(models.RoleApplicant, models.RoleAdmin),
					controllers.CreateSubdivisionApplication)

				subdivision.PATCH("/:id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.TransitionSubdivisionStatus)
				subdivision.POST("/:id/stage-review",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.ReviewSubdivisionStage)
				subdivision.POST("/:id/advance-stage",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.AdvanceSubdivisionStage)
				subdivision.GET("/:id/audit",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.AuditSubdivisionApplication)

				subdivision.POST("/:id/documents", controllers.AttachSubdivisionDocument)
				subdivision.GET("/:id/documents", controllers.ListSubdivisionDocuments)
				subdivision.GET("/:id/documents/:document_id/download", controllers.DownloadSubdivisionDocument)
				subdivision.PATCH("/:id/documents/:document_id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.ReviewSubdivisionDocument)
			}

			// Housing beneficiary applications
			housing := protected.Group("/housing-applications")
			{
				housing.GET("", controllers.ListHousingApplications)
				housing.GET("/:id", controllers.GetHousingApplication)
				housing.POST("",
					middleware.RequireRole(models.RoleApplicant, models.RoleAdmin),
					controllers.CreateHousingApplication)
				housing.POST("/:id/submit",
					middleware.RequireRole(models.RoleApplicant, models.RoleAdmin),
					controllers.SubmitHousingApplication)

				housing.PATCH("/:id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.TransitionHousingStatus)
				housing.GET("/:id/audit",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.AuditHousingApplication)

				housing.POST("/:id/documents", controllers.AttachHousingDocument)
				housing.GET("/:id/documents", controllers.ListHousingDocuments)
				housing.GET("/:id/documents/:document_id/download", controllers.DownloadHousingDocument)
				housing.PATCH("/:id/documents/:document_id/status",
					middleware.RequireRole(models.RoleStaff, models.RoleAdmin),
					controllers.ReviewHousingDocument)
			}
		}
	}
}
