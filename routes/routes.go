// File: refugio/routes/routes.go
package routes

import (
	"net/http"
	"time"

	"refugio/handlers"
	"refugio/middleware"
	"refugio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoutes(r)
	registerPublicRoutes(r, hb)
	registerAdminRoutes(r, hb)
}

func registerHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// registerPublicRoutes covers everything a guest touches: the property
// catalog, the availability calendar, pricing, date selection, inquiries.
func registerPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	props := r.Group("/api/properties")
	{
		props.GET("", hb.ListProperties)
		props.GET("/:propertyId/availability", hb.GetAvailability)
		props.GET("/:propertyId/pricing", hb.GetPricing)

		props.POST("/:propertyId/selection", hb.StartSelection)
		props.GET("/:propertyId/selection/:sessionID", hb.GetSelection)
		props.PUT("/:propertyId/selection/:sessionID", hb.SelectDate)
		props.DELETE("/:propertyId/selection/:sessionID", hb.ClearSelection)

		props.POST("/:propertyId/inquiries", hb.CreateInquiry)
	}
}

func registerAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("/api/admin")
	admin.POST("/login", hb.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.JWTAuthAdminMiddleware(hb.AuthCache))
	{
		protected.POST("/logout", hb.AdminLogout)
		protected.GET("/properties/:propertyId/blocks", hb.ListBlocks)
		protected.POST("/properties/:propertyId/blocks", hb.BlockDates)
		protected.DELETE("/properties/:propertyId/blocks/:bookingId", hb.RemoveBlock)
		protected.PUT("/properties/:propertyId/pricing", hb.UpdatePricing)
		protected.PUT("/device", hb.RegisterDevice)
	}
}
