// File: refugio/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"refugio/models"
	"refugio/services/admin"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the panel operations: blocks, pricing, device.
type AdminHandler struct {
	Svc admin.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.Service) *AdminHandler {
	return &AdminHandler{Svc: svc}
}

// LoginHandler opens an admin session.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	token, err := ah.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if errors.Is(err, admin.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		zap.L().Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// LogoutHandler revokes the current session token.
func (ah *AdminHandler) LogoutHandler(c *gin.Context) {
	token := c.GetString("adminToken")
	if err := ah.Svc.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// BlockDatesHandler writes a manual block over an inclusive date range.
func (ah *AdminHandler) BlockDatesHandler(c *gin.Context) {
	var input struct {
		From models.DateOnly `json:"from"`
		To   models.DateOnly `json:"to"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.From.IsZero() || input.To.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "from and to dates are required"})
		return
	}

	booking, err := ah.Svc.BlockDates(c.Request.Context(), c.Param("propertyId"), input.From, input.To)
	switch {
	case errors.Is(err, models.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, gin.H{"error": "from is after to"})
		return
	case errors.Is(err, admin.ErrUnknownProperty):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown property"})
		return
	case err != nil:
		zap.L().Error("failed to block dates", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to block dates"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBlocksHandler returns every stored block for a property.
func (ah *AdminHandler) ListBlocksHandler(c *gin.Context) {
	bookings, err := ah.Svc.ListBlocks(c.Request.Context(), c.Param("propertyId"))
	if errors.Is(err, admin.ErrUnknownProperty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown property"})
		return
	}
	if err != nil {
		zap.L().Error("failed to list blocks", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blocks"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// RemoveBlockHandler deletes one block.
func (ah *AdminHandler) RemoveBlockHandler(c *gin.Context) {
	err := ah.Svc.RemoveBlock(c.Request.Context(), c.Param("propertyId"), c.Param("bookingId"))
	switch {
	case errors.Is(err, admin.ErrUnknownProperty), errors.Is(err, mongo.ErrNoDocuments):
		c.JSON(http.StatusNotFound, gin.H{"error": "block not found"})
		return
	case err != nil:
		zap.L().Error("failed to remove block", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove block"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// GetPricingHandler is public: the site renders the nightly price with it.
func (ah *AdminHandler) GetPricingHandler(c *gin.Context) {
	pricing, err := ah.Svc.NightlyPrice(c.Request.Context(), c.Param("propertyId"))
	if errors.Is(err, admin.ErrUnknownProperty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown property"})
		return
	}
	if err != nil {
		zap.L().Error("failed to fetch pricing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pricing"})
		return
	}
	c.JSON(http.StatusOK, pricing)
}

// UpdatePricingHandler sets the nightly price for a property.
func (ah *AdminHandler) UpdatePricingHandler(c *gin.Context) {
	var input struct {
		DailyPrice float64 `json:"dailyPrice"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.DailyPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "dailyPrice must be a positive number"})
		return
	}

	pricing, err := ah.Svc.SetNightlyPrice(c.Request.Context(), c.Param("propertyId"), input.DailyPrice)
	if errors.Is(err, admin.ErrUnknownProperty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown property"})
		return
	}
	if err != nil {
		zap.L().Error("failed to update pricing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update pricing"})
		return
	}
	c.JSON(http.StatusOK, pricing)
}

// RegisterDeviceHandler stores the FCM token for inquiry pushes.
func (ah *AdminHandler) RegisterDeviceHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.FCMToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "fcmToken is required"})
		return
	}
	if err := ah.Svc.RegisterDevice(c.Request.Context(), input.FCMToken); err != nil {
		zap.L().Error("failed to register admin device", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}
