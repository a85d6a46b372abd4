package handlers

import (
	"errors"
	"net/http"
	"time"

	"refugio/config"
	"refugio/models"
	"refugio/services/availability"

	"github.com/gin-gonic/gin"
)

// maxCalendarDays bounds one availability query; the widget pages by month.
const maxCalendarDays = 366

// IndexProvider hands out read-only availability queries per property.
type IndexProvider interface {
	Queries(propertyID string) (availability.Queries, error)
}

// AvailabilityHandler serves the public calendar data.
type AvailabilityHandler struct {
	Provider IndexProvider
}

func NewAvailabilityHandler(provider IndexProvider) *AvailabilityHandler {
	return &AvailabilityHandler{Provider: provider}
}

// ListPropertiesHandler returns the configured property catalog.
func (h *AvailabilityHandler) ListPropertiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Properties)
}

type dayStatus struct {
	Date      models.DateOnly `json:"date"`
	Available bool            `json:"available"`
}

// GetAvailabilityHandler returns per-day availability over an inclusive date
// window. Until the live sync has applied a first snapshot the endpoint
// answers 503, so the widget shows a loading state instead of guessing.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	propertyID := c.Param("propertyId")
	q, err := h.Provider.Queries(propertyID)
	if errors.Is(err, availability.ErrUnknownProperty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown property"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "availability lookup failed"})
		return
	}
	if !q.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability still loading"})
		return
	}

	from := models.NewDateOnly(time.Now())
	to := from.AddDays(89)
	if s := c.Query("from"); s != "" {
		if from, err = models.ParseDateOnly(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		to = from.AddDays(89)
	}
	if s := c.Query("to"); s != "" {
		if to, err = models.ParseDateOnly(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to precedes from"})
		return
	}

	days := make([]dayStatus, 0, 90)
	for d := from; !d.After(to); d = d.Next() {
		if len(days) >= maxCalendarDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date window too large"})
			return
		}
		days = append(days, dayStatus{Date: d, Available: q.IsAvailable(d)})
	}

	c.JSON(http.StatusOK, gin.H{
		"propertyId": propertyID,
		"days":       days,
	})
}
