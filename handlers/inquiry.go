package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"refugio/config"
	"refugio/cron"
	"refugio/models"
	"refugio/services/availability"
	"refugio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InquiryHandler turns a completed date pick into a guest inquiry: a push to
// the admin through the task queue plus a prefilled WhatsApp link back to the
// guest. It never writes a booking; only the admin blocks dates.
type InquiryHandler struct {
	Provider IndexProvider
	Cache    *redis.Client
	Tasks    *asynq.Client
}

func NewInquiryHandler(provider IndexProvider, cache *redis.Client, tasks *asynq.Client) *InquiryHandler {
	return &InquiryHandler{Provider: provider, Cache: cache, Tasks: tasks}
}

// CreateInquiryHandler accepts the session holding a completed selection.
func (h *InquiryHandler) CreateInquiryHandler(c *gin.Context) {
	propertyID := c.Param("propertyId")
	var input struct {
		SessionID string `json:"sessionId"`
		GuestName string `json:"guestName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.SessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "sessionId is required"})
		return
	}

	session, err := utils.GetSelectionSession(h.Cache, input.SessionID)
	if err != nil || session.PropertyID != propertyID {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection session not found or expired"})
		return
	}

	q, err := h.Provider.Queries(propertyID)
	if err != nil || !q.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability still loading"})
		return
	}

	selection := session.Selection.Revalidate(q)
	if selection.State() != availability.SelectionComplete {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "selection is not a completed range",
			"selection": selection,
			"state":     selection.State(),
		})
		return
	}

	inquiry := models.Inquiry{
		PropertyID: propertyID,
		From:       selection.From,
		To:         selection.To,
		GuestName:  input.GuestName,
		CreatedAt:  time.Now(),
	}

	// The WhatsApp link is the primary channel; a queue hiccup must not cost
	// the guest their inquiry.
	if task, err := cron.NewInquiryTask(inquiry); err == nil {
		if _, err := h.Tasks.Enqueue(task); err != nil {
			zap.L().Warn("failed to enqueue inquiry notification", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"whatsappUrl": WhatsAppURL(inquiry),
		"from":        inquiry.From,
		"to":          inquiry.To,
	})
}

// WhatsAppURL builds the wa.me link carrying the inquiry message the site has
// always sent.
func WhatsAppURL(inquiry models.Inquiry) string {
	msg := fmt.Sprintf(
		"Hola, vi el departamento en la web. Me interesa reservar del %s al %s. ¿Está disponible?",
		spanishDate(inquiry.From), spanishDate(inquiry.To),
	)
	return "https://wa.me/" + config.AppConfig.WhatsAppNumber + "?text=" + url.QueryEscape(msg)
}

var spanishMonths = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func spanishDate(d models.DateOnly) string {
	t := d.Time()
	return fmt.Sprintf("%d de %s", t.Day(), spanishMonths[t.Month()-1])
}
