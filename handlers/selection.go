package handlers

import (
	"errors"
	"net/http"
	"time"

	"refugio/models"
	"refugio/services/availability"
	"refugio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SelectionHandler drives the two-click range pick for the calendar widget.
// The pick itself is the pure state machine in services/availability; this
// layer only parks it in redis between clicks.
type SelectionHandler struct {
	Provider IndexProvider
	Cache    *redis.Client
}

func NewSelectionHandler(provider IndexProvider, cache *redis.Client) *SelectionHandler {
	return &SelectionHandler{Provider: provider, Cache: cache}
}

// StartSelectionHandler creates an empty selection session for a property.
func (h *SelectionHandler) StartSelectionHandler(c *gin.Context) {
	propertyID := c.Param("propertyId")
	if _, ok := h.readyQueries(c, propertyID); !ok {
		return
	}

	sessionID := uuid.New().String()
	session := utils.SelectionSession{
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	if err := utils.SaveSelectionSession(h.Cache, sessionID, session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create selection session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"selection": session.Selection,
		"state":     session.Selection.State(),
	})
}

// SelectDateHandler applies one date click to a session. A click on a blocked
// date is a rejected transition, not a failure: the current selection comes
// back unchanged alongside the reason.
func (h *SelectionHandler) SelectDateHandler(c *gin.Context) {
	var input struct {
		Date models.DateOnly `json:"date"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": "a date in YYYY-MM-DD form is required"})
		return
	}

	session, q, ok := h.loadSession(c)
	if !ok {
		return
	}

	// The index may have moved since the last click; never trust a stored
	// selection without re-checking it.
	current := session.Selection.Revalidate(q)

	next, err := current.SelectDate(q, input.Date)
	if errors.Is(err, availability.ErrDateUnavailable) {
		session.Selection = current
		if err := utils.SaveSelectionSession(h.Cache, c.Param("sessionID"), *session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save selection session"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"error":     "date unavailable",
			"selection": current,
			"state":     current.State(),
		})
		return
	}

	session.Selection = next
	if err := utils.SaveSelectionSession(h.Cache, c.Param("sessionID"), *session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save selection session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"selection": next,
		"state":     next.State(),
	})
}

// GetSelectionHandler returns the current pick, re-validated against the live
// index.
func (h *SelectionHandler) GetSelectionHandler(c *gin.Context) {
	session, q, ok := h.loadSession(c)
	if !ok {
		return
	}

	revalidated := session.Selection.Revalidate(q)
	if revalidated != session.Selection {
		session.Selection = revalidated
		if err := utils.SaveSelectionSession(h.Cache, c.Param("sessionID"), *session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save selection session"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"selection": revalidated,
		"state":     revalidated.State(),
	})
}

// ClearSelectionHandler drops the session.
func (h *SelectionHandler) ClearSelectionHandler(c *gin.Context) {
	if err := utils.DeleteSelectionSession(h.Cache, c.Param("sessionID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear selection session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// loadSession fetches the session for the request and the live queries for
// its property, writing the error response itself when either is unusable.
func (h *SelectionHandler) loadSession(c *gin.Context) (*utils.SelectionSession, availability.Queries, bool) {
	session, err := utils.GetSelectionSession(h.Cache, c.Param("sessionID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection session not found or expired"})
		return nil, nil, false
	}
	if session.PropertyID != c.Param("propertyId") {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection session not found or expired"})
		return nil, nil, false
	}
	q, ok := h.readyQueries(c, session.PropertyID)
	if !ok {
		return nil, nil, false
	}
	return session, q, true
}

func (h *SelectionHandler) readyQueries(c *gin.Context, propertyID string) (availability.Queries, bool) {
	q, err := h.Provider.Queries(propertyID)
	if errors.Is(err, availability.ErrUnknownProperty) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown property"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "availability lookup failed"})
		return nil, false
	}
	if !q.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "availability still loading"})
		return nil, false
	}
	return q, true
}
