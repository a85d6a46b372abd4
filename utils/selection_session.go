// File: refugio/utils/selection_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"refugio/services/availability"

	"github.com/go-redis/redis/v8"
)

const SelectionSessionPrefix = "selection:"

// SelectionSessionTTL bounds how long an idle calendar pick survives.
const SelectionSessionTTL = 30 * time.Minute

// SelectionSession is one guest's in-progress date pick, keyed by the session
// ID handed to the calendar widget. The stored selection is re-validated
// against the live index every time it is loaded.
type SelectionSession struct {
	PropertyID    string                 `json:"propertyId"`
	Selection     availability.Selection `json:"selection"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// SaveSelectionSession saves the selection session in Redis with a TTL.
func SaveSelectionSession(client *redis.Client, sessionID string, session SelectionSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal selection session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, SelectionSessionPrefix+sessionID, data, SelectionSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save selection session: %w", err)
	}
	return nil
}

// GetSelectionSession retrieves the selection session from Redis.
func GetSelectionSession(client *redis.Client, sessionID string) (*SelectionSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, SelectionSessionPrefix+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var session SelectionSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection session: %w", err)
	}
	return &session, nil
}

// DeleteSelectionSession removes a selection session from Redis.
func DeleteSelectionSession(client *redis.Client, sessionID string) error {
	ctx := context.Background()
	return client.Del(ctx, SelectionSessionPrefix+sessionID).Err()
}
