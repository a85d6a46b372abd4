package availability

import (
	"context"
	"sync"
	"time"

	"refugio/models"

	"go.uber.org/zap"
)

// Manager runs one Syncer per configured property and hands out read-only
// index access to the HTTP layer.
type Manager struct {
	source SnapshotSource
	logger *zap.Logger

	mu      sync.RWMutex
	syncers map[string]*Syncer

	done     chan struct{}
	stopOnce sync.Once
}

func NewManager(source SnapshotSource, logger *zap.Logger) *Manager {
	return &Manager{
		source:  source,
		logger:  logger,
		syncers: make(map[string]*Syncer),
		done:    make(chan struct{}),
	}
}

// Start spins up a live sync for every property in the catalog and begins the
// daily boundary roll. On any subscription failure the already-started syncers
// are torn down again.
func (m *Manager) Start(ctx context.Context, properties []models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range properties {
		sy := NewSyncer(m.source, p.ID, m.logger)
		if err := sy.Start(ctx); err != nil {
			for _, started := range m.syncers {
				started.Stop()
			}
			m.syncers = make(map[string]*Syncer)
			return err
		}
		m.syncers[p.ID] = sy
	}
	go m.rollLoop()
	return nil
}

// Queries returns the read-only index for a property.
func (m *Manager) Queries(propertyID string) (Queries, error) {
	sy, err := m.Syncer(propertyID)
	if err != nil {
		return nil, err
	}
	return sy.Index(), nil
}

// Syncer returns the live adapter for a property, for callers that need to
// hook rebuilds or the error side channel.
func (m *Manager) Syncer(propertyID string) (*Syncer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sy, ok := m.syncers[propertyID]
	if !ok {
		return nil, ErrUnknownProperty
	}
	return sy, nil
}

// Stop tears down every subscription. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sy := range m.syncers {
		sy.Stop()
	}
	m.syncers = make(map[string]*Syncer)
}

// rollLoop advances every index past midnight. The extra minute of slack
// keeps the roll clear of clock skew on the boundary itself.
func (m *Manager) rollLoop() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		timer := time.NewTimer(time.Until(next) + time.Minute)
		select {
		case <-m.done:
			timer.Stop()
			return
		case <-timer.C:
			m.mu.RLock()
			for _, sy := range m.syncers {
				sy.RollBoundary()
			}
			m.mu.RUnlock()
		}
	}
}
