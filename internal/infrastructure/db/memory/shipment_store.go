// Package memory provides process-local implementations of the repository
// and coordination ports. It is the default store and backs the tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/intellitrack/tracking-simulator/internal/core/domain"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
)

// ShipmentStore keeps shipment records in a map keyed by normalized id.
// Records are cloned on the way in and out.
type ShipmentStore struct {
	mu   sync.RWMutex
	byID map[string]*domain.ShipmentRecord
}

func NewShipmentStore() *ShipmentStore {
	return &ShipmentStore{byID: make(map[string]*domain.ShipmentRecord)}
}

func (s *ShipmentStore) Create(_ context.Context, rec *domain.ShipmentRecord) error {
	if rec == nil {
		return domain.ErrInvalidState
	}
	c := rec.Clone()
	c.ID = domain.NormalizeTrackingID(c.ID)
	c.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[c.ID]; ok {
		return domain.ErrDuplicateShipment
	}
	s.byID[c.ID] = c
	return nil
}

// FindByID looks a shipment up case-insensitively. Scanner aliases resolve to
// the first stored id with the same prefix.
func (s *ShipmentStore) FindByID(_ context.Context, trackingID string) (*domain.ShipmentRecord, error) {
	id := domain.NormalizeTrackingID(trackingID)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if rec, ok := s.byID[id]; ok {
		return rec.Clone(), nil
	}
	if domain.IsScanAlias(id) {
		if rec := s.firstWithPrefix(domain.ScanAliasPrefix); rec != nil {
			return rec.Clone(), nil
		}
	}
	return nil, domain.ErrShipmentNotFound
}

func (s *ShipmentStore) AppendEvent(_ context.Context, trackingID string, expectedLen int, event domain.TrackingEvent) error {
	id := domain.NormalizeTrackingID(trackingID)

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return domain.ErrShipmentNotFound
	}
	if rec.Delivered() {
		return domain.ErrShipmentDelivered
	}
	if len(rec.History) != expectedLen {
		return domain.ErrConcurrentUpdate
	}
	rec.History = append([]domain.TrackingEvent{event}, rec.History...)
	rec.Status = event.Status
	rec.Stage = event.Stage
	return nil
}

// List returns shipments newest first.
func (s *ShipmentStore) List(_ context.Context, f ports.ListShipmentsFilter) ([]*domain.ShipmentRecord, int64, error) {
	var stage domain.Stage
	if f.Stage != "" {
		var err error
		if stage, err = domain.ParseStageName(f.Stage); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrInvalidFilter, err)
		}
	}

	// Clone under the lock: AppendEvent mutates stored records in place.
	s.mu.RLock()
	matched := make([]*domain.ShipmentRecord, 0, len(s.byID))
	for _, rec := range s.byID {
		if f.Stage != "" && rec.Stage != stage {
			continue
		}
		if f.ActiveOnly && rec.Delivered() {
			continue
		}
		matched = append(matched, rec.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = len(matched)
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return []*domain.ShipmentRecord{}, total, nil
	}
	end := min(start+limit, len(matched))

	return matched[start:end:end], total, nil
}

// Len reports the number of stored shipments.
func (s *ShipmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *ShipmentStore) firstWithPrefix(prefix string) *domain.ShipmentRecord {
	var best *domain.ShipmentRecord
	for id, rec := range s.byID {
		if strings.HasPrefix(id, prefix) && (best == nil || id < best.ID) {
			best = rec
		}
	}
	return best
}
