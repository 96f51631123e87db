package server

import (
	"context"
	"errors"

	"github.com/aditi/profilecore/internal/store"
)

// HealthService reports readiness of the backing record store.
type HealthService interface {
	Probe(ctx context.Context) error
	TableCounts() store.Counts
}

// StoreHealthService implements HealthService over the loaded store.
type StoreHealthService struct {
	Store *store.Store
}

// Probe fails when no record store has been loaded.
func (s StoreHealthService) Probe(context.Context) error {
	if s.Store == nil {
		return errors.New("record store not loaded")
	}
	return nil
}

// TableCounts reports loaded row totals per table.
func (s StoreHealthService) TableCounts() store.Counts {
	if s.Store == nil {
		return store.Counts{}
	}
	return s.Store.Counts()
}
