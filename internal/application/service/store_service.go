package service

import (
	"context"
	"math"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
)

const earthRadiusKm = 6371.0

// NearestStore is a store with its distance from the customer
type NearestStore struct {
	Store      entity.Store `json:"store"`
	DistanceKm float64      `json:"distance_km"`
}

// StoreService serves the store directory and counter queues
type StoreService struct {
	stores repository.StoreRepository
}

// NewStoreService creates a new store service
func NewStoreService(stores repository.StoreRepository) *StoreService {
	return &StoreService{stores: stores}
}

// List returns every store
func (s *StoreService) List(ctx context.Context) ([]entity.Store, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("Store directory unavailable", err)
	}
	return stores, nil
}

// Nearest returns the store closest to (lat, lng)
func (s *StoreService) Nearest(ctx context.Context, lat, lng float64) (*NearestStore, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, apperror.NewBadRequestError("Invalid coordinates")
	}
	stores, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, apperror.NewNotFoundError("Store")
	}

	best := NearestStore{Store: stores[0], DistanceKm: haversineKm(lat, lng, stores[0].Latitude, stores[0].Longitude)}
	for _, st := range stores[1:] {
		if d := haversineKm(lat, lng, st.Latitude, st.Longitude); d < best.DistanceKm {
			best = NearestStore{Store: st, DistanceKm: d}
		}
	}
	best.DistanceKm = math.Round(best.DistanceKm*100) / 100
	return &best, nil
}

// OptimalCounter returns the active counter with the shortest queue
func (s *StoreService) OptimalCounter(ctx context.Context, storeID string) (*entity.Counter, error) {
	if storeID == "" {
		return nil, apperror.NewBadRequestError("Store is required")
	}
	counters, err := s.stores.ListActiveCounters(ctx, storeID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Counter data unavailable", err)
	}
	if len(counters) == 0 {
		return nil, apperror.NewNotFoundError("Active counter")
	}

	best := counters[0]
	for _, c := range counters[1:] {
		if c.QueueSize < best.QueueSize {
			best = c
		}
	}
	return &best, nil
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
