// Package service implements the address lookup proxy logic: settlement search
// and warehouse listing against the carrier API, with a TTL-bounded cache and
// per-key coalescing of identical upstream calls.
package service

import (
	"context"
	"strings"

	"shipping_portal_backend/internal/address/repository"
	"shipping_portal_backend/platform/apperr"
	"shipping_portal_backend/platform/config"
	"shipping_portal_backend/platform/logger"
	"shipping_portal_backend/platform/novaposhta"

	"golang.org/x/sync/singleflight"
)

const msgConfigError = "server configuration error"

// Carrier is the subset of the carrier client the address service uses.
type Carrier interface {
	SearchSettlements(ctx context.Context, query string) ([]novaposhta.Settlement, error)
	GetCities(ctx context.Context, query string) ([]novaposhta.City, error)
	GetWarehouses(ctx context.Context, settlementRef string) ([]novaposhta.Warehouse, error)
	GetWarehousesByCityName(ctx context.Context, cityName string) ([]novaposhta.Warehouse, error)
}

// Service proxies address lookups to the carrier.
type Service struct {
	carrier Carrier
	cache   repository.LookupCache
	cfg     config.CarrierConfig
	log     *logger.Logger
	group   singleflight.Group
}

// New creates the address service.
func New(carrier Carrier, cache repository.LookupCache, cfg config.CarrierConfig, log *logger.Logger) *Service {
	return &Service{
		carrier: carrier,
		cache:   cache,
		cfg:     cfg,
		log:     log,
	}
}

// SearchCities searches settlements by partial name. Identical concurrent
// queries share one upstream call; results are cached briefly since
// autocomplete users retype the same prefixes.
func (s *Service) SearchCities(ctx context.Context, query string) ([]novaposhta.Settlement, error) {
	if !s.cfg.IsCarrierConfigured() {
		return nil, apperr.Internal(msgConfigError)
	}

	if cached, ok := s.cache.GetSettlements(ctx, query); ok {
		return cached, nil
	}

	result, err, _ := s.group.Do("settlements:"+strings.ToLower(query), func() (interface{}, error) {
		settlements, err := s.carrier.SearchSettlements(ctx, query)
		if err != nil {
			s.log.UpstreamError("Address", "searchSettlements", err)
			return nil, apperr.Wrap(apperr.KindUnavailable, err.Error(), err)
		}
		s.cache.SetSettlements(ctx, query, settlements)
		return settlements, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]novaposhta.Settlement), nil
}

// SearchCitiesStrict looks cities up with the carrier's exact-match getCities
// method. Not cached: it serves occasional manual lookups, not autocomplete.
func (s *Service) SearchCitiesStrict(ctx context.Context, query string) ([]novaposhta.City, error) {
	if !s.cfg.IsCarrierConfigured() {
		return nil, apperr.Internal(msgConfigError)
	}

	cities, err := s.carrier.GetCities(ctx, query)
	if err != nil {
		s.log.UpstreamError("Address", "getCities", err)
		return nil, apperr.Wrap(apperr.KindUnavailable, err.Error(), err)
	}
	return cities, nil
}

// ListWarehouses returns all warehouses for a settlement reference, cache first.
func (s *Service) ListWarehouses(ctx context.Context, cityRef string) ([]novaposhta.Warehouse, error) {
	if !s.cfg.IsCarrierConfigured() {
		return nil, apperr.Internal(msgConfigError)
	}

	if cached, ok := s.cache.GetWarehouses(ctx, cityRef); ok {
		return cached, nil
	}

	result, err, _ := s.group.Do("warehouses:"+cityRef, func() (interface{}, error) {
		warehouses, err := s.carrier.GetWarehouses(ctx, cityRef)
		if err != nil {
			s.log.UpstreamError("Address", "getWarehouses", err)
			return nil, apperr.Wrap(apperr.KindUnavailable, err.Error(), err)
		}
		s.cache.SetWarehouses(ctx, cityRef, warehouses)
		return warehouses, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]novaposhta.Warehouse), nil
}

// ListWarehousesByCityName returns all warehouses matched by settlement name.
// Cached under a name-scoped key so it never collides with reference lookups.
func (s *Service) ListWarehousesByCityName(ctx context.Context, cityName string) ([]novaposhta.Warehouse, error) {
	if !s.cfg.IsCarrierConfigured() {
		return nil, apperr.Internal(msgConfigError)
	}

	key := "name:" + strings.ToLower(cityName)
	if cached, ok := s.cache.GetWarehouses(ctx, key); ok {
		return cached, nil
	}

	result, err, _ := s.group.Do("warehouses:"+key, func() (interface{}, error) {
		warehouses, err := s.carrier.GetWarehousesByCityName(ctx, cityName)
		if err != nil {
			s.log.UpstreamError("Address", "getWarehouses", err)
			return nil, apperr.Wrap(apperr.KindUnavailable, err.Error(), err)
		}
		s.cache.SetWarehouses(ctx, key, warehouses)
		return warehouses, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]novaposhta.Warehouse), nil
}
