// Package repository provides the server-side cache for carrier lookup responses.
// Lookup results are ephemeral passthrough data, so the only storage this
// service carries is a TTL-bounded Redis cache; it fails open to the upstream.
package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"shipping_portal_backend/platform/logger"
	"shipping_portal_backend/platform/novaposhta"

	"github.com/redis/go-redis/v9"
)

const (
	warehouseKeyPrefix  = "np:warehouses:"
	settlementKeyPrefix = "np:settlements:"
)

// LookupCache caches carrier lookup responses between requests.
type LookupCache interface {
	GetWarehouses(ctx context.Context, cityRef string) ([]novaposhta.Warehouse, bool)
	SetWarehouses(ctx context.Context, cityRef string, warehouses []novaposhta.Warehouse)
	GetSettlements(ctx context.Context, query string) ([]novaposhta.Settlement, bool)
	SetSettlements(ctx context.Context, query string, settlements []novaposhta.Settlement)
}

// RedisCache is the Redis-backed LookupCache.
type RedisCache struct {
	client       *redis.Client
	warehouseTTL time.Duration
	cityTTL      time.Duration
	log          *logger.Logger
}

// NewRedisCache creates a lookup cache on the given Redis address.
func NewRedisCache(addr string, warehouseTTL, cityTTL time.Duration, log *logger.Logger) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: addr}),
		warehouseTTL: warehouseTTL,
		cityTTL:      cityTTL,
		log:          log,
	}
}

func settlementKey(query string) string {
	return settlementKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

// GetWarehouses returns the cached warehouse list for a city reference.
func (r *RedisCache) GetWarehouses(ctx context.Context, cityRef string) ([]novaposhta.Warehouse, bool) {
	payload, err := r.client.Get(ctx, warehouseKeyPrefix+cityRef).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("warehouse cache read failed", "error", err)
		}
		r.log.CacheEvent("warehouses", cityRef, false)
		return nil, false
	}

	var warehouses []novaposhta.Warehouse
	if err := json.Unmarshal(payload, &warehouses); err != nil {
		r.log.Warn("warehouse cache entry corrupt", "error", err)
		return nil, false
	}
	r.log.CacheEvent("warehouses", cityRef, true)
	return warehouses, true
}

// SetWarehouses stores a warehouse list under the city reference with the configured TTL.
func (r *RedisCache) SetWarehouses(ctx context.Context, cityRef string, warehouses []novaposhta.Warehouse) {
	payload, err := json.Marshal(warehouses)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, warehouseKeyPrefix+cityRef, payload, r.warehouseTTL).Err(); err != nil {
		r.log.Warn("warehouse cache write failed", "error", err)
	}
}

// GetSettlements returns the cached settlement list for a normalized query.
func (r *RedisCache) GetSettlements(ctx context.Context, query string) ([]novaposhta.Settlement, bool) {
	payload, err := r.client.Get(ctx, settlementKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("settlement cache read failed", "error", err)
		}
		r.log.CacheEvent("settlements", query, false)
		return nil, false
	}

	var settlements []novaposhta.Settlement
	if err := json.Unmarshal(payload, &settlements); err != nil {
		r.log.Warn("settlement cache entry corrupt", "error", err)
		return nil, false
	}
	r.log.CacheEvent("settlements", query, true)
	return settlements, true
}

// SetSettlements stores a settlement search result under the normalized query.
func (r *RedisCache) SetSettlements(ctx context.Context, query string, settlements []novaposhta.Settlement) {
	payload, err := json.Marshal(settlements)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, settlementKey(query), payload, r.cityTTL).Err(); err != nil {
		r.log.Warn("settlement cache write failed", "error", err)
	}
}

// NoopCache is used when no Redis address is configured; every lookup misses.
type NoopCache struct{}

func (NoopCache) GetWarehouses(context.Context, string) ([]novaposhta.Warehouse, bool) {
	return nil, false
}
func (NoopCache) SetWarehouses(context.Context, string, []novaposhta.Warehouse) {}
func (NoopCache) GetSettlements(context.Context, string) ([]novaposhta.Settlement, bool) {
	return nil, false
}
func (NoopCache) SetSettlements(context.Context, string, []novaposhta.Settlement) {}

var _ LookupCache = (*RedisCache)(nil)
var _ LookupCache = NoopCache{}
