// Package address provides the address lookup bounded context module.
package address

import (
	"shipping_portal_backend/internal/address/handler"
	"shipping_portal_backend/internal/address/repository"
	"shipping_portal_backend/internal/address/service"
	apphttp "shipping_portal_backend/internal/http"
	"shipping_portal_backend/platform/config"
	"shipping_portal_backend/platform/logger"
	"shipping_portal_backend/platform/validator"
)

// Module is the address bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// ModuleConfig combines the config surfaces the address module needs.
type ModuleConfig interface {
	config.CarrierConfig
	config.CacheConfig
}

// NewModule creates and initializes the address module.
func NewModule(carrier service.Carrier, cfg ModuleConfig, val *validator.Validator, log *logger.Logger) *Module {
	var cache repository.LookupCache = repository.NoopCache{}
	if cfg.IsCacheEnabled() {
		cache = repository.NewRedisCache(cfg.GetRedisAddr(), cfg.GetWarehouseCacheTTL(), cfg.GetCityCacheTTL(), log)
	}

	svc := service.New(carrier, cache, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "address"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts address routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/cities", m.handler.SearchCities)
	ctx.V1.GET("/cities/strict", m.handler.SearchCitiesStrict)
	ctx.V1.GET("/warehouses", m.handler.ListWarehouses)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
