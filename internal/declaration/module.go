// Package declaration provides the declaration bounded context module.
package declaration

import (
	"shipping_portal_backend/internal/declaration/handler"
	"shipping_portal_backend/internal/declaration/service"
	apphttp "shipping_portal_backend/internal/http"
	"shipping_portal_backend/platform/logger"
	"shipping_portal_backend/platform/validator"
)

// Module is the declaration bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the declaration module.
func NewModule(carrier service.Carrier, cfg service.Config, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(carrier, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "declaration"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts declaration routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/declaration", m.handler.Create)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
