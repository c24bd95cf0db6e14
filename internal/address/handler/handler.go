package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping_portal_backend/internal/address/service"
	"shipping_portal_backend/internal/address/transport"
	"shipping_portal_backend/platform/httpkit"
	"shipping_portal_backend/platform/novaposhta"
	"shipping_portal_backend/platform/validator"
)

// Handler handles HTTP requests for address lookups.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgQueryTooShort  = "query must be at least 2 characters"
	msgCityRefMissing = "cityRef or cityName parameter is required"
)

// New creates a new address handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SearchCities searches settlements by partial name.
// GET /api/v1/cities?query=Київ
func (h *Handler) SearchCities(c *gin.Context) {
	var req transport.SearchCitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryTooShort, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryTooShort, nil)
		return
	}

	settlements, err := h.svc.SearchCities(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, settlements)
}

// SearchCitiesStrict looks cities up via the carrier's getCities method.
// GET /api/v1/cities/strict?query=Київ
func (h *Handler) SearchCitiesStrict(c *gin.Context) {
	var req transport.SearchCitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryTooShort, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryTooShort, nil)
		return
	}

	cities, err := h.svc.SearchCitiesStrict(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, cities)
}

// ListWarehouses lists warehouses for a settlement, addressed by reference or
// by name.
// GET /api/v1/warehouses?cityRef=<ref>
// GET /api/v1/warehouses?cityName=Київ
func (h *Handler) ListWarehouses(c *gin.Context) {
	var req transport.ListWarehousesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgCityRefMissing, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgCityRefMissing, nil)
		return
	}

	var (
		warehouses []novaposhta.Warehouse
		err        error
	)
	if req.CityRef != "" {
		warehouses, err = h.svc.ListWarehouses(c.Request.Context(), req.CityRef)
	} else {
		warehouses, err = h.svc.ListWarehousesByCityName(c.Request.Context(), req.CityName)
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, warehouses)
}
