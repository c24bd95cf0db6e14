package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping_portal_backend/internal/declaration/service"
	"shipping_portal_backend/internal/declaration/transport"
	"shipping_portal_backend/platform/httpkit"
	"shipping_portal_backend/platform/validator"
)

// Handler handles HTTP requests for declarations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const msgInvalidRequest = "invalid request"

// New creates a new declaration handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create submits a new declaration to the carrier.
// POST /api/v1/declaration
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateDeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Data(c, result)
}
