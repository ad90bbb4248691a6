package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/domain/inventory"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// MovementHandler handles HTTP requests for the movement ledger.
type MovementHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewMovementHandler creates a new movement handler.
func NewMovementHandler(base *BaseHandler, service *inventory.Service) *MovementHandler {
	return &MovementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /movements
func (h *MovementHandler) List(c *gin.Context) {
	var req dto.MovementListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.Movements(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dto.MapSlice(items, dto.FromMovement)))
}

// Create handles POST /movements
func (h *MovementHandler) Create(c *gin.Context) {
	var req dto.CreateMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.service.RecordMovement(c.Request.Context(), m)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RecordMovementResponse{
		ID:      m.ID,
		Product: dto.FromProduct(p),
	})
}
