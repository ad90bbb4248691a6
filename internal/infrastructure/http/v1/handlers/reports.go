package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/internal/domain/reports"
	"stockroom/internal/infrastructure/http/v1/dto"
)

// ReportHandler serves the chart data.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
	now     func() time.Time
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
		now:         time.Now,
	}
}

// Daily handles GET /reports/daily
func (h *ReportHandler) Daily(c *gin.Context) {
	var req dto.DailyReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	ref, err := req.Reference(h.now())
	if err != nil {
		h.Error(c, err)
		return
	}

	series, err := h.service.Daily(c.Request.Context(), ref)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMonthlySeries(series))
}

// ByProduct handles GET /reports/products
func (h *ReportHandler) ByProduct(c *gin.Context) {
	series, err := h.service.ByProduct(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, series)
}
