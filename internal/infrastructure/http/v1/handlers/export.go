package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockroom/internal/domain/inventory"
	"stockroom/internal/infrastructure/export"
	"stockroom/pkg/logger"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	zstdContentType = "application/zstd"
)

// ExportHandler streams products and movements as ';'-delimited CSV.
type ExportHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewExportHandler creates a new export handler.
func NewExportHandler(base *BaseHandler, service *inventory.Service) *ExportHandler {
	return &ExportHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Products handles GET /export/products.csv
func (h *ExportHandler) Products(c *gin.Context) {
	items, err := h.service.Products(c.Request.Context(), nil, false)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.stream(c, "products.csv", func(w io.Writer) error {
		return export.WriteProducts(w, items)
	})
}

// Movements handles GET /export/movements.csv
func (h *ExportHandler) Movements(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.service.Products(ctx, nil, false)
	if err != nil {
		h.Error(c, err)
		return
	}
	movements, err := h.service.Movements(ctx, nil)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.stream(c, "movements.csv", func(w io.Writer) error {
		return export.WriteMovements(w, movements, products)
	})
}

// stream writes the table, zstd-compressed when compress=zstd.
// Once the body has started, failures can only be logged.
func (h *ExportHandler) stream(c *gin.Context, filename string, write func(io.Writer) error) {
	compress := c.Query("compress") == "zstd"

	contentType := csvContentType
	if compress {
		contentType = zstdContentType
		filename += ".zst"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)

	var err error
	if compress {
		err = writeCompressed(c.Writer, write)
	} else {
		err = write(c.Writer)
	}
	if err != nil {
		logger.Error(c.Request.Context(), "export failed", "file", filename, "error", err)
	}
}

func writeCompressed(w io.Writer, write func(io.Writer) error) error {
	zw, err := export.NewZstdWriter(w)
	if err != nil {
		return err
	}
	if err := write(zw); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}
