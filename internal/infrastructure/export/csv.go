// Package export writes products and movements as ';'-delimited text tables.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"stockroom/internal/core/id"
	"stockroom/internal/core/types"
	"stockroom/internal/domain/catalogs/product"
	"stockroom/internal/domain/registers/movement"
)

// Separator is the field delimiter of every export.
const Separator = ';'

var (
	productHeader  = []string{"ID", "Name", "Description", "Quantity", "MinStock", "PurchasePrice", "SalePrice"}
	movementHeader = []string{"ID", "Product", "Kind", "Quantity", "Date", "Note"}
)

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	return cw
}

// WriteProducts writes the header and one row per product.
func WriteProducts(w io.Writer, products []*product.Product) error {
	cw := newWriter(w)
	if err := cw.Write(productHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range products {
		row := []string{
			p.ID.String(),
			p.Name,
			p.Description,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinStock),
			types.FormatMoney(p.PurchasePrice),
			types.FormatMoney(p.SalePrice),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write product %s: %w", p.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMovements writes the header and one row per movement. Product names
// are resolved through products; an unknown product leaves the cell empty.
// The separator is stripped from notes.
func WriteMovements(w io.Writer, movements []*movement.Movement, products []*product.Product) error {
	names := make(map[id.ID]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	cw := newWriter(w)
	if err := cw.Write(movementHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, m := range movements {
		row := []string{
			m.ID.String(),
			names[m.ProductID],
			string(m.Kind),
			strconv.Itoa(m.Quantity),
			m.Date.Format(time.DateOnly),
			StripSeparator(m.Note),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write movement %s: %w", m.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// StripSeparator removes every occurrence of the field separator.
func StripSeparator(s string) string {
	return strings.ReplaceAll(s, string(Separator), "")
}

// NewZstdWriter wraps w in a zstd stream. The caller must Close it to flush
// the final frame.
func NewZstdWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	return enc, nil
}
