// Package export writes the inventory report.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"tracknstock/internal/domain"
)

// FileName is the name offered for the downloaded report.
const FileName = "inventory_report.csv"

const csvBufferSize = 32 * 1024

var header = []string{"Brand", "Name", "Category", "Quantity", "Min Stock", "Price (₹)", "Status"}

// WriteCSV writes one row per product after the header. Callers pass the full
// collection, not the filtered view. Values containing commas, quotes or
// newlines are quoted.
func WriteCSV(w io.Writer, products []domain.Product) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range products {
		if err := writer.Write(row(p)); err != nil {
			return fmt.Errorf("writing csv row for product %d: %w", p.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing csv buffer: %w", err)
	}
	return nil
}

func row(p domain.Product) []string {
	return []string{
		p.Supplier,
		p.Name,
		p.Category,
		strconv.Itoa(p.Quantity),
		strconv.Itoa(p.MinStock),
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		p.StockStatus().Label(),
	}
}
