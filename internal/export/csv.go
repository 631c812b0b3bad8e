// Package export renders the order ledger as delimited text for spreadsheet
// consumption.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ssanjae/offline-orders/internal/order"
)

const (
	// Filename is the download name offered to the operator.
	Filename = "ssanjae-orders.csv"
	// ContentType matches the emitted bytes: UTF-8, optionally BOM-prefixed.
	ContentType = "text/csv; charset=utf-8"
)

// ErrNoOrders refuses an export of an empty ledger; no file is produced.
var ErrNoOrders = errors.New("no orders to export")

// Options control spreadsheet compatibility. Some locales expect a semicolon
// delimiter, and Excel needs the BOM to pick up UTF-8.
type Options struct {
	Delimiter   rune
	BOM         bool
	ItemColumns bool
}

func DefaultOptions() Options {
	return Options{Delimiter: ',', BOM: true, ItemColumns: true}
}

var newlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Orders renders the ledger: one header row, one CRLF-terminated row per
// order, every field wrapped in quotes with internal quotes doubled. When item
// columns are enabled the header grows to the largest item count across all
// orders.
func Orders(orders []order.Order, opts Options) ([]byte, error) {
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	maxItems := 0
	if opts.ItemColumns {
		for _, o := range orders {
			if len(o.Items) > maxItems {
				maxItems = len(o.Items)
			}
		}
	}

	header := []string{"order id", "status", "buyer", "phone", "memo", "created at"}
	for i := 0; i < maxItems; i++ {
		header = append(header, fmt.Sprintf("item %d", i+1))
	}

	lines := make([]string, 0, len(orders)+1)
	lines = append(lines, joinRow(header, opts.Delimiter))

	for _, o := range orders {
		row := []string{
			o.ID,
			o.Status.Label(),
			o.BuyerName,
			order.FormatPhone(o.BuyerPhone),
			newlines.Replace(o.Memo),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for i := 0; i < maxItems; i++ {
			if i < len(o.Items) {
				it := o.Items[i]
				row = append(row, fmt.Sprintf("%s x %d (%d)", it.Name, it.Quantity, it.Price*it.Quantity))
			} else {
				row = append(row, "")
			}
		}
		lines = append(lines, joinRow(row, opts.Delimiter))
	}

	var b strings.Builder
	if opts.BOM {
		b.WriteString("\uFEFF")
	}
	b.WriteString(strings.Join(lines, "\r\n"))
	return []byte(b.String()), nil
}

// joinRow quotes every field unconditionally so quotes, delimiters and spaces
// never need per-field decisions downstream.
func joinRow(fields []string, delimiter rune) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, string(delimiter))
}
