package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
)

// printTable escribe la tabla alineada por columnas.
func printTable(w io.Writer, t dto.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", x), "0"), ".")
	default:
		return fmt.Sprint(x)
	}
}

// cacheLine resume los metadatos de caché de una colección.
func cacheLine(m inventory.CacheMetadata, now time.Time) string {
	if m.LastFetched == nil {
		return "caché: sin datos"
	}
	state := "vigente"
	if m.IsStale {
		state = "vencida"
	}
	age := now.Sub(*m.LastFetched).Round(time.Second)
	return fmt.Sprintf("caché: %s (actualizada hace %s, bodega %s)", state, age, m.WarehouseID)
}
