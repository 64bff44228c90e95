package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/xlsx"
)

func TestWriteTable_EscribeEncabezadoYFilas(t *testing.T) {
	var buf bytes.Buffer
	err := xlsx.NewExporter().WriteTable(&buf, dto.Table{
		Title:   "Saldos: Central",
		Headers: []string{"Producto", "Cantidad", "Estado"},
		Rows: [][]any{
			{"Harina", 12.5, "LOW_STOCK"},
			{"Azúcar", 40.0, "IN_STOCK"},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	assert.Equal(t, "Saldos Central", sheet)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Producto", "Cantidad", "Estado"}, rows[0])
	assert.Equal(t, "Azúcar", rows[2][0])
	assert.Equal(t, "12.5", rows[1][1])
}

func TestWriteTable_SinFilas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsx.NewExporter().WriteTable(&buf, dto.Table{Title: "Lotes", Headers: []string{"Lote"}}))
	assert.NotZero(t, buf.Len())
}
