package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

const (
	SheetName   = "Informe de Ventas"
	XLSXMime    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	labelHeader = "encabezado"
	valueHeader = "valor"
)

// ExportRows flattens a report into (label, value) rows: metadata, a blank
// separator, the product ranking, another separator, the client ranking.
func ExportRows(r *domain.SalesReport) []domain.ExportRow {
	rows := []domain.ExportRow{
		{Label: "Informe de Ventas", Value: ""},
		{Label: "Fecha de Generación", Value: r.GeneratedOn},
		{Label: "Periodo", Value: fmt.Sprintf("%s - %s", r.Start, r.End)},
		{Label: "Número de Ventas Realizadas", Value: r.SalesCount},
		{},
		{Label: "Productos más vendidos", Value: ""},
	}
	for _, p := range r.Products {
		rows = append(rows, domain.ExportRow{Label: p.Name, Value: p.Quantity.InexactFloat64()})
	}
	rows = append(rows,
		domain.ExportRow{},
		domain.ExportRow{Label: "Clientes que más compraron", Value: ""},
	)
	for _, c := range r.Clients {
		rows = append(rows, domain.ExportRow{Label: c.Name, Value: "$" + c.TotalAmount.StringFixed(2)})
	}
	return rows
}

func FileName(r *domain.SalesReport) string {
	return fmt.Sprintf("informe_ventas_%s.xlsx", r.GeneratedOn)
}

// WriteXLSX renders the export rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, r *domain.SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{labelHeader, valueHeader}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range ExportRows(r) {
		if row.Label == "" && row.Value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Label, row.Value}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 36); err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
