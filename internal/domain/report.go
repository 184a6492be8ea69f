package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnknownLabel replaces names of products, clients and supplies that are
// missing from the loaded reference data.
const UnknownLabel = "Desconocido"

type ProductAggregate struct {
	ProductID ID              `json:"id_producto"`
	Name      string          `json:"nombre"`
	Quantity  decimal.Decimal `json:"cantidad"`
}

type ClientAggregate struct {
	ClientID    ID              `json:"id_cliente"`
	Name        string          `json:"nombre"`
	TotalAmount decimal.Decimal `json:"totalComprado"`
}

type SalesReport struct {
	ID          string             `json:"id"`
	Start       string             `json:"fecha_inicio"`
	End         string             `json:"fecha_fin"`
	GeneratedAt time.Time          `json:"generado_en"`
	GeneratedOn string             `json:"fecha_generacion"`
	SalesCount  int                `json:"numero_ventas"`
	Products    []ProductAggregate `json:"productos_mas_vendidos"`
	Clients     []ClientAggregate  `json:"clientes_mas_compraron"`
}

type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	BorderColor     []string  `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
}

type ChartData struct {
	Type     string         `json:"type"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ReportCharts struct {
	Products ChartData `json:"productos"`
	Clients  ChartData `json:"clientes"`
}

// ExportRow is one (label, value) line of the tabular export. A row with an
// empty label and nil value is a separator.
type ExportRow struct {
	Label string `json:"encabezado"`
	Value any    `json:"valor"`
}

type ReportRequest struct {
	Start string `json:"fecha_inicio"`
	End   string `json:"fecha_fin"`
}

type AuditLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Detail    string    `json:"detail"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}
