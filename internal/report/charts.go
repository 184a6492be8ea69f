package report

import (
	"fmt"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

var clientPalette = []string{
	"rgba(255, 99, 132, %s)",
	"rgba(54, 162, 235, %s)",
	"rgba(255, 206, 86, %s)",
	"rgba(75, 192, 192, %s)",
	"rgba(153, 102, 255, %s)",
	"rgba(255, 159, 64, %s)",
}

// Charts projects the rankings into chart datasets: a bar chart of product
// quantities and a doughnut of client amounts.
func Charts(r *domain.SalesReport) domain.ReportCharts {
	productLabels := make([]string, 0, len(r.Products))
	productData := make([]float64, 0, len(r.Products))
	for _, p := range r.Products {
		productLabels = append(productLabels, p.Name)
		productData = append(productData, p.Quantity.InexactFloat64())
	}

	clientLabels := make([]string, 0, len(r.Clients))
	clientData := make([]float64, 0, len(r.Clients))
	for _, c := range r.Clients {
		clientLabels = append(clientLabels, c.Name)
		clientData = append(clientData, c.TotalAmount.InexactFloat64())
	}

	return domain.ReportCharts{
		Products: domain.ChartData{
			Type:   "bar",
			Labels: productLabels,
			Datasets: []domain.ChartDataset{{
				Label:           "Cantidad Vendida",
				Data:            productData,
				BackgroundColor: []string{"rgba(75, 192, 192, 0.6)"},
				BorderColor:     []string{"rgba(75, 192, 192, 1)"},
				BorderWidth:     1,
			}},
		},
		Clients: domain.ChartData{
			Type:   "doughnut",
			Labels: clientLabels,
			Datasets: []domain.ChartDataset{{
				Label:           "Total Comprado",
				Data:            clientData,
				BackgroundColor: palette("0.6"),
				BorderColor:     palette("1"),
				BorderWidth:     1,
			}},
		},
	}
}

func palette(alpha string) []string {
	out := make([]string, len(clientPalette))
	for i, c := range clientPalette {
		out[i] = fmt.Sprintf(c, alpha)
	}
	return out
}
