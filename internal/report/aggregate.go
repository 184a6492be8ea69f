package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

// GeneratedOnLayout is the human-readable generation date. It also names the
// exported file.
const GeneratedOnLayout = "2006-01-02"

// Aggregate groups already filtered sales into per-product quantities and
// per-client amounts, each ranked by its metric, highest first. Equal metrics
// keep the order in which their key was first seen.
func Aggregate(sales []domain.Sale, products []domain.Product, clients []domain.Client) ([]domain.ProductAggregate, []domain.ClientAggregate) {
	productNames := make(map[domain.ID]string, len(products))
	for _, p := range products {
		if _, ok := productNames[p.ID]; !ok {
			productNames[p.ID] = p.Name
		}
	}
	clientNames := make(map[domain.ID]string, len(clients))
	for _, c := range clients {
		if _, ok := clientNames[c.ID]; !ok {
			clientNames[c.ID] = c.Name
		}
	}

	productIndex := make(map[domain.ID]int)
	byProduct := make([]domain.ProductAggregate, 0)
	clientIndex := make(map[domain.ID]int)
	byClient := make([]domain.ClientAggregate, 0)

	for _, sale := range sales {
		for _, line := range sale.Lines {
			idx, ok := productIndex[line.ProductID]
			if !ok {
				name, found := productNames[line.ProductID]
				if !found {
					name = domain.UnknownLabel
				}
				idx = len(byProduct)
				productIndex[line.ProductID] = idx
				byProduct = append(byProduct, domain.ProductAggregate{
					ProductID: line.ProductID,
					Name:      name,
					Quantity:  decimal.Zero,
				})
			}
			byProduct[idx].Quantity = byProduct[idx].Quantity.Add(Amount(line.Quantity))
		}

		idx, ok := clientIndex[sale.ClientID]
		if !ok {
			name, found := clientNames[sale.ClientID]
			if !found {
				name = domain.UnknownLabel
			}
			idx = len(byClient)
			clientIndex[sale.ClientID] = idx
			byClient = append(byClient, domain.ClientAggregate{
				ClientID:    sale.ClientID,
				Name:        name,
				TotalAmount: decimal.Zero,
			})
		}
		byClient[idx].TotalAmount = byClient[idx].TotalAmount.Add(Amount(sale.Total))
	}

	slices.SortStableFunc(byProduct, func(a, b domain.ProductAggregate) int {
		return b.Quantity.Cmp(a.Quantity)
	})
	slices.SortStableFunc(byClient, func(a, b domain.ClientAggregate) int {
		return b.TotalAmount.Cmp(a.TotalAmount)
	})
	return byProduct, byClient
}

// Build runs the whole pipeline for one generation: range check, filter,
// aggregation and metadata. It never mutates its inputs.
func Build(id string, req domain.ReportRequest, sales []domain.Sale, products []domain.Product, clients []domain.Client, now time.Time) (*domain.SalesReport, error) {
	matched, err := Select(sales, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	byProduct, byClient := Aggregate(matched, products, clients)
	return &domain.SalesReport{
		ID:          id,
		Start:       req.Start,
		End:         req.End,
		GeneratedAt: now,
		GeneratedOn: now.Format(GeneratedOnLayout),
		SalesCount:  len(matched),
		Products:    byProduct,
		Clients:     byClient,
	}, nil
}
