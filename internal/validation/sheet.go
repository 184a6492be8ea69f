package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

// ValidateSpecSheet covers the sheet editor: a product, a description and at
// least one supply line with a positive quantity.
func ValidateSpecSheet(s domain.SpecSheet) Errors {
	errs := Errors{}
	if strings.TrimSpace(s.ProductID.String()) == "" {
		errs["id_producto"] = "Debe seleccionar un producto."
	}
	if strings.TrimSpace(s.Description) == "" {
		errs["descripcion"] = "Debe ingresar una descripción."
	}
	if len(s.Lines) == 0 {
		errs["detallesFichaTecnicat"] = "Debe agregar al menos un insumo."
	}
	for _, line := range s.Lines {
		if strings.TrimSpace(line.SupplyID.String()) == "" {
			errs["detallesFichaTecnicat"] = "Cada detalle debe indicar un insumo."
			break
		}
		if q, err := decimal.NewFromString(strings.TrimSpace(string(line.Quantity))); err != nil || !q.IsPositive() {
			errs["detallesFichaTecnicat"] = "Cada detalle debe tener una cantidad mayor a cero."
			break
		}
	}
	return errs
}
