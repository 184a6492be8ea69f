package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ID is an entity identifier as sent by the business backend. The backend
// mixes numeric and string ids, so both decode into the same string form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Flexible keeps a loosely typed scalar (number or numeric string) exactly as
// received; report code decides how to coerce it.
type Flexible string

func (f *Flexible) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flexible(s)
		return nil
	}
	*f = Flexible(data)
	return nil
}

func (f Flexible) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

type Product struct {
	ID   ID     `json:"id_producto"`
	Name string `json:"nombre"`
}

type Client struct {
	ID   ID     `json:"id_cliente"`
	Name string `json:"nombre"`
}

type Supply struct {
	ID   ID     `json:"id_insumo"`
	Name string `json:"nombre"`
}

type Role struct {
	ID   ID     `json:"id_rol"`
	Name string `json:"nombre"`
}

type SaleLine struct {
	ProductID ID       `json:"id_producto"`
	Quantity  Flexible `json:"cantidad"`
}

type Sale struct {
	ID       ID         `json:"id_venta"`
	ClientID ID         `json:"id_cliente"`
	Total    Flexible   `json:"total"`
	Date     string     `json:"fecha_venta"`
	Lines    []SaleLine `json:"detalles"`
}

type User struct {
	ID             ID     `json:"id_usuario,omitempty"`
	Name           string `json:"nombre"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	DocumentType   string `json:"tipo_documento"`
	DocumentNumber string `json:"numero_documento"`
	Gender         string `json:"genero"`
	Nationality    string `json:"nacionalidad"`
	Phone          string `json:"telefono"`
	Address        string `json:"direccion"`
	RoleID         ID     `json:"id_rol"`
}

type SpecSheetLine struct {
	SupplyID ID       `json:"id_insumo"`
	Quantity Flexible `json:"cantidad"`
}

type SpecSheet struct {
	ID          ID              `json:"id_ficha,omitempty"`
	ProductID   ID              `json:"id_producto"`
	Description string          `json:"descripcion"`
	Supplies    string          `json:"insumos"`
	Active      bool            `json:"activo"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	Lines       []SpecSheetLine `json:"detallesFichaTecnicat"`
}

type SpecSheetStatusRequest struct {
	Active bool `json:"activo"`
}
