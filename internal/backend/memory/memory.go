// Package memory is an in-process stand-in for the business backend, used
// when no backend URL is configured and by tests.
package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	nextID   int
	users    []domain.User
	roles    []domain.Role
	sheets   []domain.SpecSheet
	products []domain.Product
	supplies []domain.Supply
	sales    []domain.Sale
	clients  []domain.Client
}

var _ backend.Client = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1000}
}

func NewSeeded() *Store {
	s := New()
	created := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	s.roles = []domain.Role{
		{ID: "1", Name: "Administrador"},
		{ID: "2", Name: "Empleado"},
	}
	s.users = []domain.User{
		{ID: "1", Name: "Laura Gómez", Email: "laura@delicrem.co", DocumentType: "CC", DocumentNumber: "1020304050", Gender: "Femenino", Nationality: "Colombiana", Phone: "3001234567", Address: "Calle 10 # 5-20", RoleID: "1"},
		{ID: "2", Name: "Andrés Pérez", Email: "andres@delicrem.co", DocumentType: "CC", DocumentNumber: "1098765432", Gender: "Masculino", Nationality: "Colombiana", Phone: "3109876543", Address: "Carrera 7 # 12-40", RoleID: "2"},
	}
	s.products = []domain.Product{
		{ID: "1", Name: "Helado de Vainilla"},
		{ID: "2", Name: "Helado de Fresa"},
		{ID: "3", Name: "Malteada de Chocolate"},
		{ID: "4", Name: "Paleta de Mango"},
	}
	s.supplies = []domain.Supply{
		{ID: "1", Name: "Leche"},
		{ID: "2", Name: "Azúcar"},
		{ID: "3", Name: "Fresa"},
		{ID: "4", Name: "Cacao"},
		{ID: "5", Name: "Mango"},
	}
	s.clients = []domain.Client{
		{ID: "1", Name: "Cafetería El Parque"},
		{ID: "2", Name: "Supermercado La 80"},
		{ID: "3", Name: "Tienda Don José"},
	}
	s.sheets = []domain.SpecSheet{
		{ID: "1", ProductID: "1", Description: "Base de vainilla", Supplies: "Leche, Azúcar", Active: true, CreatedAt: &created, UpdatedAt: &created,
			Lines: []domain.SpecSheetLine{{SupplyID: "1", Quantity: "2"}, {SupplyID: "2", Quantity: "0.5"}}},
		{ID: "2", ProductID: "2", Description: "Helado de fresa artesanal", Supplies: "Leche, Fresa", Active: true, CreatedAt: &created, UpdatedAt: &created,
			Lines: []domain.SpecSheetLine{{SupplyID: "1", Quantity: "2"}, {SupplyID: "3", Quantity: "1"}}},
		{ID: "3", ProductID: "3", Description: "Malteada clásica", Supplies: "Leche, Cacao", Active: false, CreatedAt: &created, UpdatedAt: &created,
			Lines: []domain.SpecSheetLine{{SupplyID: "1", Quantity: "1"}, {SupplyID: "4", Quantity: "0.3"}}},
	}
	s.sales = []domain.Sale{
		{ID: "1", ClientID: "1", Total: "120000", Date: "2024-07-02T10:15:00Z",
			Lines: []domain.SaleLine{{ProductID: "1", Quantity: "10"}, {ProductID: "2", Quantity: "5"}}},
		{ID: "2", ClientID: "2", Total: "250000.50", Date: "2024-07-05T16:40:00Z",
			Lines: []domain.SaleLine{{ProductID: "3", Quantity: "20"}, {ProductID: "1", Quantity: "4"}}},
		{ID: "3", ClientID: "1", Total: "45000", Date: "2024-07-09T11:00:00Z",
			Lines: []domain.SaleLine{{ProductID: "4", Quantity: "15"}}},
		{ID: "4", ClientID: "3", Total: "80000", Date: "2024-08-01T09:30:00Z",
			Lines: []domain.SaleLine{{ProductID: "2", Quantity: "8"}}},
	}
	return s
}

// Seed replaces the read-only reference collections.
func (s *Store) Seed(products []domain.Product, clients []domain.Client, sales []domain.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.Clone(products)
	s.clients = slices.Clone(clients)
	s.sales = slices.Clone(sales)
}

func (s *Store) newID() domain.ID {
	s.nextID++
	return domain.ID(strconv.Itoa(s.nextID))
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	for i, u := range s.users {
		u.Password = ""
		out[i] = u
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.newID()
	s.users = append(s.users, user)
	return nil
}

func (s *Store) UpdateUser(_ context.Context, id domain.ID, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.users, func(u domain.User) bool { return u.ID == id })
	if idx < 0 {
		return backend.ErrNotFound
	}
	user.ID = id
	if user.Password == "" {
		user.Password = s.users[idx].Password
	}
	s.users[idx] = user
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.users, func(u domain.User) bool { return u.ID == id })
	if idx < 0 {
		return backend.ErrNotFound
	}
	s.users = slices.Delete(s.users, idx, idx+1)
	return nil
}

func (s *Store) ListRoles(_ context.Context) ([]domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.roles), nil
}

func (s *Store) ListSpecSheets(_ context.Context) ([]domain.SpecSheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SpecSheet, len(s.sheets))
	for i, sheet := range s.sheets {
		sheet.Lines = slices.Clone(sheet.Lines)
		out[i] = sheet
	}
	return out, nil
}

func (s *Store) CreateSpecSheet(_ context.Context, sheet domain.SpecSheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	sheet.ID = s.newID()
	sheet.Active = true
	sheet.CreatedAt = &now
	sheet.UpdatedAt = &now
	sheet.Lines = slices.Clone(sheet.Lines)
	s.sheets = append(s.sheets, sheet)
	return nil
}

func (s *Store) UpdateSpecSheet(_ context.Context, id domain.ID, sheet domain.SpecSheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.sheets, func(f domain.SpecSheet) bool { return f.ID == id })
	if idx < 0 {
		return backend.ErrNotFound
	}
	now := time.Now().UTC()
	existing := s.sheets[idx]
	sheet.ID = id
	sheet.Active = existing.Active
	sheet.CreatedAt = existing.CreatedAt
	sheet.UpdatedAt = &now
	sheet.Lines = slices.Clone(sheet.Lines)
	s.sheets[idx] = sheet
	return nil
}

func (s *Store) DeleteSpecSheet(_ context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.sheets, func(f domain.SpecSheet) bool { return f.ID == id })
	if idx < 0 {
		return backend.ErrNotFound
	}
	s.sheets = slices.Delete(s.sheets, idx, idx+1)
	return nil
}

func (s *Store) SetSpecSheetActive(_ context.Context, id domain.ID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.sheets, func(f domain.SpecSheet) bool { return f.ID == id })
	if idx < 0 {
		return backend.ErrNotFound
	}
	now := time.Now().UTC()
	s.sheets[idx].Active = active
	s.sheets[idx].UpdatedAt = &now
	return nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products), nil
}

func (s *Store) ListSupplies(_ context.Context) ([]domain.Supply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.supplies), nil
}

func (s *Store) ListSales(_ context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sales), nil
}

func (s *Store) ListClients(_ context.Context) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clients), nil
}
