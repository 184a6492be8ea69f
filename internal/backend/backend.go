// Package backend talks to the business REST API that owns users, spec
// sheets, products, supplies, sales and clients.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-2xx answer from the backend.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

type Client interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, id domain.ID, user domain.User) error
	DeleteUser(ctx context.Context, id domain.ID) error
	ListRoles(ctx context.Context) ([]domain.Role, error)

	ListSpecSheets(ctx context.Context) ([]domain.SpecSheet, error)
	CreateSpecSheet(ctx context.Context, sheet domain.SpecSheet) error
	UpdateSpecSheet(ctx context.Context, id domain.ID, sheet domain.SpecSheet) error
	DeleteSpecSheet(ctx context.Context, id domain.ID) error
	SetSpecSheetActive(ctx context.Context, id domain.ID, active bool) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListSupplies(ctx context.Context) ([]domain.Supply, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
}

type bearerContextKey struct{}

// WithBearer makes calls made with ctx forward the given token instead of
// signing a service token.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerContextKey{}, token)
}

func BearerFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerContextKey{}).(string)
	return token, ok && token != ""
}

type serviceTokenContextKey struct{}

// AsService marks ctx as belonging to the dashboard itself rather than to a
// request, allowing a signed service token when no bearer is forwarded.
func AsService(ctx context.Context) context.Context {
	return context.WithValue(ctx, serviceTokenContextKey{}, true)
}

func isService(ctx context.Context) bool {
	ok, _ := ctx.Value(serviceTokenContextKey{}).(bool)
	return ok
}
