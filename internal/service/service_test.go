package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend/memory"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/cache"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	auditmemory "github.com/MiguelTdea/28Julio-Delicrem-master/internal/store/memory"
)

var errBoom = errors.New("boom")

// countingBackend records mutating calls and can fail selected methods.
type countingBackend struct {
	backend.Client

	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
}

func newCountingBackend(inner backend.Client) *countingBackend {
	return &countingBackend{Client: inner, calls: map[string]int{}, fail: map[string]error{}}
}

func (c *countingBackend) hit(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[name]++
	return c.fail[name]
}

func (c *countingBackend) mutations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for name, count := range c.calls {
		if !strings.HasPrefix(name, "List") {
			n += count
		}
	}
	return n
}

func (c *countingBackend) CreateUser(ctx context.Context, u domain.User) error {
	if err := c.hit("CreateUser"); err != nil {
		return err
	}
	return c.Client.CreateUser(ctx, u)
}

func (c *countingBackend) UpdateUser(ctx context.Context, id domain.ID, u domain.User) error {
	if err := c.hit("UpdateUser"); err != nil {
		return err
	}
	return c.Client.UpdateUser(ctx, id, u)
}

func (c *countingBackend) DeleteUser(ctx context.Context, id domain.ID) error {
	if err := c.hit("DeleteUser"); err != nil {
		return err
	}
	return c.Client.DeleteUser(ctx, id)
}

func (c *countingBackend) CreateSpecSheet(ctx context.Context, s domain.SpecSheet) error {
	if err := c.hit("CreateSpecSheet"); err != nil {
		return err
	}
	return c.Client.CreateSpecSheet(ctx, s)
}

func (c *countingBackend) UpdateSpecSheet(ctx context.Context, id domain.ID, s domain.SpecSheet) error {
	if err := c.hit("UpdateSpecSheet"); err != nil {
		return err
	}
	return c.Client.UpdateSpecSheet(ctx, id, s)
}

func (c *countingBackend) DeleteSpecSheet(ctx context.Context, id domain.ID) error {
	if err := c.hit("DeleteSpecSheet"); err != nil {
		return err
	}
	return c.Client.DeleteSpecSheet(ctx, id)
}

func (c *countingBackend) SetSpecSheetActive(ctx context.Context, id domain.ID, active bool) error {
	if err := c.hit("SetSpecSheetActive"); err != nil {
		return err
	}
	return c.Client.SetSpecSheetActive(ctx, id, active)
}

func (c *countingBackend) ListClients(ctx context.Context) ([]domain.Client, error) {
	if err := c.hit("ListClients"); err != nil {
		return nil, err
	}
	return c.Client.ListClients(ctx)
}

type fixture struct {
	svc      *Service
	backend  *countingBackend
	mem      *memory.Store
	audit    *auditmemory.Store
	notifier *notify.Recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mem := memory.NewSeeded()
	counting := newCountingBackend(mem)
	audit := auditmemory.New()
	svc := New(counting, audit, cache.NewMemoryReportCache(time.Minute))
	svc.now = func() time.Time { return time.Date(2024, 8, 2, 15, 0, 0, 0, time.UTC) }
	return fixture{svc: svc, backend: counting, mem: mem, audit: audit, notifier: notify.NewRecorder()}
}

func validUser() domain.User {
	return domain.User{
		Name:           "Camila Ríos",
		Email:          "camila@delicrem.co",
		Password:       "secreta",
		DocumentType:   "CC",
		DocumentNumber: "1122334455",
		Gender:         "Femenino",
		Nationality:    "Colombiana",
		Phone:          "3012223344",
		Address:        "Calle 50 # 20-10",
		RoleID:         "2",
	}
}
