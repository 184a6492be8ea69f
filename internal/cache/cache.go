package cache

import (
	"context"
	"sync"
	"time"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

const defaultReportTTL = 30 * time.Minute

// ReportCache holds the one generated sales report each session may have.
type ReportCache interface {
	Get(ctx context.Context, session string) (*domain.SalesReport, bool, error)
	Set(ctx context.Context, session string, report *domain.SalesReport) error
	Delete(ctx context.Context, session string) error
}

type memoryEntry struct {
	report    domain.SalesReport
	expiresAt time.Time
}

type MemoryReportCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryReportCache(ttl time.Duration) *MemoryReportCache {
	if ttl <= 0 {
		ttl = defaultReportTTL
	}
	return &MemoryReportCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryReportCache) Get(_ context.Context, session string) (*domain.SalesReport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[session]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, session)
		return nil, false, nil
	}
	report := entry.report
	return &report, true, nil
}

func (c *MemoryReportCache) Set(_ context.Context, session string, report *domain.SalesReport) error {
	if report == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[session] = memoryEntry{report: *report, expiresAt: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryReportCache) Delete(_ context.Context, session string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, session)
	return nil
}
