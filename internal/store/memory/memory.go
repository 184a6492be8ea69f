package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/store"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/xid"
)

type Store struct {
	mu        sync.RWMutex
	auditLogs []domain.AuditLog
}

var _ store.AuditRepository = (*Store)(nil)

func New() *Store {
	return &Store{auditLogs: make([]domain.AuditLog, 0, 128)}
}

func (s *Store) CreateAuditLog(_ context.Context, entry domain.AuditLog) error {
	if strings.TrimSpace(entry.Action) == "" || strings.TrimSpace(entry.Entity) == "" {
		return store.ErrInvalidAuditLog
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, entity string, limit int) ([]domain.AuditLog, error) {
	if limit < 1 {
		limit = store.DefaultAuditLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.AuditLog, 0, min(limit, len(s.auditLogs)))
	for i := len(s.auditLogs) - 1; i >= 0 && len(result) < limit; i-- {
		entry := s.auditLogs[i]
		if entity != "" && entry.Entity != entity {
			continue
		}
		result = append(result, entry)
	}

	// Appends are chronological, but callers may backdate CreatedAt.
	slices.SortStableFunc(result, func(a, b domain.AuditLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}
