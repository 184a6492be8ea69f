package store

import (
	"context"
	"errors"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
)

var ErrInvalidAuditLog = errors.New("invalid audit log")

// AuditRepository records every mutation the dashboard forwards to the
// business backend.
type AuditRepository interface {
	CreateAuditLog(ctx context.Context, entry domain.AuditLog) error
	// ListAuditLogs returns the newest entries first. An empty entity lists
	// all of them.
	ListAuditLogs(ctx context.Context, entity string, limit int) ([]domain.AuditLog, error)
}

const DefaultAuditLimit = 100
