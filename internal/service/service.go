package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/cache"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/store"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/validation"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/xid"
)

const PageSize = 5

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotConfirmed   = errors.New("action not confirmed")
	ErrInactive       = errors.New("spec sheet is inactive")
	ErrNotFound       = errors.New("not found")
	ErrBackend        = errors.New("backend unavailable")
	ErrReportNotFound = errors.New("no report generated")
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %d field(s)", len(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

type actorContextKey struct{}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(string)
	return actor, ok && actor != ""
}

// Service holds the collaborators shared by every screen. Screens themselves
// are per request and own their fetched copies.
type Service struct {
	backend backend.Client
	audit   store.AuditRepository
	reports cache.ReportCache
	now     func() time.Time
}

func New(client backend.Client, audit store.AuditRepository, reports cache.ReportCache) *Service {
	return &Service{
		backend: client,
		audit:   audit,
		reports: reports,
		now:     time.Now,
	}
}

func (s *Service) ListAuditLogs(ctx context.Context, entity string, limit int) ([]domain.AuditLog, error) {
	return s.audit.ListAuditLogs(ctx, entity, limit)
}

func (s *Service) logAudit(ctx context.Context, action string, entity string, entityID domain.ID, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = "system"
	}

	if err := s.audit.CreateAuditLog(ctx, domain.AuditLog{
		ID:        xid.New("audit"),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID.String(),
		Detail:    detail,
		Actor:     actor,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("action", action).
			Str("entity", entity).
			Str("entity_id", entityID.String()).
			Msg("failed to write audit log")
	}
}

// backendFailure logs err and wraps it so callers can map it with errors.Is.
func backendFailure(ctx context.Context, op string, err error) error {
	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("backend call failed")
	return fmt.Errorf("%s: %w: %w", op, ErrBackend, err)
}

// ask wraps a nil confirmer so a missing one always declines.
func ask(ctx context.Context, c notify.Confirmer, p notify.Prompt) bool {
	if c == nil {
		return false
	}
	return c.Confirm(ctx, p)
}
