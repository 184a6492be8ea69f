package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/validation"
)

func TestSaveUserRejectsInvalidFormWithoutBackendCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	user := validUser()
	user.Name = "Al"
	user.Email = ""

	err := screen.Save(ctx, user, false)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Fields, "nombre")
	assert.Contains(t, verr.Fields, "email")

	assert.Zero(t, f.backend.mutations())
	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, notify.LevelError, notes[0].Level)
	assert.Equal(t, validation.FormSummary, notes[0].Title)
}

func TestCreateUserRefetchesAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := WithActor(context.Background(), "admin@delicrem.co")
	screen := f.svc.Users(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	require.NoError(t, screen.Save(ctx, validUser(), false))

	screen.SetSearch("camila")
	view := screen.View()
	require.Len(t, view.Users, 1)
	assert.Equal(t, "Empleado", view.Users[0].RoleName)
	assert.Empty(t, view.Users[0].Password)

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "¡Creado! El usuario ha sido creado correctamente.", notes[0].Title)

	logs, err := f.audit.ListAuditLogs(ctx, "usuario", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "create", logs[0].Action)
	assert.Equal(t, "admin@delicrem.co", logs[0].Actor)
}

func TestEditUserDoesNotRequirePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	user := validUser()
	user.ID = "2"
	user.Password = ""
	user.Name = "Andrés Felipe Pérez"
	require.NoError(t, screen.Save(ctx, user, true))

	screen.SetSearch("felipe")
	view := screen.View()
	require.Len(t, view.Users, 1)
	assert.Equal(t, domain.ID("2"), view.Users[0].ID)
	assert.Equal(t, 1, f.backend.calls["UpdateUser"])
}

func TestSaveUserBackendFailureKeepsList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))
	before := screen.View()

	f.backend.fail["CreateUser"] = errBoom
	err := screen.Save(ctx, validUser(), false)
	require.ErrorIs(t, err, ErrBackend)
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, before, screen.View())
	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Error al guardar usuario. Por favor, inténtalo de nuevo.", notes[0].Title)
}

func TestDeclinedUserDeleteMakesNoBackendCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	answer := &notify.Answer{Yes: false}
	screen := f.svc.Users(f.notifier, answer)
	require.NoError(t, screen.Mount(ctx))
	before := screen.View()

	err := screen.Delete(ctx, "1")
	require.ErrorIs(t, err, ErrNotConfirmed)

	assert.Zero(t, f.backend.mutations())
	assert.Equal(t, before, screen.View())
	require.NotNil(t, answer.Prompt)
	assert.Contains(t, answer.Prompt.Text, "Laura Gómez")
	assert.Empty(t, f.notifier.Notifications())
}

func TestConfirmedUserDeleteRemovesUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, &notify.Answer{Yes: true})
	require.NoError(t, screen.Mount(ctx))

	require.NoError(t, screen.Delete(ctx, "1"))

	view := screen.View()
	require.Len(t, view.Users, 1)
	assert.Equal(t, domain.ID("2"), view.Users[0].ID)
	assert.Equal(t, 1, f.backend.calls["DeleteUser"])

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "¡Eliminado!", notes[0].Title)
}

func TestDeleteUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, &notify.Answer{Yes: true})
	require.NoError(t, screen.Mount(ctx))

	require.ErrorIs(t, screen.Delete(ctx, "999"), ErrNotFound)
	assert.Zero(t, f.backend.mutations())
}

func TestUserPaginationDoesNotResetPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	screen.SetPage(3)
	view := screen.View()
	assert.Empty(t, view.Users)
	assert.Equal(t, 3, view.Pagination.Page)
	assert.Equal(t, 1, view.Pagination.TotalPages)
}

// passwordLeakingBackend returns users the way some backends do, with the
// stored password hash still attached.
type passwordLeakingBackend struct {
	*countingBackend
}

func (p passwordLeakingBackend) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := p.countingBackend.ListUsers(ctx)
	for i := range users {
		users[i].Password = "$2a$10$hash"
	}
	return users, err
}

func TestUserViewNeverCarriesPasswords(t *testing.T) {
	f := newFixture(t)
	f.svc.backend = passwordLeakingBackend{f.backend}
	ctx := context.Background()
	screen := f.svc.Users(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	view := screen.View()
	require.NotEmpty(t, view.Users)
	for _, row := range view.Users {
		assert.Empty(t, row.Password)
	}
}
