package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
)

func TestInactiveSheetRefusesDeleteEditAndDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, &notify.Answer{Yes: true})
	require.NoError(t, screen.Mount(ctx))

	require.ErrorIs(t, screen.Delete(ctx, "3"), ErrInactive)

	_, err := screen.Detail(ctx, "3")
	require.ErrorIs(t, err, ErrInactive)

	edit := domain.SpecSheet{ID: "3", ProductID: "3", Description: "Malteada", Lines: []domain.SpecSheetLine{{SupplyID: "1", Quantity: "1"}}}
	require.ErrorIs(t, screen.Save(ctx, edit, true), ErrInactive)

	assert.Zero(t, f.backend.mutations())
	assert.Len(t, f.notifier.Notifications(), 3)
}

func TestToggleReenablesInactiveSheet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	require.NoError(t, screen.Toggle(ctx, "3"))

	detail, err := screen.Detail(ctx, "3")
	require.NoError(t, err)
	assert.True(t, detail.Active)
	assert.Equal(t, 1, f.backend.calls["SetSpecSheetActive"])
}

func TestToggleFailureNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	f.backend.fail["SetSpecSheetActive"] = errBoom
	require.ErrorIs(t, screen.Toggle(ctx, "1"), ErrBackend)

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Hubo un problema al cambiar el estado de la ficha técnica.", notes[0].Title)
}

func TestSheetDetailResolvesNames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	sheet := domain.SpecSheet{
		ProductID:   "1",
		Description: "Vainilla con topping",
		Lines: []domain.SpecSheetLine{
			{SupplyID: "2", Quantity: "0.25"},
			{SupplyID: "77", Quantity: "1"},
		},
	}
	require.NoError(t, screen.Save(ctx, sheet, false))

	screen.SetSearch("TOPPING")
	view := screen.View()
	require.Len(t, view.Sheets, 1)
	assert.Equal(t, "Helado de Vainilla", view.Sheets[0].ProductName)

	detail, err := screen.Detail(ctx, view.Sheets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Helado de Vainilla", detail.ProductName)
	require.Len(t, detail.Lines, 2)
	assert.Equal(t, "Azúcar", detail.Lines[0].SupplyName)
	assert.Equal(t, domain.UnknownLabel, detail.Lines[1].SupplyName)
	assert.NotNil(t, detail.CreatedAt)
}

func TestSaveSheetValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	err := screen.Save(ctx, domain.SpecSheet{Description: "Sin producto"}, false)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, f.backend.mutations())
}

func TestDeclinedSheetDeleteMakesNoBackendCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	answer := &notify.Answer{}
	screen := f.svc.Sheets(f.notifier, answer)
	require.NoError(t, screen.Mount(ctx))
	before := screen.View()

	require.ErrorIs(t, screen.Delete(ctx, "1"), ErrNotConfirmed)
	assert.Zero(t, f.backend.mutations())
	assert.Equal(t, before, screen.View())
	require.NotNil(t, answer.Prompt)
	assert.Equal(t, "¿Estás seguro de que deseas eliminar la ficha técnica Base de vainilla?", answer.Prompt.Text)
}

func TestConfirmedSheetDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, &notify.Answer{Yes: true})
	require.NoError(t, screen.Mount(ctx))

	require.NoError(t, screen.Delete(ctx, "1"))
	view := screen.View()
	assert.Equal(t, 2, view.Pagination.TotalItems)

	notes := f.notifier.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "La ficha técnica ha sido eliminada.", notes[0].Text)
}

func TestSheetListShowsMissingProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	screen := f.svc.Sheets(f.notifier, nil)
	require.NoError(t, screen.Mount(ctx))

	sheet := domain.SpecSheet{
		ProductID:   "99",
		Description: "Producto retirado",
		Lines:       []domain.SpecSheetLine{{SupplyID: "1", Quantity: "1"}},
	}
	require.NoError(t, screen.Save(ctx, sheet, false))

	screen.SetSearch("retirado")
	view := screen.View()
	require.Len(t, view.Sheets, 1)
	assert.Equal(t, MissingProductLabel, view.Sheets[0].ProductName)

	detail, err := screen.Detail(ctx, view.Sheets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownLabel, detail.ProductName)
}
