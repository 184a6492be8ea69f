package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/listview"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/validation"
)

// MissingProductLabel is shown in the list for a sheet whose product is not
// among the loaded products.
const MissingProductLabel = "Producto no encontrado"

type SheetRow struct {
	domain.SpecSheet
	ProductName string `json:"producto"`
}

type SheetView struct {
	Sheets     []SheetRow        `json:"fichas"`
	Products   []domain.Product  `json:"productos"`
	Supplies   []domain.Supply   `json:"insumos"`
	Search     string            `json:"search"`
	Pagination listview.PageInfo `json:"pagination"`
}

type SheetDetailLine struct {
	SupplyID   domain.ID       `json:"id_insumo"`
	SupplyName string          `json:"insumo"`
	Quantity   domain.Flexible `json:"cantidad"`
}

type SheetDetail struct {
	ID          domain.ID         `json:"id_ficha"`
	ProductID   domain.ID         `json:"id_producto"`
	ProductName string            `json:"producto"`
	Description string            `json:"descripcion"`
	Supplies    string            `json:"insumos"`
	Active      bool              `json:"activo"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
	Lines       []SheetDetailLine `json:"detalles"`
}

// SheetScreen is the spec sheet admin list with its editor and detail view.
type SheetScreen struct {
	svc       *Service
	notifier  notify.Notifier
	confirmer notify.Confirmer

	sheets   []domain.SpecSheet
	products []domain.Product
	supplies []domain.Supply
	search   string
	page     int
}

func (s *Service) Sheets(n notify.Notifier, c notify.Confirmer) *SheetScreen {
	if n == nil {
		n = notify.NewRecorder()
	}
	return &SheetScreen{svc: s, notifier: n, confirmer: c, page: 1}
}

func (f *SheetScreen) Mount(ctx context.Context) error {
	var (
		sheets   []domain.SpecSheet
		products []domain.Product
		supplies []domain.Supply
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sheets, err = f.svc.backend.ListSpecSheets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = f.svc.backend.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		supplies, err = f.svc.backend.ListSupplies(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		notify.Error(ctx, f.notifier, "Error al cargar las fichas técnicas.", "")
		return backendFailure(ctx, "list spec sheets", err)
	}
	f.sheets, f.products, f.supplies = sheets, products, supplies
	return nil
}

func (f *SheetScreen) refresh(ctx context.Context) {
	sheets, err := f.svc.backend.ListSpecSheets(ctx)
	if err != nil {
		_ = backendFailure(ctx, "refresh spec sheets", err)
		return
	}
	f.sheets = sheets
}

func (f *SheetScreen) SetSearch(term string) {
	f.search = term
}

func (f *SheetScreen) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	f.page = page
}

func (f *SheetScreen) find(id domain.ID) (domain.SpecSheet, error) {
	idx := slices.IndexFunc(f.sheets, func(x domain.SpecSheet) bool { return x.ID == id })
	if idx < 0 {
		return domain.SpecSheet{}, fmt.Errorf("spec sheet %s: %w", id, ErrNotFound)
	}
	return f.sheets[idx], nil
}

// requireActive refuses edit, delete and detail on a disabled sheet.
func (f *SheetScreen) requireActive(ctx context.Context, sheet domain.SpecSheet) error {
	if sheet.Active {
		return nil
	}
	notify.Error(ctx, f.notifier, "Ficha técnica inactiva", "Activa la ficha técnica para usar esta acción.")
	return fmt.Errorf("spec sheet %s: %w", sheet.ID, ErrInactive)
}

func (f *SheetScreen) Save(ctx context.Context, sheet domain.SpecSheet, editing bool) error {
	if errs := validation.ValidateSpecSheet(sheet); !errs.Valid() {
		notify.Error(ctx, f.notifier, validation.FormSummary, "")
		return &ValidationError{Fields: errs}
	}

	var err error
	if editing {
		existing, ferr := f.find(sheet.ID)
		if ferr != nil {
			return ferr
		}
		if aerr := f.requireActive(ctx, existing); aerr != nil {
			return aerr
		}
		err = f.svc.backend.UpdateSpecSheet(ctx, sheet.ID, sheet)
	} else {
		sheet.ID = ""
		err = f.svc.backend.CreateSpecSheet(ctx, sheet)
	}
	if err != nil {
		notify.Error(ctx, f.notifier, "Error", "Hubo un problema al guardar la ficha técnica.")
		return backendFailure(ctx, "save spec sheet", err)
	}

	f.refresh(ctx)
	if editing {
		f.svc.logAudit(ctx, "update", "ficha", sheet.ID, sheet.Description)
		notify.Success(ctx, f.notifier, "¡Actualizada!", "La ficha técnica ha sido actualizada.")
	} else {
		f.svc.logAudit(ctx, "create", "ficha", "", sheet.Description)
		notify.Success(ctx, f.notifier, "¡Creada!", "La ficha técnica ha sido creada.")
	}
	return nil
}

func (f *SheetScreen) Delete(ctx context.Context, id domain.ID) error {
	sheet, err := f.find(id)
	if err != nil {
		return err
	}
	if err := f.requireActive(ctx, sheet); err != nil {
		return err
	}

	confirmed := ask(ctx, f.confirmer, notify.Prompt{
		Title:         "¿Estás seguro?",
		Text:          fmt.Sprintf("¿Estás seguro de que deseas eliminar la ficha técnica %s?", sheet.Description),
		ConfirmButton: "Sí, eliminar",
		CancelButton:  "Cancelar",
	})
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := f.svc.backend.DeleteSpecSheet(ctx, id); err != nil {
		notify.Error(ctx, f.notifier, "Error", "Hubo un problema al eliminar la ficha técnica.")
		return backendFailure(ctx, "delete spec sheet", err)
	}
	f.refresh(ctx)
	f.svc.logAudit(ctx, "delete", "ficha", id, sheet.Description)
	notify.Success(ctx, f.notifier, "¡Eliminado!", "La ficha técnica ha sido eliminada.")
	return nil
}

// Toggle flips the active flag. It is the one action allowed on an inactive
// sheet, since it is how the sheet gets re-enabled.
func (f *SheetScreen) Toggle(ctx context.Context, id domain.ID) error {
	sheet, err := f.find(id)
	if err != nil {
		return err
	}
	if err := f.svc.backend.SetSpecSheetActive(ctx, id, !sheet.Active); err != nil {
		notify.Error(ctx, f.notifier, "Hubo un problema al cambiar el estado de la ficha técnica.", "")
		return backendFailure(ctx, "toggle spec sheet", err)
	}
	f.refresh(ctx)
	f.svc.logAudit(ctx, "toggle", "ficha", id, fmt.Sprintf("activo=%t", !sheet.Active))
	return nil
}

func (f *SheetScreen) Detail(ctx context.Context, id domain.ID) (SheetDetail, error) {
	sheet, err := f.find(id)
	if err != nil {
		return SheetDetail{}, err
	}
	if err := f.requireActive(ctx, sheet); err != nil {
		return SheetDetail{}, err
	}

	supplyNames := firstNames(f.supplies, func(x domain.Supply) (domain.ID, string) { return x.ID, x.Name })
	lines := make([]SheetDetailLine, 0, len(sheet.Lines))
	for _, line := range sheet.Lines {
		lines = append(lines, SheetDetailLine{
			SupplyID:   line.SupplyID,
			SupplyName: lookup(supplyNames, line.SupplyID),
			Quantity:   line.Quantity,
		})
	}
	productNames := firstNames(f.products, func(x domain.Product) (domain.ID, string) { return x.ID, x.Name })

	return SheetDetail{
		ID:          sheet.ID,
		ProductID:   sheet.ProductID,
		ProductName: lookup(productNames, sheet.ProductID),
		Description: sheet.Description,
		Supplies:    sheet.Supplies,
		Active:      sheet.Active,
		CreatedAt:   sheet.CreatedAt,
		UpdatedAt:   sheet.UpdatedAt,
		Lines:       lines,
	}, nil
}

func (f *SheetScreen) View() SheetView {
	productNames := firstNames(f.products, func(x domain.Product) (domain.ID, string) { return x.ID, x.Name })

	filtered := listview.Filter(f.sheets, f.search, func(x domain.SpecSheet) string { return x.Description })
	pageItems, info := listview.Paginate(filtered, f.page, PageSize)

	rows := make([]SheetRow, 0, len(pageItems))
	for _, x := range pageItems {
		name, ok := productNames[x.ProductID]
		if !ok {
			name = MissingProductLabel
		}
		rows = append(rows, SheetRow{SpecSheet: x, ProductName: name})
	}
	return SheetView{
		Sheets:     rows,
		Products:   slices.Clone(f.products),
		Supplies:   slices.Clone(f.supplies),
		Search:     f.search,
		Pagination: info,
	}
}

func firstNames[T any](items []T, key func(T) (domain.ID, string)) map[domain.ID]string {
	out := make(map[domain.ID]string, len(items))
	for _, item := range items {
		id, name := key(item)
		if _, ok := out[id]; !ok {
			out[id] = name
		}
	}
	return out
}

func lookup(names map[domain.ID]string, id domain.ID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return domain.UnknownLabel
}
