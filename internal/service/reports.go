package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/report"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/xid"
)

type ReportView struct {
	Generated bool                 `json:"informe_generado"`
	Report    *domain.SalesReport  `json:"informe,omitempty"`
	Charts    *domain.ReportCharts `json:"graficos,omitempty"`
	Rows      []domain.ExportRow   `json:"filas,omitempty"`
}

// ReportScreen generates, keeps and exports one sales report per session.
type ReportScreen struct {
	svc      *Service
	notifier notify.Notifier
	session  string

	sales    []domain.Sale
	products []domain.Product
	clients  []domain.Client
}

func (s *Service) Reports(session string, n notify.Notifier) *ReportScreen {
	if n == nil {
		n = notify.NewRecorder()
	}
	return &ReportScreen{svc: s, notifier: n, session: session}
}

// Mount fetches sales, products and clients concurrently. Each collection
// that fails to load stays empty; the others are still used.
func (r *ReportScreen) Mount(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		sales, err := r.svc.backend.ListSales(ctx)
		if err != nil {
			return fmt.Errorf("list sales: %w", err)
		}
		r.sales = sales
		return nil
	})
	g.Go(func() error {
		products, err := r.svc.backend.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		r.products = products
		return nil
	})
	g.Go(func() error {
		clients, err := r.svc.backend.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("list clients: %w", err)
		}
		r.clients = clients
		return nil
	})
	if err := g.Wait(); err != nil {
		notify.Error(ctx, r.notifier, "Error al cargar los datos del informe.", "")
		return backendFailure(ctx, "load report data", err)
	}
	return nil
}

// Generate replaces the session's report. A missing or unparseable range
// and an empty match each raise exactly one notification and leave the
// previous report untouched.
func (r *ReportScreen) Generate(ctx context.Context, req domain.ReportRequest) (*domain.SalesReport, error) {
	generated, err := report.Build(xid.New("informe"), req, r.sales, r.products, r.clients, r.svc.now())
	switch {
	case errors.Is(err, report.ErrMissingRange), errors.Is(err, report.ErrInvalidRange):
		notify.Error(ctx, r.notifier, "Fechas inválidas", "Por favor, selecciona las fechas de inicio y fin.")
		return nil, err
	case errors.Is(err, report.ErrNoSales):
		notify.Error(ctx, r.notifier, "No se encontraron ventas", "No hay ventas dentro del rango de fechas seleccionado.")
		return nil, err
	case err != nil:
		return nil, err
	}

	if err := r.svc.reports.Set(ctx, r.session, generated); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("session", r.session).Msg("failed to store report")
		notify.Error(ctx, r.notifier, "Error", "No se pudo guardar el informe generado.")
		return nil, fmt.Errorf("store report: %w", err)
	}
	r.svc.logAudit(ctx, "generate", "informe", domain.ID(generated.ID),
		fmt.Sprintf("%s - %s (%d ventas)", generated.Start, generated.End, generated.SalesCount))
	notify.Success(ctx, r.notifier, "Informe generado con éxito", "")
	return generated, nil
}

func (r *ReportScreen) Current(ctx context.Context) (*domain.SalesReport, error) {
	current, ok, err := r.svc.reports.Get(ctx, r.session)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if !ok {
		return nil, ErrReportNotFound
	}
	return current, nil
}

// Cancel discards the session's report, if any.
func (r *ReportScreen) Cancel(ctx context.Context) error {
	return r.svc.reports.Delete(ctx, r.session)
}

// Export writes the current report as a workbook and returns its file name.
func (r *ReportScreen) Export(ctx context.Context, w io.Writer) (string, error) {
	current, err := r.Current(ctx)
	if err != nil {
		return "", err
	}
	if err := report.WriteXLSX(w, current); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	return report.FileName(current), nil
}

func (r *ReportScreen) View(ctx context.Context) (ReportView, error) {
	current, err := r.Current(ctx)
	if errors.Is(err, ErrReportNotFound) {
		return ReportView{}, nil
	}
	if err != nil {
		return ReportView{}, err
	}
	return ViewOf(current), nil
}

// ViewOf renders a report with its charts and export rows.
func ViewOf(rep *domain.SalesReport) ReportView {
	if rep == nil {
		return ReportView{}
	}
	charts := report.Charts(rep)
	return ReportView{
		Generated: true,
		Report:    rep,
		Charts:    &charts,
		Rows:      report.ExportRows(rep),
	}
}
