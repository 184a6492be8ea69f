package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/report"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/service"
)

func (a *API) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	rec := notify.NewRecorder()
	screen := a.service.Reports(sessionFrom(w, r), rec)

	switch r.Method {
	case http.MethodGet:
		view, err := screen.View(r.Context())
		writeScreen(w, r, http.StatusOK, rec, view, err, nil)
	case http.MethodPost:
		var req domain.ReportRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
			return
		}
		// A collection that failed to load is reported in the notifications;
		// the report is still built from what did load.
		_ = screen.Mount(r.Context())

		generated, err := screen.Generate(r.Context(), req)
		if err != nil {
			writeScreen(w, r, 0, rec, nil, err, nil)
			return
		}
		writeScreen(w, r, http.StatusCreated, rec, service.ViewOf(generated), nil, nil)
	case http.MethodDelete:
		err := screen.Cancel(r.Context())
		writeScreen(w, r, http.StatusOK, rec, service.ReportView{}, err, nil)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSalesReportDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	screen := a.service.Reports(sessionFrom(w, r), nil)
	var buf bytes.Buffer
	filename, err := screen.Export(r.Context(), &buf)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", report.XLSXMime)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
