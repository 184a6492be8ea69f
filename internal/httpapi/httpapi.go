package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/report"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/service"
)

type API struct {
	service       *service.Service
	allowedOrigin string
	logger        zerolog.Logger
}

func New(svc *service.Service, allowedOrigin string, logger zerolog.Logger) *API {
	return &API{
		service:       svc,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)

	mux.HandleFunc("/api/v1/usuarios", a.forwardAuth(a.handleUsers))
	mux.HandleFunc("/api/v1/usuarios/", a.forwardAuth(a.handleUserActions))
	mux.HandleFunc("/api/v1/fichas", a.forwardAuth(a.handleSheets))
	mux.HandleFunc("/api/v1/fichas/", a.forwardAuth(a.handleSheetActions))
	mux.HandleFunc("/api/v1/informes/ventas", a.forwardAuth(a.handleSalesReport))
	mux.HandleFunc("/api/v1/informes/ventas/xlsx", a.forwardAuth(a.handleSalesReportDownload))
	mux.HandleFunc("/api/v1/auditoria", a.forwardAuth(a.handleAuditLogs))

	return a.withMiddleware(mux)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleAuditLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	entity := strings.TrimSpace(r.URL.Query().Get("entity"))
	limit := parsePositiveLimit(r.URL.Query().Get("limit"), 100, 500)

	logs, err := a.service.ListAuditLogs(r.Context(), entity, limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

// statusFor maps screen errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, report.ErrMissingRange), errors.Is(err, report.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrNoSales), errors.Is(err, service.ErrReportNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotConfirmed), errors.Is(err, service.ErrInactive):
		return http.StatusConflict
	case errors.Is(err, service.ErrBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// pathTail returns what follows prefix, without surrounding slashes.
func pathTail(path string, prefix string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimPrefix(path, prefix), "/"))
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func parsePositiveLimit(raw string, fallback int, max int) int {
	limit := fallback
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
}

// publicMessage hides internal details on 5xx responses and logs them.
func publicMessage(r *http.Request, status int, err error) string {
	if status < 500 {
		return err.Error()
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	if status == http.StatusBadGateway {
		return "backend unavailable"
	}
	return "internal server error"
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, status, map[string]any{
		"error": publicMessage(r, status, err),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
