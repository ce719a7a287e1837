/*
handlers.go - HTTP API handlers for the availability report service

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response, JSON and
  multipart parsing, and delegates the computations to the engine, report
  and loader packages.

ENDPOINTS:
  Datasets:
    POST   /api/datasets                      Upload mapping xlsx + reservations csv
    GET    /api/datasets                      List stored datasets
    GET    /api/datasets/{id}                 Dataset listing entry
    DELETE /api/datasets/{id}                 Remove a dataset

  Reports:
    GET    /api/datasets/{id}/report          Download the xlsx report
    GET    /api/datasets/{id}/availability    Per-category availability counts

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Dataset not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stayline/availability-engine/config"
	"github.com/stayline/availability-engine/engine"
	"github.com/stayline/availability-engine/inventory"
	"github.com/stayline/availability-engine/loader"
	"github.com/stayline/availability-engine/report"
	"github.com/stayline/availability-engine/store"
)

// maxUploadBytes bounds one multipart upload (both files together).
const maxUploadBytes = 32 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    store.DatasetStore
	Defaults config.Report
}

// NewHandler creates a new handler over the given store, applying the report
// defaults to requests that leave knobs unset.
func NewHandler(s store.DatasetStore, defaults config.Report) *Handler {
	return &Handler{Store: s, Defaults: defaults}
}

// =============================================================================
// DATASET HANDLERS
// =============================================================================

// UploadDataset stores a new dataset from a multipart form with two files:
// "mapping" (xlsx) and "reservations" (csv). Optional fields: "name",
// "price_column".
// POST /api/datasets
func (h *Handler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	mappingFile, err := formFile(r, "mapping")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing mapping file", err)
		return
	}
	defer mappingFile.Close()

	reservationsFile, err := formFile(r, "reservations")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing reservations file", err)
		return
	}
	defer reservationsFile.Close()

	apartments, err := loader.LoadMapping(mappingFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mapping file", err)
		return
	}

	priceColumn := r.FormValue("price_column")
	if priceColumn == "" {
		priceColumn = h.Defaults.PriceColumn
	}
	loaded, err := loader.LoadReservations(reservationsFile, priceColumn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reservations file", err)
		return
	}

	merged := inventory.Merge(apartments, loaded.Reservations)

	name := r.FormValue("name")
	if name == "" {
		name = fmt.Sprintf("upload %s", time.Now().UTC().Format("2006-01-02 15:04"))
	}
	d := store.Dataset{
		ID:           store.NewID(),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
		Apartments:   merged.Apartments,
		Reservations: merged.Reservations,
	}
	if err := h.Store.Save(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store dataset", err)
		return
	}

	datasetUploads.Inc()
	writeJSON(w, http.StatusCreated, UploadResponse{
		Dataset:               d.Info(),
		DroppedRows:           loaded.Dropped,
		SynthesizedApartments: len(merged.Synthesized),
	})
}

// ListDatasets returns stored dataset listings, newest first.
// GET /api/datasets
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list datasets", err)
		return
	}
	if infos == nil {
		infos = []store.DatasetInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

// GetDataset returns one dataset's listing entry.
// GET /api/datasets/{id}
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDataset(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d.Info())
}

// DeleteDataset removes a dataset.
// DELETE /api/datasets/{id}
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Dataset not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete dataset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GenerateReport renders the xlsx report for a date range. Query parameters:
// start, end (YYYY-MM-DD), period_days, partition (fixed | weekday-weekend).
// GET /api/datasets/{id}/report
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDataset(w, r)
	if !ok {
		return
	}
	params, err := h.reportParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report parameters", err)
		return
	}

	started := time.Now()
	builder := report.NewBuilder(d.Apartments, d.Reservations, params.periods, params.months, params.options...)
	sheets := builder.BuildSheets(nil)

	filename := fmt.Sprintf("availability-%s-%s.xlsx", params.start, params.end)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := report.Write(w, sheets); err != nil {
		// Headers are out; all we can do is log via the middleware's recorder.
		return
	}

	reportsGenerated.WithLabelValues(params.partition).Inc()
	reportDuration.Observe(time.Since(started).Seconds())
}

// AvailabilityCounts returns the per-category availability matrix as JSON.
// GET /api/datasets/{id}/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) AvailabilityCounts(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDataset(w, r)
	if !ok {
		return
	}
	params, err := h.reportParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report parameters", err)
		return
	}

	builder := report.NewBuilder(d.Apartments, d.Reservations, params.periods, params.months, params.options...)
	sheet := builder.AvailabilityCounts()

	dto := MatrixDTO{Header: sheet.Header, Rows: make([][]string, 0, len(sheet.Rows))}
	for _, row := range sheet.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i], _ = cell.(string)
		}
		dto.Rows = append(dto.Rows, cells)
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// REQUEST PARSING
// =============================================================================

type reportParams struct {
	start, end engine.Date
	partition  string
	periods    []engine.Period
	months     []engine.MonthPeriod
	options    []engine.Option
}

func (h *Handler) reportParams(r *http.Request) (reportParams, error) {
	q := r.URL.Query()

	start, err := engine.ParseDate(q.Get("start"))
	if err != nil {
		return reportParams{}, fmt.Errorf("start: %w", err)
	}
	end, err := engine.ParseDate(q.Get("end"))
	if err != nil {
		return reportParams{}, fmt.Errorf("end: %w", err)
	}

	params := reportParams{start: start, end: end, partition: q.Get("partition")}
	if params.partition == "" {
		params.partition = "fixed"
	}

	switch params.partition {
	case "fixed":
		periodDays := h.Defaults.PeriodDays
		if raw := q.Get("period_days"); raw != "" {
			if periodDays, err = strconv.Atoi(raw); err != nil {
				return reportParams{}, fmt.Errorf("period_days: %w", err)
			}
		}
		if params.periods, err = engine.GeneratePeriods(start, end, periodDays); err != nil {
			return reportParams{}, err
		}
	case "weekday-weekend":
		if params.periods, err = engine.GenerateWeekdayWeekendPeriods(start, end); err != nil {
			return reportParams{}, err
		}
	default:
		return reportParams{}, fmt.Errorf("unknown partition %q", params.partition)
	}

	if params.months, err = engine.GenerateMonthlyPeriods(start, end); err != nil {
		return reportParams{}, err
	}

	if len(h.Defaults.ExcludedStatuses) > 0 {
		params.options = append(params.options,
			engine.WithStatusFilter(engine.ExcludeStatuses(h.Defaults.ExcludedStatuses...)))
	}
	return params, nil
}

func (h *Handler) loadDataset(w http.ResponseWriter, r *http.Request) (store.Dataset, bool) {
	d, err := h.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Dataset not found", nil)
		return store.Dataset{}, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load dataset", err)
		return store.Dataset{}, false
	}
	return d, true
}

func formFile(r *http.Request, field string) (multipart.File, error) {
	f, _, err := r.FormFile(field)
	return f, err
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
