package reconciliation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"bom-merger/core/logger"
	"bom-merger/core/reconcile"
	"bom-merger/core/storage"
	"bom-merger/core/validation"
	"bom-merger/feature/mapping"
	"bom-merger/feature/report"
	"bom-merger/feature/tables"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/reconcile", h.HandleReconcile)

	group := app.Group("/runs")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
	group.Patch("/:id/records/:designator", h.HandleUpdateRecord)
	group.Post("/:id/suppress", h.HandleSuppress)
	group.Get("/:id/bom", h.HandleBOM)
	group.Post("/:id/export", h.HandleExport)
	group.Get("/:id/report", h.HandleReport)
}

// HandleReconcile creates a run.
// @Summary Reconcile Parts and Placement Tables
// @Description Joins a parts list and a placement file by designator and stores the run for review.
// @Description Send multipart form files "parts" and "placement" (csv, txt or xlsx) with optional
// @Description "name", "profile", "delimiter" and "mapping" (JSON) fields, or a JSON body naming
// @Description objects already uploaded to the bucket.
// @Tags reconcile
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param parts formData file false "Parts table"
// @Param placement formData file false "Placement table"
// @Param profile formData string false "Mapping profile name"
// @Param request body ObjectRequest false "Inputs stored in the bucket"
// @Success 201 {object} RunView
// @Failure 400 {object} map[string]interface{} "Invalid input or column mapping"
// @Failure 404 {object} map[string]string "Profile or object not found"
// @Router /reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var (
		view *RunView
		err  error
	)
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var req CreateRequest
		if req, err = parseMultipart(c); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		view, err = h.service.Create(c.Context(), req)
	} else {
		var req ObjectRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		view, err = h.service.CreateFromStorage(c.Context(), req)
	}
	if err != nil {
		return h.fail(c, l, "Reconciliation failed", err)
	}

	l.Info("Run created", zap.String("run_id", view.ID), zap.Bool("exportable", view.Exportable))
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleList lists recent runs.
// @Summary List Runs
// @Tags runs
// @Produce json
// @Success 200 {array} RunSummary
// @Router /runs [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	runs, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to list runs", err)
	}
	return c.JSON(runs)
}

// HandleGet returns a run with its records.
// @Summary Get Run
// @Description Returns the reconciled records of a run with its live summary and export gate.
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} RunView
// @Failure 404 {object} map[string]string "Not Found"
// @Router /runs/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	view, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to get run", err)
	}
	return c.JSON(view)
}

// HandleDelete removes a run.
// @Summary Delete Run
// @Tags runs
// @Param id path string true "Run ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /runs/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to delete run", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUpdateRecord applies a reviewer edit.
// @Summary Update Record
// @Description Toggles suppression or sets the remark of one record.
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param designator path string true "Designator"
// @Param patch body RecordPatch true "Fields to change"
// @Success 200 {object} reconcile.Record
// @Failure 404 {object} map[string]string "Not Found"
// @Router /runs/{id}/records/{designator} [patch]
func (h *Handler) HandleUpdateRecord(c *fiber.Ctx) error {
	var patch RecordPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	designator, err := url.PathUnescape(c.Params("designator"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid designator"})
	}

	rec, err := h.service.UpdateRecord(c.Context(), c.Params("id"), designator, patch)
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to update record", err)
	}
	return c.JSON(rec)
}

// HandleSuppress suppresses placement-only records by prefix.
// @Summary Bulk Suppress
// @Description Suppresses every active placement-only record whose designator starts with the pattern ("TP*").
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Run ID"
// @Param request body SuppressRequest true "Prefix pattern"
// @Success 200 {object} map[string]interface{}
// @Router /runs/{id}/suppress [post]
func (h *Handler) HandleSuppress(c *fiber.Ctx) error {
	var req SuppressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	count, err := h.service.Suppress(c.Context(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Bulk suppression failed", err)
	}
	return c.JSON(fiber.Map{"suppressed": count})
}

// HandleBOM returns the aggregated production BOM.
// @Summary Get Production BOM
// @Description Groups parts by part number and description with computed quantities.
// @Tags runs
// @Produce json
// @Produce text/csv
// @Param id path string true "Run ID"
// @Param layer query string false "top or bottom"
// @Param format query string false "json (default) or csv"
// @Success 200 {array} reconcile.Line
// @Failure 400 {object} map[string]string "Invalid layer"
// @Router /runs/{id}/bom [get]
func (h *Handler) HandleBOM(c *fiber.Ctx) error {
	id := c.Params("id")
	lines, err := h.service.BOM(c.Context(), id, c.Query("layer"))
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to aggregate BOM", err)
	}

	if c.Query("format") != "csv" {
		return c.JSON(lines)
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, lines); err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to write BOM", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-bom.csv"`, id))
	return c.Send(buf.Bytes())
}

// HandleExport generates and uploads the production workbook.
// @Summary Export Production Files
// @Description Renders the six-sheet workbook and uploads it to the bucket. Refused while placement errors remain.
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]string
// @Failure 409 {object} map[string]string "Unresolved placement errors"
// @Router /runs/{id}/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	key, err := h.service.Export(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Export failed", err)
	}
	return c.JSON(fiber.Map{"key": key})
}

// HandleReport downloads the exported workbook.
// @Summary Download Production Files
// @Tags runs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Run ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not exported"
// @Router /runs/{id}/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.service.Report(c.Context(), id)
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Failed to download report", err)
	}
	c.Set(fiber.HeaderContentType, storage.XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.xlsx"`, id))
	return c.Send(data)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Int("status", status), zap.Error(err))
	}

	body := fiber.Map{"error": err.Error()}
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		body["fields"] = vErr.Fields
	}
	return c.Status(status).JSON(body)
}

func statusFor(err error) int {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, reconcile.ErrConfiguration),
		errors.Is(err, tables.ErrUnsupportedFormat),
		errors.Is(err, ErrInvalidLayer):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrRunNotFound),
		errors.Is(err, ErrRecordNotFound),
		errors.Is(err, mapping.ErrNotFound),
		errors.Is(err, storage.ErrObjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNotExportable):
		return fiber.StatusConflict
	case errors.Is(err, ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func parseMultipart(c *fiber.Ctx) (CreateRequest, error) {
	req := CreateRequest{
		Name:      c.FormValue("name"),
		Profile:   c.FormValue("profile"),
		Delimiter: c.FormValue("delimiter"),
	}

	if raw := c.FormValue("mapping"); raw != "" {
		var m reconcile.Mapping
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return req, fmt.Errorf("invalid mapping: %w", err)
		}
		req.Mapping = &m
	}

	var err error
	if req.Parts, err = formInput(c, "parts"); err != nil {
		return req, err
	}
	if req.Placement, err = formInput(c, "placement"); err != nil {
		return req, err
	}
	return req, nil
}

func formInput(c *fiber.Ctx, field string) (Input, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return Input{}, fmt.Errorf("missing %s file", field)
	}
	f, err := fh.Open()
	if err != nil {
		return Input{}, fmt.Errorf("failed to open %s file: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read %s file: %w", field, err)
	}
	return Input{Name: fh.Filename, Data: data}, nil
}
