package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cockpit/internal/config"
	"github.com/jakechorley/shift-cockpit/pkg/core/coverage"
	"github.com/jakechorley/shift-cockpit/pkg/core/services"
	"github.com/jakechorley/shift-cockpit/pkg/db"
)

type shiftRequest struct {
	Date  string `json:"date" binding:"required,datetime=2006-01-02"`
	Shift string `json:"shift" binding:"required,oneof=early late night"`
}

type moveRequest struct {
	EmployeeID  string `json:"employeeId" binding:"required"`
	Source      string `json:"source" binding:"required,oneof=early late night"`
	Destination string `json:"destination" binding:"required,oneof=early late night"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

type screenRequest struct {
	Source      string `json:"source" binding:"required,oneof=early late night"`
	Destination string `json:"destination" binding:"required,oneof=early late night"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

type replacementsRequest struct {
	Date       string `json:"date" binding:"required,datetime=2006-01-02"`
	Shift      string `json:"shift" binding:"required,oneof=early late night"`
	MaxResults int    `json:"maxResults" binding:"min=0"`
	ExcludeRed bool   `json:"excludeRed"`
}

type reportRequest struct {
	Start string `json:"start" binding:"required,datetime=2006-01-02"`
}

// Handler serves the coverage endpoints from one snapshot store
type Handler struct {
	store  db.SnapshotStore
	cfg    *config.Config
	logger *zap.Logger
}

// NewHandler creates a handler
func NewHandler(store db.SnapshotStore, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, logger: logger}
}

// bindDate parses a YYYY-MM-DD field, replying 400 when it is malformed
func bindDate(c *gin.Context, value string) (time.Time, bool) {
	date, err := coverage.ParseDay(value)
	if err != nil {
		badRequest(c, err.Error())
		return time.Time{}, false
	}
	return date, true
}

// bindShift parses a shift label field, replying 400 when it is unknown
func bindShift(c *gin.Context, value string) (coverage.ShiftLabel, bool) {
	shift, err := coverage.ParseShiftLabel(value)
	if err != nil {
		badRequest(c, err.Error())
		return 0, false
	}
	return shift, true
}

// handleError maps service errors onto the envelope
func handleError(c *gin.Context, err error) {
	var rejected *coverage.MoveRejectedError
	switch {
	case errors.As(err, &rejected):
		fail(c, http.StatusUnprocessableEntity, CodeMoveRejected, "move rejected", rejected.Err.Error())
	case errors.Is(err, coverage.ErrInvalidShift):
		badRequest(c, err.Error())
	default:
		internalError(c, err)
	}
}

// Coverage handles POST /api/v1/coverage
func (h *Handler) Coverage(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, valid := bindDate(c, req.Date)
	if !valid {
		return
	}
	shift, valid := bindShift(c, req.Shift)
	if !valid {
		return
	}

	result, err := services.EvaluateCoverage(c.Request.Context(), h.store, h.cfg, requestLogger(c, h.logger), date, shift)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, result)
}

// SimulateMove handles POST /api/v1/moves/simulate
func (h *Handler) SimulateMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, valid := bindDate(c, req.Date)
	if !valid {
		return
	}
	source, valid := bindShift(c, req.Source)
	if !valid {
		return
	}
	destination, valid := bindShift(c, req.Destination)
	if !valid {
		return
	}

	result, err := services.SimulateMove(c.Request.Context(), h.store, h.cfg, requestLogger(c, h.logger), coverage.MoveRequest{
		EmployeeID:  req.EmployeeID,
		Source:      source,
		Destination: destination,
		Date:        date,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, result)
}

// ScreenMoves handles POST /api/v1/moves/screen
func (h *Handler) ScreenMoves(c *gin.Context) {
	var req screenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, valid := bindDate(c, req.Date)
	if !valid {
		return
	}
	source, valid := bindShift(c, req.Source)
	if !valid {
		return
	}
	destination, valid := bindShift(c, req.Destination)
	if !valid {
		return
	}

	moves, err := services.ScreenMoves(c.Request.Context(), h.store, h.cfg, requestLogger(c, h.logger), source, destination, date)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, moves)
}

// Replacements handles POST /api/v1/replacements
func (h *Handler) Replacements(c *gin.Context) {
	var req replacementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, valid := bindDate(c, req.Date)
	if !valid {
		return
	}
	shift, valid := bindShift(c, req.Shift)
	if !valid {
		return
	}

	ranked, err := services.RankReplacements(c.Request.Context(), h.store, h.cfg, requestLogger(c, h.logger), date, shift,
		&coverage.ReplacementOptions{MaxResults: req.MaxResults, ExcludeRed: req.ExcludeRed})
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, ranked)
}

// Report handles POST /api/v1/report
func (h *Handler) Report(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	start, valid := bindDate(c, req.Start)
	if !valid {
		return
	}

	report, err := services.CoverageReport(c.Request.Context(), h.store, h.cfg, requestLogger(c, h.logger), start)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, report)
}
