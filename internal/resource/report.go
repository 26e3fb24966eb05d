package resource

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/youto/internal/rowgateway"
)

// Report is a read-only query keyed by a user id, e.g. a user's open tasks.
type Report struct {
	// Path is the route, ending in "/:id".
	Path string
	// Query takes the user id as its only parameter.
	Query string
	// Transform, when set, rewrites every returned row.
	Transform func(rowgateway.Row) rowgateway.Row
	// NotFound is returned when the query yields no row.
	NotFound string
	// Failed is returned on storage failure.
	Failed string
}

// ReportHandler serves a Report over a Gateway.
type ReportHandler struct {
	rep    Report
	rows   rowgateway.Gateway
	logger *slog.Logger
}

// NewReport builds a ReportHandler.
func NewReport(rep Report, rows rowgateway.Gateway, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{rep: rep, rows: rows, logger: logger.With("report", rep.Path)}
}

// Run returns the report rows for userID, or ErrNotFound when there are none.
func (r *ReportHandler) Run(ctx context.Context, userID int64) ([]rowgateway.Row, error) {
	rows, err := r.rows.Query(ctx, r.rep.Query, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	if r.rep.Transform != nil {
		for i := range rows {
			rows[i] = r.rep.Transform(rows[i])
		}
	}
	return rows, nil
}

// Register mounts the report route on rt behind an optional gate.
func (r *ReportHandler) Register(rt gin.IRouter, gate gin.HandlerFunc) {
	rt.GET(r.rep.Path, chain(gate, r.handle())...)
}

func (r *ReportHandler) handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": r.rep.NotFound})
			return
		}

		rows, err := r.Run(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": r.rep.NotFound})
			return
		}
		if err != nil {
			logStorageError(c, r.logger, "report", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": r.rep.Failed})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
