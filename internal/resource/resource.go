package resource

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nao1215/youto/internal/rowgateway"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("not found")
	// ErrInvalidField is returned when a request field cannot be bound.
	ErrInvalidField = errors.New("invalid field")
	// ErrBodyTooLarge is returned when a request body exceeds the size cap.
	ErrBodyTooLarge = errors.New("request body too large")
)

// Messages holds the texts returned to clients for one entity.
type Messages struct {
	ListFailed   string
	GetFailed    string
	NotFound     string
	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	Deleted      string
	DeleteFailed string
}

// Definition describes one entity table.
type Definition struct {
	// Path is the collection route, e.g. "/articles".
	Path string
	// Table is the SQL table name.
	Table string
	// InsertColumns are bound, in order, by Create.
	InsertColumns []string
	// UpdateColumns are bound, in order, by Update.
	UpdateColumns []string
	// Defaults supplies values for insert columns absent from the request.
	Defaults map[string]any
	// Base64Columns hold binary data sent as base64 text.
	Base64Columns []string
	// CreatedStatus is the HTTP status of a successful create. Zero means 200.
	CreatedStatus int
	// Transform, when set, rewrites every row read by List and GetByID.
	Transform func(rowgateway.Row) rowgateway.Row
	// Messages are the client-facing texts.
	Messages Messages
}

func (d Definition) createdStatus() int {
	if d.CreatedStatus == 0 {
		return http.StatusOK
	}
	return d.CreatedStatus
}

// Handler serves one Definition over a Gateway. It holds no state between
// calls besides the prepared statement texts.
type Handler struct {
	def    Definition
	rows   rowgateway.Gateway
	logger *slog.Logger
	binary map[string]bool

	listSQL   string
	getSQL    string
	insertSQL string
	updateSQL string
	deleteSQL string
}

// New builds a Handler. Table and column names come from code, never from
// requests, so they are spliced into the statement text once here.
func New(def Definition, rows rowgateway.Gateway, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	binary := make(map[string]bool, len(def.Base64Columns))
	for _, c := range def.Base64Columns {
		binary[c] = true
	}

	sets := make([]string, len(def.UpdateColumns))
	for i, c := range def.UpdateColumns {
		sets[i] = c + " = ?"
	}

	return &Handler{
		def:     def,
		rows:    rows,
		logger:  logger.With("table", def.Table),
		binary:  binary,
		listSQL: fmt.Sprintf("SELECT * FROM %s", def.Table),
		getSQL:  fmt.Sprintf("SELECT * FROM %s WHERE id = ?", def.Table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			def.Table,
			strings.Join(def.InsertColumns, ", "),
			placeholders(len(def.InsertColumns)),
		),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", def.Table, strings.Join(sets, ", ")),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = ?", def.Table),
	}
}

// List returns every row of the table. There is no pagination.
func (h *Handler) List(ctx context.Context) ([]rowgateway.Row, error) {
	rows, err := h.rows.Query(ctx, h.listSQL)
	if err != nil {
		return nil, err
	}
	return h.transform(rows), nil
}

// GetByID returns the row with the given id, or ErrNotFound.
func (h *Handler) GetByID(ctx context.Context, id int64) (rowgateway.Row, error) {
	rows, err := h.rows.Query(ctx, h.getSQL, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return h.transform(rows[:1])[0], nil
}

// Create inserts a row from fields. Missing fields bind NULL unless the
// definition declares a default.
func (h *Handler) Create(ctx context.Context, fields map[string]any) error {
	params, err := h.bind(h.def.InsertColumns, fields, h.def.Defaults)
	if err != nil {
		return err
	}
	_, err = h.rows.Exec(ctx, h.insertSQL, params...)
	return err
}

// Update replaces the update columns of row id. It does not check that the
// row exists: a missing id affects nothing and still succeeds.
func (h *Handler) Update(ctx context.Context, id int64, fields map[string]any) error {
	params, err := h.bind(h.def.UpdateColumns, fields, nil)
	if err != nil {
		return err
	}
	_, err = h.rows.Exec(ctx, h.updateSQL, append(params, id)...)
	return err
}

// Delete removes row id. Like Update it succeeds whether or not the row
// existed.
func (h *Handler) Delete(ctx context.Context, id int64) error {
	_, err := h.rows.Exec(ctx, h.deleteSQL, id)
	return err
}

func (h *Handler) bind(columns []string, fields, defaults map[string]any) ([]any, error) {
	params := make([]any, len(columns))
	for i, c := range columns {
		v, ok := fields[c]
		if !ok || v == nil {
			v = defaults[c]
		}
		if h.binary[c] {
			s, isText := v.(string)
			if isText {
				b, err := base64.StdEncoding.DecodeString(s)
				if err != nil {
					return nil, fmt.Errorf("%w: %s is not base64", ErrInvalidField, c)
				}
				v = b
			}
		}
		params[i] = v
	}
	return params, nil
}

func (h *Handler) transform(rows []rowgateway.Row) []rowgateway.Row {
	if h.def.Transform == nil {
		return rows
	}
	for i := range rows {
		rows[i] = h.def.Transform(rows[i])
	}
	return rows
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
