package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/youto/internal/rowgateway"
	"github.com/nao1215/youto/pkg/middleware"
)

const (
	// invalidBodyMessage is returned for request bodies that are not a JSON object.
	invalidBodyMessage = "Corps de requête JSON invalide."
	// bodyTooLargeMessage is returned for request bodies over the size cap.
	bodyTooLargeMessage = "Corps de requête trop volumineux."
)

// Gates are optional middlewares placed in front of the read and write
// routes of a resource. A nil gate leaves the route open.
type Gates struct {
	List  gin.HandlerFunc
	Get   gin.HandlerFunc
	Write gin.HandlerFunc
}

// Register mounts the five CRUD routes of the handler on r.
func (h *Handler) Register(r gin.IRouter, gates Gates) {
	item := h.def.Path + "/:id"

	r.GET(h.def.Path, chain(gates.List, h.handleList())...)
	r.GET(item, chain(gates.Get, h.handleGetByID())...)
	r.POST(h.def.Path, chain(gates.Write, h.handleCreate())...)
	r.PUT(item, chain(gates.Write, h.handleUpdate())...)
	r.DELETE(item, chain(gates.Write, h.handleDelete())...)
}

func chain(gate, handler gin.HandlerFunc) []gin.HandlerFunc {
	if gate == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{gate, handler}
}

// handleList returns the whole table.
func (h *Handler) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.List(c.Request.Context())
		if err != nil {
			h.storageError(c, "list", err, h.def.Messages.ListFailed)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// handleGetByID returns one row or 404.
func (h *Handler) handleGetByID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseID(c)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": h.def.Messages.NotFound})
			return
		}

		row, err := h.GetByID(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": h.def.Messages.NotFound})
			return
		}
		if err != nil {
			h.storageError(c, "get", err, h.def.Messages.GetFailed)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// handleCreate inserts a row and acknowledges without echoing it.
func (h *Handler) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, err := DecodeFields(c)
		if err != nil {
			AbortBodyError(c, err)
			return
		}

		if err := h.Create(c.Request.Context(), fields); err != nil {
			if errors.Is(err, ErrInvalidField) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			h.storageError(c, "create", err, h.def.Messages.CreateFailed)
			return
		}
		c.JSON(h.def.createdStatus(), gin.H{"message": h.def.Messages.Created})
	}
}

// handleUpdate replaces a row. A missing id is not an error.
func (h *Handler) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, err := DecodeFields(c)
		if err != nil {
			AbortBodyError(c, err)
			return
		}

		id, ok := ParseID(c)
		if !ok {
			// no row can carry a non-numeric id
			c.JSON(http.StatusOK, gin.H{"message": h.def.Messages.Updated})
			return
		}

		if err := h.Update(c.Request.Context(), id, fields); err != nil {
			if errors.Is(err, ErrInvalidField) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			h.storageError(c, "update", err, h.def.Messages.UpdateFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": h.def.Messages.Updated})
	}
}

// handleDelete removes a row. A missing id is not an error.
func (h *Handler) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"message": h.def.Messages.Deleted})
			return
		}

		if err := h.Delete(c.Request.Context(), id); err != nil {
			h.storageError(c, "delete", err, h.def.Messages.DeleteFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": h.def.Messages.Deleted})
	}
}

func (h *Handler) storageError(c *gin.Context, op string, err error, msg string) {
	logStorageError(c, h.logger, op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// AbortBodyError answers a DecodeFields error: 413 when the body went past
// the size cap, 400 otherwise.
func AbortBodyError(c *gin.Context, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": bodyTooLargeMessage})
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": invalidBodyMessage})
}

// ParseID reads the ":id" path parameter as an integer.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// DecodeFields reads the request body as a JSON object. An empty body is an
// empty object. Whole numbers become int64, other numbers float64, nested
// objects and arrays are kept as their JSON text.
func DecodeFields(c *gin.Context) (map[string]any, error) {
	fields := map[string]any{}
	if c.Request.Body == nil {
		return fields, nil
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return nil, err
	}

	for k, v := range fields {
		fields[k] = scalar(v)
	}
	return fields, nil
}

func scalar(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any, []any:
		b, _ := json.Marshal(t)
		return string(b)
	default:
		return v
	}
}

func logStorageError(c *gin.Context, logger *slog.Logger, op string, err error) {
	args := []any{"op", op, "path", c.Request.URL.Path, "error", err}
	var f *rowgateway.StorageFailure
	if errors.As(err, &f) && f.Code() != "" {
		args = append(args, "sqlstate", f.Code())
	}
	if id := middleware.GetRequestID(c); id != "" {
		args = append(args, "request_id", id)
	}
	logger.Error("storage failure", args...)
}
