package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status     int         `json:"status"`
	Timestamp  time.Time   `json:"timestamp"`
	RequestID  string      `json:"request_id"`
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Total      *int64      `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       any         `json:"meta,omitempty"`
	Error      any         `json:"error,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// Option decorates a success envelope.
type Option func(*APIResponse)

func WithTotal(n int64) Option { return func(r *APIResponse) { r.Total = &n } }

func WithPagination(p Pagination) Option { return func(r *APIResponse) { r.Pagination = &p } }

func WithMeta(meta any) Option { return func(r *APIResponse) { r.Meta = meta } }

// Success writes a success envelope. A nil data is omitted, an empty slice
// is rendered as [].
func Success(ctx *gin.Context, status int, data any, message string, opts ...Option) APIResponse {
	if status == 0 {
		status = http.StatusOK
	}
	resp := APIResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
	}
	for _, opt := range opts {
		opt(&resp)
	}
	ctx.JSON(status, resp)
	return resp
}

// Error writes an error envelope and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, err any) APIResponse {
	if status == 0 {
		status = http.StatusBadRequest
	}
	resp := APIResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
	ctx.AbortWithStatusJSON(status, resp)
	return resp
}
