package httpapi

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/shopfloor/internal/app"
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/gin-gonic/gin"
)

// requestLogger emits one line per request after it completes.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if code, ok := c.Get(errorCodeKey); ok {
			attrs = append(attrs, "code", code)
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(c.Request.Context(), "http_request", attrs...)
		case status >= http.StatusBadRequest:
			logger.WarnContext(c.Request.Context(), "http_request", attrs...)
		default:
			logger.InfoContext(c.Request.Context(), "http_request", attrs...)
		}
	}
}

const errorCodeKey = "error_code"

// statusFor maps domain error codes onto HTTP statuses.
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeDayClosed, domain.CodeInvalidState, domain.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorView. Non-domain errors hide their detail.
func (h *handler) fail(c *gin.Context, err error) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		h.logger.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.Set(errorCodeKey, "INTERNAL")
		c.AbortWithStatusJSON(http.StatusInternalServerError, app.ErrorView{Code: "INTERNAL", Message: "internal error"})
		return
	}
	c.Set(errorCodeKey, string(derr.Code))
	c.AbortWithStatusJSON(statusFor(derr.Code), app.ErrorView{Code: derr.Code, Message: derr.Message, Date: derr.Date})
}

// bind decodes the JSON body into dst, reporting malformed input as a
// validation failure.
func (h *handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.fail(c, domain.NewValidationError("malformed request body: %v", err))
		return false
	}
	return true
}

// bindOptional decodes a JSON body that may be absent. Chunked uploads carry
// no Content-Length, so emptiness is decided by reading the body.
func bindOptional(c *gin.Context, dst any) (bool, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return false, nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, domain.NewValidationError("malformed request body: %v", err)
	}
	return true, nil
}

// flag reads a boolean query parameter; absent means false.
func flag(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError("%s must be true or false", name)
	}
	return v, nil
}

// confirmed accepts confirm=true in the query or {"confirm":true} in the body.
func confirmed(c *gin.Context) (bool, error) {
	ok, err := flag(c, "confirm")
	if err != nil || ok {
		return ok, err
	}
	var req app.ConfirmRequest
	if _, err := bindOptional(c, &req); err != nil {
		return false, err
	}
	return req.Confirm, nil
}
