// Package handler holds the storefront HTTP handlers.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/satyaprakrati/cozico/internal/domain/shared"
	"github.com/satyaprakrati/cozico/internal/infrastructure/logger"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/dto"
	"github.com/satyaprakrati/cozico/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler writes the response envelope. Embedded by every handler.
type BaseHandler struct{}

func sessionID(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.GetSessionID(c)
	if !ok {
		return uuid.Nil, shared.ErrInvalidInput.WithMessage("Session id is required")
	}
	return id, nil
}

func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

func (h *BaseHandler) List(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.List(data, total))
}

func (h *BaseHandler) Fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.Failure(code, message, dto.RequestID(middleware.GetRequestID(c))))
}

// HandleError answers with the status of a *shared.DomainError's code.
// Any other error is logged and hidden behind a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		h.Fail(c, dto.GetHTTPStatus(de.Code), de.Code, de.Message)
		return
	}

	logger.L(c.Request.Context()).Error("request failed", zap.Error(err))
	_ = c.Error(err)
	h.Fail(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON reports false after answering 400 or 413.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	return h.bound(c, c.ShouldBindJSON(req))
}

func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	return h.bound(c, c.ShouldBindQuery(req))
}

func (h *BaseHandler) bound(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	var (
		tooLarge  *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &tooLarge):
		h.Fail(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.EOF):
		h.Fail(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
	default:
		middleware.HandleValidationError(c, err)
	}
	return false
}
