package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/camel-tools-api/camel-api/internal/analysis/domain"
	"github.com/gin-gonic/gin"
)

// StatusClientClosedRequest is reported when the caller goes away before the
// analysis finishes.
const StatusClientClosedRequest = 499

const (
	// bytesPerRune bounds one JSON-escaped rune: a surrogate pair is \uXXXX\uXXXX.
	bytesPerRune = 12
	// envelopeBytes covers the flag, keys and punctuation around a text.
	envelopeBytes = 4096
	// defaultBodyLimit applies when the text length is unlimited.
	defaultBodyLimit = 1 << 20
)

// bodyLimit is the largest request body that can carry items texts within
// the service's rune limit.
func (h *Handler) bodyLimit(items int) int64 {
	maxRunes := h.analysisService.Options().MaxTextRunes
	if maxRunes <= 0 {
		return defaultBodyLimit * int64(items)
	}
	return (int64(maxRunes)*bytesPerRune + envelopeBytes) * int64(items)
}

// bindJSON decodes a body capped at limit bytes. An oversized body is
// reported as domain.ErrTextTooLong.
func bindJSON(c *gin.Context, limit int64, obj any) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrTextTooLong, tooLarge.Limit)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}

// Analyze runs one operation over the posted text
func (h *Handler) Analyze(c *gin.Context) {
	var body analyzeBody
	if err := bindJSON(c, h.bodyLimit(1), &body); err != nil {
		WriteError(c, err)
		return
	}

	resp, err := h.analysisService.Analyze(c.Request.Context(), body.toRequest())
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AnalyzeBatch runs several (text, flag) pairs and reports one result each
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var body batchBody
	if err := bindJSON(c, h.bodyLimit(h.analysisService.Options().BatchMaxItems), &body); err != nil {
		WriteError(c, err)
		return
	}

	reqs := make([]domain.AnalysisRequest, len(body.Requests))
	for i, item := range body.Requests {
		reqs[i] = item.toRequest()
	}

	results, err := h.analysisService.AnalyzeBatch(c.Request.Context(), reqs)
	if err != nil {
		WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, batchResponse{Results: results})
}

// ListOperations returns the supported flags
func (h *Handler) ListOperations(c *gin.Context) {
	c.JSON(http.StatusOK, operationsResponse{Operations: h.analysisService.Operations()})
}

// WriteError aborts the request with the status and payload matching err.
func WriteError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(StatusFor(err), errorResponse{Error: domain.NewErrorBody(err)})
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindTextTooLong:
		return http.StatusRequestEntityTooLarge
	case domain.KindNoAnalysis:
		return http.StatusUnprocessableEntity
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindCanceled:
		return StatusClientClosedRequest
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
