// Package httpapi exposes the answer pipeline over HTTP. It is a thin
// translation layer: request decoding, the response envelope, and caller
// identity logging live here; all semantics live in the answer engine.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smartcampus/coursesearch/internal/answer"
	"github.com/smartcampus/coursesearch/internal/ctxutil"
	apperrors "github.com/smartcampus/coursesearch/internal/errors"
	"github.com/smartcampus/coursesearch/internal/logger"
)

// userIDHeader carries the opaque caller identity. It is logged for audit
// and never influences ranking.
const userIDHeader = "X-User-ID"

// Answerer runs the pipeline for one request.
type Answerer interface {
	Answer(ctx context.Context, req answer.Request) (answer.StructuredResponse, error)
}

// MetricsRecorder records HTTP-level failures.
type MetricsRecorder interface {
	RecordHTTPError(errorType string)
}

// Handler serves the course search API.
type Handler struct {
	engine  Answerer
	log     *logger.Logger
	metrics MetricsRecorder
}

// NewHandler creates the API handler. metrics may be nil.
func NewHandler(engine Answerer, log *logger.Logger, metrics MetricsRecorder) *Handler {
	return &Handler{
		engine:  engine,
		log:     log.WithModule("httpapi"),
		metrics: metrics,
	}
}

type searchRequest struct {
	Query     string `json:"query"`
	SubjectID *int64 `json:"subjectId"`
	CourseID  *int64 `json:"courseId"`
}

// envelope is the uniform response shape for every outcome.
type envelope struct {
	Success   bool                       `json:"success"`
	Data      *answer.StructuredResponse `json:"data,omitempty"`
	Error     string                     `json:"error,omitempty"`
	Timestamp time.Time                  `json:"timestamp"`
}

// Search handles POST /api/ai/search.
//
// Validation failures return success=false with HTTP 200: a question the
// system cannot answer is a normal outcome, not a transport error. Only
// an undecodable body gets a 400.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordError("bad_request")
		c.JSON(http.StatusBadRequest, envelope{
			Success:   false,
			Error:     "invalid request body",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	ctx := c.Request.Context()
	log := h.log
	if userID := c.GetHeader(userIDHeader); userID != "" {
		ctx = ctxutil.WithUserID(ctx, userID)
		log = log.WithField("user_id", userID)
	}

	resp, err := h.engine.Answer(ctx, answer.Request{
		Query:     req.Query,
		UserID:    c.GetHeader(userIDHeader),
		SubjectID: req.SubjectID,
		CourseID:  req.CourseID,
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			h.recordError("validation")
			log.WithError(err).Warn("search request rejected")
			c.JSON(http.StatusOK, envelope{
				Success:   false,
				Error:     err.Error(),
				Timestamp: time.Now().UTC(),
			})
			return
		}
		// The engine's contract makes this unreachable; guard anyway.
		h.recordError("internal")
		log.WithError(err).Error("search request failed")
		c.JSON(http.StatusInternalServerError, envelope{
			Success:   false,
			Error:     "internal error",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, envelope{
		Success:   true,
		Data:      &resp,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Handler) recordError(errorType string) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError(errorType)
	}
}
