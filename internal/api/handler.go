package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/middleware"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/profiler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgMissingFields = "Missing required fields: name and dob (date of birth)."
	MsgNoReport      = "No report available. Please request the astrology report first."
	MsgBadRequest    = "Request body must be JSON."
	MsgInternal      = "Something went wrong, please try again."
)

type Handler struct {
	service *profiler.Service
	logger  *zap.Logger
}

func NewHandler(service *profiler.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Metrics().GetSnapshot())
}

// CreateReport builds an astrology report and remembers it for the session.
func (h *Handler) CreateReport(c *gin.Context) {
	var req models.ReportRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Debug("Failed to decode report request", zap.Error(err))
		h.sendError(c, http.StatusBadRequest, MsgBadRequest)
		return
	}

	profile, err := h.service.GenerateReport(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		var dtErr *astro.DateTimeError
		switch {
		case errors.Is(err, profiler.ErrMissingFields):
			h.sendError(c, http.StatusBadRequest, MsgMissingFields)
		case errors.As(err, &dtErr):
			h.sendError(c, http.StatusBadRequest, dtErr.Error())
		default:
			h.logger.Error("Failed to generate report", zap.Error(err))
			_ = c.Error(err)
			h.sendError(c, http.StatusInternalServerError, MsgInternal)
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// AskQuestion answers a free-text question about the session's latest report.
func (h *Handler) AskQuestion(c *gin.Context) {
	var req models.QuestionRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Debug("Failed to decode question request", zap.Error(err))
		h.sendError(c, http.StatusBadRequest, MsgBadRequest)
		return
	}

	answer, err := h.service.AnswerQuestion(c.Request.Context(), middleware.SessionID(c), req.Question)
	if err != nil {
		if errors.Is(err, profiler.ErrNoReport) {
			h.sendError(c, http.StatusBadRequest, MsgNoReport)
			return
		}
		h.logger.Error("Failed to answer question", zap.Error(err))
		_ = c.Error(err)
		h.sendError(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, models.AnswerResponse{Answer: answer})
}

// bindJSON treats an empty body as an empty object.
func bindJSON(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *Handler) sendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
