package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/astro-profiler-agent/internal/agent"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/astro"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/middleware"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/models"
	"github.com/BerylCAtieno/astro-profiler-agent/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgNeedInput = "Please send your birth details (name, dob, optional tob and place) or a question about your astrology report."
	msgNoReport  = "No report available. Please request the astrology report first."
)

type A2AHandler struct {
	service *profiler.Service
	logger  *zap.Logger
}

func NewA2AHandler(service *profiler.Service, logger *zap.Logger) *A2AHandler {
	return &A2AHandler{
		service: service,
		logger:  logger,
	}
}

// HandleAstro processes A2A messages. Birth details arrive as a data part and
// produce a report; text parts are answered against the latest report of the
// message's context.
func (h *A2AHandler) HandleAstro(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("Failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}
	h.logger.Debug("A2A request received", zap.ByteString("body", bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.JSONRPC == "" {
		h.logger.Debug("Not a JSON-RPC envelope, trying direct message", zap.Error(err))
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("Invalid JSON-RPC version", zap.String("version", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("Unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a bare MessageParams body without the JSON-RPC wrapper.
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil {
		h.logger.Warn("Failed to parse as direct message", zap.Error(err))
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	result := h.process(c.Request.Context(), "direct-message", h.contextID(c, msgParams.Message), msgParams.Message)
	h.sendSuccessResponse(c, "direct-message", result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.logger.Warn("Failed to marshal params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var msgParams MessageParams
	if err := json.Unmarshal(paramsJSON, &msgParams); err != nil {
		h.logger.Warn("Failed to unmarshal params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.process(c.Request.Context(), rpcReq.ID, h.contextID(c, msgParams.Message), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// contextID picks the session the message belongs to.
func (h *A2AHandler) contextID(c *gin.Context, msg A2AMessage) string {
	if id := strings.TrimSpace(msg.ContextID); id != "" {
		return id
	}
	return middleware.SessionID(c)
}

func (h *A2AHandler) process(ctx context.Context, taskID, contextID string, msg A2AMessage) TaskResult {
	if req, ok := h.extractBirthDetails(msg); ok {
		profile, err := h.service.GenerateReport(ctx, contextID, req)
		if err != nil {
			return h.createErrorTaskResult(taskID, contextID, reportErrorText(err))
		}
		h.logger.Info("Report generated over A2A", zap.String("context", contextID), zap.String("sun_sign", profile.SunSign))
		return h.createReportTaskResult(taskID, contextID, profile)
	}

	question := h.extractQuestion(msg)
	if question == "" {
		return h.createInputRequiredTaskResult(taskID, contextID, msgNeedInput)
	}

	answer, err := h.service.AnswerQuestion(ctx, contextID, question)
	if err != nil {
		if errors.Is(err, profiler.ErrNoReport) {
			return h.createErrorTaskResult(taskID, contextID, msgNoReport)
		}
		h.logger.Error("Failed to answer question", zap.Error(err))
		return h.createErrorTaskResult(taskID, contextID, fmt.Sprintf("Failed to answer question: %v", err))
	}
	return h.createAnswerTaskResult(taskID, contextID, answer)
}

func reportErrorText(err error) string {
	var dtErr *astro.DateTimeError
	switch {
	case errors.Is(err, profiler.ErrMissingFields):
		return "Missing required fields: name and dob (date of birth)."
	case errors.As(err, &dtErr):
		return dtErr.Error()
	default:
		return fmt.Sprintf("Failed to generate astrology report: %v", err)
	}
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.logger.Error("Error loading agent card", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}

	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

// extractBirthDetails returns the first data part that carries a dob or a name.
func (h *A2AHandler) extractBirthDetails(msg A2AMessage) (models.ReportRequest, bool) {
	for _, part := range msg.Parts {
		if part.Kind != "data" || part.Data == nil {
			continue
		}

		var dataBytes []byte
		switch v := part.Data.(type) {
		case json.RawMessage:
			dataBytes = v
		case []byte:
			dataBytes = v
		case string:
			dataBytes = []byte(v)
		default:
			var err error
			dataBytes, err = json.Marshal(v)
			if err != nil {
				h.logger.Warn("Failed to marshal data part", zap.Error(err))
				continue
			}
		}

		var req models.ReportRequest
		if err := json.Unmarshal(dataBytes, &req); err != nil {
			// Conversation history arrives as an array; it is not birth data.
			continue
		}
		named := strings.TrimSpace(req.Name) != "" && req.Name != models.DefaultName
		if strings.TrimSpace(req.DOB) != "" || named {
			return req, true
		}
	}
	return models.ReportRequest{}, false
}

func (h *A2AHandler) extractQuestion(msg A2AMessage) string {
	var texts []string
	for _, part := range msg.Parts {
		if part.Kind != "text" || part.Text == nil {
			continue
		}
		if textStr, ok := part.Text.(string); ok {
			cleanText := strings.TrimSpace(textStr)
			cleanText = strings.ReplaceAll(cleanText, "<p>", "")
			cleanText = strings.ReplaceAll(cleanText, "</p>", "")
			if cleanText = strings.TrimSpace(cleanText); cleanText != "" {
				texts = append(texts, cleanText)
			}
		}
	}
	return strings.Join(texts, " ")
}

func (h *A2AHandler) agentMessage(taskID, contextID, text string) *A2AMessage {
	return &A2AMessage{
		Kind:      "message",
		Role:      RoleAgent,
		MessageID: uuid.New().String(),
		TaskID:    taskID,
		ContextID: contextID,
		Parts:     []MessagePart{TextPart(text)},
	}
}

func (h *A2AHandler) createReportTaskResult(taskID, contextID string, profile *models.Profile) TaskResult {
	responseText := profiler.FormatReport(profile)

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message:   h.agentMessage(taskID, contextID, responseText),
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Astrology Report",
				Parts: []MessagePart{
					TextPart(responseText),
					DataPart(profile),
				},
			},
		},
	}
}

func (h *A2AHandler) createAnswerTaskResult(taskID, contextID, answer string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message:   h.agentMessage(taskID, contextID, answer),
		},
	}
}

func (h *A2AHandler) createInputRequiredTaskResult(taskID, contextID, prompt string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateInputRequired,
			Timestamp: Timestamp(),
			Message:   h.agentMessage(taskID, contextID, prompt),
		},
	}
}

func (h *A2AHandler) createErrorTaskResult(taskID, contextID, errorMsg string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message:   h.agentMessage(taskID, contextID, errorMsg),
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Debug("Sending JSON-RPC error", zap.Int("code", code), zap.String("message", message))

	response := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	c.JSON(http.StatusOK, response) // JSON-RPC errors are sent with 200 OK
}
