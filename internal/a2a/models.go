package a2a

import (
	"time"
)

// JSON-RPC types
type JSONRPCRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Message types
type MessageParams struct {
	Message       A2AMessage           `json:"message"`
	Configuration MessageConfiguration `json:"configuration"`
}

type A2AMessage struct {
	Kind      string        `json:"kind"`
	Role      string        `json:"role"`
	Parts     []MessagePart `json:"parts"`
	MessageID string        `json:"messageId,omitempty"`
	TaskID    string        `json:"taskId,omitempty"`
	ContextID string        `json:"contextId,omitempty"`
}

type MessagePart struct {
	Kind string      `json:"kind"`
	Text interface{} `json:"text,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

type MessageConfiguration struct {
	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`
	HistoryLength       int      `json:"historyLength,omitempty"`
	Blocking            bool     `json:"blocking,omitempty"`
}

// Task types
type TaskResult struct {
	ID        string       `json:"id"`
	ContextID string       `json:"contextId,omitempty"`
	Status    TaskStatus   `json:"status"`
	Artifacts []Artifact   `json:"artifacts,omitempty"`
	History   []A2AMessage `json:"history,omitempty"`
	Kind      string       `json:"kind"`
}

type TaskStatus struct {
	State     string      `json:"state"`
	Timestamp string      `json:"timestamp"`
	Message   *A2AMessage `json:"message,omitempty"`
}

type Artifact struct {
	ArtifactID string        `json:"artifactId"`
	Name       string        `json:"name"`
	Parts      []MessagePart `json:"parts"`
}

// Helper functions
func TextPart(text string) MessagePart {
	return MessagePart{
		Kind: "text",
		Text: text,
	}
}

func DataPart(data interface{}) MessagePart {
	return MessagePart{
		Kind: "data",
		Data: data,
	}
}

func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Task states
const (
	StateInputRequired = "input-required"
	StateCompleted     = "completed"
	StateFailed        = "failed"
)

// Message roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// JSON-RPC error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)
