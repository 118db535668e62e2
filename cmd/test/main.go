package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL:   baseURL,
		sessionID: fmt.Sprintf("smoke-%d", time.Now().UnixNano()),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, report, question, a2a")
	question := flag.String("question", "", "Custom question to ask after the report (for question test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Astro Profiler Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests()
		return
	case "health":
		ok = client.testHealthCheck()
	case "agent-card":
		ok = client.testAgentCard()
	case "report":
		ok = client.testReport()
	case "question":
		q := *question
		if q == "" {
			q = "Will I get a promotion?"
		}
		ok = client.testReport() && client.testQuestion(q, "For a Leo")
	case "a2a":
		ok = client.testA2A()
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, report, question, a2a")
		os.Exit(1)
	}
	if !ok {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Question Before Report", tc.testQuestionWithoutReport},
		{"Report Generation", tc.testReport},
		{"Invalid Date", tc.testInvalidDate},
		{"Career Question", func() bool { return tc.testQuestion("Will I get a promotion?", "For a Leo") }},
		{"Priority Question", func() bool { return tc.testQuestion("will my job help my marriage", "For a Leo") }},
		{"Fallback Question", func() bool { return tc.testQuestion("tell me about my day", "Asha, Leo energy") }},
		{"A2A Message", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// postJSON sends body with this client's session id and decodes the reply.
func (tc *TestClient) postJSON(path string, body interface{}) (int, map[string]interface{}, error) {
	jsonData, _ := json.MarshalIndent(body, "", "  ")
	url := fmt.Sprintf("%s%s", tc.baseURL, path)
	fmt.Printf("POST %s\n", url)
	fmt.Printf("%sRequest:%s\n%s\n\n", colorYellow, colorReset, string(jsonData))

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", tc.sessionID)

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	printJSON(respBody)

	var decoded map[string]interface{}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	return resp.StatusCode, decoded, nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	url := fmt.Sprintf("%s/.well-known/agent.json", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testReport() bool {
	printTestHeader("Testing Report Generation")

	status, body, err := tc.postJSON("/api/astro", map[string]string{
		"name":  "Asha",
		"dob":   "1995-08-01",
		"tob":   "09:30",
		"place": "Mumbai, India",
	})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	expected := map[string]string{"sun_sign": "leo", "element": "Fire", "mode": "Fixed"}
	for field, want := range expected {
		if got, _ := body[field].(string); got != want {
			printError(fmt.Sprintf("Expected %s '%s', got '%s'", field, want, got))
			return false
		}
	}
	if body["age"] == nil {
		printError("Expected an age in the report")
		return false
	}

	printSuccess("Report generated")
	fmt.Printf("\n%sFull text:%s %v\n", colorGreen, colorReset, body["full_text"])
	return true
}

func (tc *TestClient) testInvalidDate() bool {
	printTestHeader("Testing Invalid Date Rejection")

	status, body, err := tc.postJSON("/api/astro", map[string]string{"name": "Asha", "dob": "not-a-date"})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}
	if msg, _ := body["error"].(string); !strings.HasPrefix(msg, "Invalid date/time format") {
		printError(fmt.Sprintf("Unexpected error message: %s", msg))
		return false
	}

	printSuccess("Invalid date rejected")
	return true
}

func (tc *TestClient) testQuestionWithoutReport() bool {
	printTestHeader("Testing Question Without Report")

	fresh := NewTestClient(tc.baseURL)
	status, _, err := fresh.postJSON("/api/question", map[string]string{"question": "Will I get a promotion?"})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}

	printSuccess("Question without report rejected")
	return true
}

func (tc *TestClient) testQuestion(question, wantPrefix string) bool {
	printTestHeader(fmt.Sprintf("Testing Question: %q", question))

	status, body, err := tc.postJSON("/api/question", map[string]string{"question": question})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	answer, _ := body["answer"].(string)
	if !strings.HasPrefix(answer, wantPrefix) {
		printError(fmt.Sprintf("Expected answer starting with '%s', got '%s'", wantPrefix, answer))
		return false
	}

	printSuccess("Question answered")
	return true
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Message")

	contextID := fmt.Sprintf("test-%d", time.Now().Unix())
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      contextID,
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind":      "message",
				"role":      "user",
				"contextId": contextID,
				"parts": []map[string]interface{}{
					{
						"kind": "data",
						"data": map[string]string{"name": "Asha", "dob": "1995-08-01", "tob": "09:30"},
					},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, response, err := tc.postJSON("/a2a/astro", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	result, ok := response["result"].(map[string]interface{})
	if !ok {
		printError("Invalid result format")
		return false
	}
	taskStatus, ok := result["status"].(map[string]interface{})
	if !ok {
		printError("Invalid status format")
		return false
	}
	if state, _ := taskStatus["state"].(string); state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("A2A report completed successfully")
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
