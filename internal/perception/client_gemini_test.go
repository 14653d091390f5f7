package perception

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(baseURL string) *GeminiClient {
	cfg := DefaultGeminiConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.Timeout = 10 * time.Second
	return NewGeminiClientWithConfig(cfg)
}

func geminiReply(parts ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{{
			"content":      map[string]interface{}{"role": "model", "parts": parts},
			"finishReason": "STOP",
		}},
	}
}

func textPart(text string) map[string]interface{} {
	return map[string]interface{}{"text": text}
}

func callPart(name string, args map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"functionCall": map[string]interface{}{"name": name, "args": args},
	}
}

func TestCompleteWithToolsParsesTextAndCalls(t *testing.T) {
	var captured GeminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(geminiReply(
			textPart("Checking that for you. "),
			callPart("calculate_leave_balance", map[string]interface{}{
				"employee_id": "EMP001",
				"leave_type":  "casual_leave",
			}),
		))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	tools := []ToolDefinition{{
		Name:        "calculate_leave_balance",
		Description: "check balance",
		InputSchema: map[string]interface{}{"type": "object"},
	}}

	resp, err := client.CompleteWithTools(context.Background(), "system prompt", "check my balance", tools)
	if err != nil {
		t.Fatalf("CompleteWithTools() error: %v", err)
	}

	if resp.Text != "Checking that for you." {
		t.Errorf("Text = %q", resp.Text)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("len(ToolCalls) = %d", len(resp.ToolCalls))
	}
	call := resp.ToolCalls[0]
	if call.Name != "calculate_leave_balance" || call.ID != "call_0" {
		t.Errorf("call = %+v", call)
	}
	if call.Input["employee_id"] != "EMP001" {
		t.Errorf("args = %v", call.Input)
	}

	// Request carried the system instruction and tool declarations.
	if captured.SystemInstruction == nil || captured.SystemInstruction.Parts[0].Text != "system prompt" {
		t.Error("system instruction missing from request")
	}
	if len(captured.Tools) != 1 || len(captured.Tools[0].FunctionDeclarations) != 1 {
		t.Error("tool declarations missing from request")
	}
}

func TestCompleteWithToolResultsAppendsFunctionTurn(t *testing.T) {
	var captured GeminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(geminiReply(textPart("You have 9 days left.")))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	contents := []GeminiContent{
		NewUserContent("check my balance"),
		NewModelContent(&LLMToolResponse{
			ToolCalls: []ToolCall{{ID: "call_0", Name: "calculate_leave_balance", Input: map[string]interface{}{"employee_id": "EMP001"}}},
		}),
	}
	results := []ToolResult{{ToolUseID: "calculate_leave_balance", Content: "9 days remaining"}}

	resp, err := client.CompleteWithToolResults(context.Background(), "sys", contents, results, nil)
	if err != nil {
		t.Fatalf("CompleteWithToolResults() error: %v", err)
	}
	if resp.Text != "You have 9 days left." {
		t.Errorf("Text = %q", resp.Text)
	}

	if len(captured.Contents) != 3 {
		t.Fatalf("len(Contents) = %d, want 3", len(captured.Contents))
	}
	last := captured.Contents[2]
	if last.Role != "function" {
		t.Errorf("last role = %q", last.Role)
	}
	if len(last.Parts) != 1 || last.Parts[0].FunctionResponse == nil {
		t.Fatal("function response part missing")
	}
	if last.Parts[0].FunctionResponse.Name != "calculate_leave_balance" {
		t.Errorf("function response name = %q", last.Parts[0].FunctionResponse.Name)
	}
}

func TestGenerateRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(geminiReply(textPart("ok")))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	resp, err := client.CompleteWithTools(context.Background(), "", "hi", nil)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if resp.Text != "ok" {
		t.Errorf("Text = %q", resp.Text)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "bad request"}}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	if _, err := client.CompleteWithTools(context.Background(), "", "hi", nil); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := NewGeminiClientWithConfig(DefaultGeminiConfig(""))
	if _, err := client.Complete(context.Background(), "hi"); err == nil {
		t.Fatal("expected error without API key")
	}
}
