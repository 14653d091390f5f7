// Package perception holds the model capability boundary: a client able to
// turn a system instruction, user turn, and tool catalog into either prose
// or a structured tool invocation, plus the follow-up call that folds a tool
// result back into natural language.
package perception

import "context"

// LLMClient defines the interface for LLM providers.
type LLMClient interface {
	// Complete sends a bare prompt and returns the completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithTools offers the tool catalog alongside the prompt and
	// returns text and zero or more requested tool calls.
	CompleteWithTools(ctx context.Context, systemPrompt, userPrompt string, tools []ToolDefinition) (*LLMToolResponse, error)

	// CompleteWithToolResults continues a function-calling exchange: the
	// prior contents plus the executed tool results produce final prose.
	CompleteWithToolResults(ctx context.Context, systemPrompt string, contents []GeminiContent, toolResults []ToolResult, tools []ToolDefinition) (*LLMToolResponse, error)
}

// NewUserContent wraps a user message as request content.
func NewUserContent(text string) GeminiContent {
	return GeminiContent{
		Role:  "user",
		Parts: []GeminiPart{{Text: text}},
	}
}

// NewModelContent reconstructs the model's tool-requesting turn so it can be
// replayed in the follow-up call. Text and function calls both carry over.
func NewModelContent(resp *LLMToolResponse) GeminiContent {
	content := GeminiContent{Role: "model"}
	if resp.Text != "" {
		content.Parts = append(content.Parts, GeminiPart{Text: resp.Text})
	}
	for _, call := range resp.ToolCalls {
		content.Parts = append(content.Parts, GeminiPart{
			FunctionCall: &GeminiFunctionCall{
				Name: call.Name,
				Args: call.Input,
			},
		})
	}
	return content
}
