// Package tools provides the leave-management tool catalog offered to the
// model. Each tool is a standalone operation over the HR directory or the
// policy retrieval backend; the registry handles lookup, validation, and
// execution.
package tools

import "context"

// Property describes a single parameter property for JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Enum        []any  `json:"enum,omitempty"`
}

// ToolSchema defines the JSON schema for tool arguments. This is what the
// model sees when deciding when and how to invoke the tool.
type ToolSchema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc is the signature for tool execution. The returned string is
// handed back to the model verbatim; validation failures are reported in the
// string, not the error, so the model can relay them conversationally.
type ExecuteFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool defines one catalog operation.
type Tool struct {
	// Name is the unique identifier for the tool.
	Name string

	// Description explains what the tool does, for model tool calling.
	Description string

	// Execute runs the tool with the given arguments.
	Execute ExecuteFunc

	// Schema defines the expected arguments.
	Schema ToolSchema
}

// Validate checks if the tool definition is valid.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// InputSchema renders the schema as the generic map shape the model
// boundary expects.
func (t *Tool) InputSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(t.Schema.Properties))
	for name, p := range t.Schema.Properties {
		prop := map[string]interface{}{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[name] = prop
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   t.Schema.Required,
	}
}

// ExecutionResult wraps the result of tool execution with metadata.
type ExecutionResult struct {
	// ToolName identifies which tool was executed.
	ToolName string

	// Result is the textual output handed back to the model.
	Result string

	// Error holds a validation or execution error, if any.
	Error error

	// DurationMs is how long execution took.
	DurationMs int64
}
