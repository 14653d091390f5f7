// Package chat drives one conversational turn end to end: prompt assembly,
// the model call with the tool catalog, field extraction and merge, tool
// execution, the follow-up model call, and reply sanitizing.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leavedesk/internal/articulation"
	"leavedesk/internal/logging"
	"leavedesk/internal/perception"
	"leavedesk/internal/session"
	"leavedesk/internal/tools"
)

// apologyReply is the user-facing default when a turn produces no usable text.
const apologyReply = "I apologize, but I encountered an issue processing your request. Please try again."

// historyWindow is how many prior turns are replayed into the prompt.
const historyWindow = 4

// TurnResult is the full outcome of one processed turn.
type TurnResult struct {
	Status       string         `json:"status"`
	Reply        string         `json:"response"`
	SessionID    string         `json:"session_id"`
	SessionInfo  session.Fields `json:"session_info"`
	MissingInfo  []string       `json:"missing_info"`
	InfoComplete bool           `json:"info_complete"`
	Error        string         `json:"error,omitempty"`
}

// Orchestrator owns the turn state machine.
type Orchestrator struct {
	llm      perception.LLMClient
	registry *tools.Registry
	store    *session.Store

	now func() time.Time
}

// NewOrchestrator wires the orchestrator to its collaborators.
func NewOrchestrator(llm perception.LLMClient, registry *tools.Registry, store *session.Store) *Orchestrator {
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		store:    store,
		now:      time.Now,
	}
}

// Store exposes the session store for admin surfaces.
func (o *Orchestrator) Store() *session.Store {
	return o.store
}

// ProcessTurn runs one turn and returns just the reply text. A turn-level
// error means the model boundary itself failed.
func (o *Orchestrator) ProcessTurn(ctx context.Context, sessionID, userText string) (string, error) {
	result := o.Invoke(ctx, sessionID, userText, session.Fields{})
	if result.Status != "success" {
		return result.Reply, fmt.Errorf("turn failed: %s", result.Error)
	}
	return result.Reply, nil
}

// Invoke runs one turn with optional explicit user info. Explicit fields are
// authoritative and overwrite sticky state before the model is consulted.
func (o *Orchestrator) Invoke(ctx context.Context, sessionID, userText string, explicit session.Fields) TurnResult {
	sess := o.store.GetOrCreate(sessionID)

	if !explicit.IsZero() {
		sess.Overwrite(explicit)
	}

	systemPrompt := buildSystemPrompt(promptInputs{
		now:          o.now(),
		userContext:  sess.Context(),
		history:      sess.RecentHistory(historyWindow),
		ready:        sess.Ready(),
		missingSlots: sess.MissingInfo(),
	})

	sess.AddTurn("user", userText)

	resp, err := o.llm.CompleteWithTools(ctx, systemPrompt, userText, o.registry.Definitions())
	if err != nil {
		logging.Get(logging.CategorySession).Error("turn failed for session %s: %v", sessionID, err)
		return o.result(sess, apologyReply, err)
	}

	// Extraction runs on the model's prose whether or not a tool was also
	// requested; inferred values only fill empty slots.
	if extracted, ok := articulation.ExtractInfo(resp.Text); ok {
		sess.MergeInferred(session.FieldsFromMap(extracted))
	}

	reply := resp.Text
	if len(resp.ToolCalls) > 0 {
		reply = o.runToolTurn(ctx, sess, systemPrompt, userText, resp)
	}

	reply = articulation.Sanitize(reply)
	if strings.TrimSpace(reply) == "" {
		reply = apologyReply
	}

	sess.AddTurn("assistant", reply)
	return o.result(sess, reply, nil)
}

// runToolTurn executes the requested tool and folds its result back through
// the model. Only the first requested call is honored; the single
// tool-result round trip assumes exactly zero or one call per turn.
func (o *Orchestrator) runToolTurn(ctx context.Context, sess *session.Session, systemPrompt, userText string, resp *perception.LLMToolResponse) string {
	call := resp.ToolCalls[0]
	if len(resp.ToolCalls) > 1 {
		logging.SessionDebug("session %s: dropping %d extra tool calls", sess.ID(), len(resp.ToolCalls)-1)
	}

	// Tool arguments become sticky context even when the model never echoed
	// an extraction block.
	sess.MergeInferred(session.FieldsFromMap(call.Input))

	var toolResult string
	if o.registry.Has(call.Name) {
		execution, err := o.registry.Execute(ctx, call.Name, call.Input)
		if err != nil {
			toolResult = fmt.Sprintf("Tool %s failed: %v", call.Name, err)
		} else {
			toolResult = execution.Result
		}
	} else {
		toolResult = fmt.Sprintf("Unknown tool: %s", call.Name)
	}

	contents := []perception.GeminiContent{
		perception.NewUserContent(userText),
		perception.NewModelContent(resp),
	}
	results := []perception.ToolResult{{
		ToolUseID: call.Name,
		Content:   toolResult,
	}}

	final, err := o.llm.CompleteWithToolResults(ctx, systemPrompt, contents, results, o.registry.Definitions())
	if err != nil || strings.TrimSpace(final.Text) == "" {
		// The tool did its work; surface its output rather than dead-ending.
		logging.SessionDebug("session %s: tool-result follow-up failed (%v), returning raw tool output", sess.ID(), err)
		return toolResult
	}
	return final.Text
}

func (o *Orchestrator) result(sess *session.Session, reply string, err error) TurnResult {
	r := TurnResult{
		Status:       "success",
		Reply:        reply,
		SessionID:    sess.ID(),
		SessionInfo:  sess.Info(),
		MissingInfo:  sess.MissingInfo(),
		InfoComplete: sess.InfoComplete(),
	}
	if err != nil {
		r.Status = "error"
		r.Error = err.Error()
	}
	return r
}
