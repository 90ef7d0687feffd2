// Package streamevent classifies and accumulates the raw Anthropic API
// events carried inside message.StreamEvent.Event, turning the
// message_start/content_block_*/message_delta/message_stop sequence into
// concatenated per-block text and a terminal/non-terminal verdict.
package streamevent

import (
	"strings"

	"github.com/nshkrdotcom/claude-agent-sdk-sub002/internal/message"
)

// Kind classifies a single raw event by its "type" field.
type Kind int

const (
	// KindUnknown covers event types this package does not specifically
	// track; callers may still inspect the raw map.
	KindUnknown Kind = iota
	// KindMessageStart marks the beginning of an assistant turn.
	KindMessageStart
	// KindMessageStop marks the end of an assistant turn.
	KindMessageStop
	// KindContentBlockStart marks the start of a content block (text, tool_use, thinking).
	KindContentBlockStart
	// KindContentBlockStop marks the end of a content block.
	KindContentBlockStop
	// KindTextDelta carries an incremental text fragment.
	KindTextDelta
	// KindInputJSONDelta carries an incremental tool-input JSON fragment.
	KindInputJSONDelta
	// KindThinkingDelta carries an incremental extended-thinking fragment.
	KindThinkingDelta
	// KindMessageDelta carries top-level fields that change mid-turn, such
	// as stop_reason and usage.
	KindMessageDelta
)

// Classify inspects event["type"] and returns the matching Kind.
func Classify(event map[string]any) Kind {
	eventType, _ := event["type"].(string)

	switch eventType {
	case "message_start":
		return KindMessageStart
	case "message_stop":
		return KindMessageStop
	case "content_block_start":
		return KindContentBlockStart
	case "content_block_stop":
		return KindContentBlockStop
	case "message_delta":
		return KindMessageDelta
	case "content_block_delta":
		return classifyDelta(event)
	default:
		return KindUnknown
	}
}

func classifyDelta(event map[string]any) Kind {
	delta, _ := event["delta"].(map[string]any)
	if delta == nil {
		return KindUnknown
	}

	switch delta["type"] {
	case "text_delta":
		return KindTextDelta
	case "input_json_delta":
		return KindInputJSONDelta
	case "thinking_delta":
		return KindThinkingDelta
	default:
		return KindUnknown
	}
}

// terminalStopReasons are the stop reasons that end a turn outright.
// "tool_use" is deliberately absent: it defers completion to a later
// message_stop.
var terminalStopReasons = map[string]bool{
	"end_turn":      true,
	"stop_sequence": true,
	"max_tokens":    true,
}

// IsTerminalStopReason reports whether stopReason ends the turn.
func IsTerminalStopReason(stopReason string) bool {
	return terminalStopReasons[stopReason]
}

// TurnUpdate is produced by every call to Accumulator.Feed.
type TurnUpdate struct {
	// UUID, SessionID, and ParentToolUseID are copied verbatim from the
	// StreamEvent that produced this update.
	UUID            string
	SessionID       string
	ParentToolUseID *string

	// BlockIndex is the content block touched by this update, or -1 if the
	// event was not block-scoped (message_start/message_delta/message_stop).
	BlockIndex int

	// Kind classifies the raw event that produced this update.
	Kind Kind

	// Text is the concatenated text accumulated so far for BlockIndex, when
	// the update is block-scoped text.
	Text string

	// Final is true when this update corresponds to a terminal message_stop.
	// FinalText then holds the snapshot of every block's accumulated text,
	// keyed by block index, taken immediately before the accumulator reset.
	Final     bool
	FinalText map[int]string

	// StopReason is set on KindMessageDelta and terminal KindMessageStop
	// updates.
	StopReason string
}

// Accumulator holds per-turn state for a single Control Client session. It
// is not safe for concurrent use: callers must only touch it from the
// Control Client's own read loop.
type Accumulator struct {
	text          map[int]*strings.Builder
	toolInputJSON map[int]*strings.Builder
	model         string
	usage         *message.Usage
	stopReason    string
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		text:          make(map[int]*strings.Builder),
		toolInputJSON: make(map[int]*strings.Builder),
	}
}

// Model returns the model name captured from the last message_start.
func (a *Accumulator) Model() string {
	return a.model
}

// Usage returns the usage captured from the last message_start/message_delta.
func (a *Accumulator) Usage() *message.Usage {
	return a.usage
}

// reset clears all per-turn state.
func (a *Accumulator) reset() {
	a.text = make(map[int]*strings.Builder)
	a.toolInputJSON = make(map[int]*strings.Builder)
	a.model = ""
	a.usage = nil
	a.stopReason = ""
}

// snapshotText copies the current per-block text into a plain map.
func (a *Accumulator) snapshotText() map[int]string {
	out := make(map[int]string, len(a.text))
	for idx, b := range a.text {
		out[idx] = b.String()
	}

	return out
}

// Feed applies one StreamEvent to the accumulator and returns the resulting
// TurnUpdate plus whether the turn is now terminal.
func (a *Accumulator) Feed(evt *message.StreamEvent) (*TurnUpdate, bool) {
	kind := Classify(evt.Event)

	update := &TurnUpdate{
		UUID:            evt.UUID,
		SessionID:       evt.SessionID,
		ParentToolUseID: evt.ParentToolUseID,
		BlockIndex:      -1,
		Kind:            kind,
	}

	switch kind {
	case KindMessageStart:
		a.feedMessageStart(evt.Event)

	case KindContentBlockStart, KindContentBlockStop:
		update.BlockIndex = blockIndex(evt.Event)

	case KindTextDelta:
		idx := blockIndex(evt.Event)
		update.BlockIndex = idx
		update.Text = a.appendText(idx, deltaString(evt.Event, "text"))

	case KindThinkingDelta:
		idx := blockIndex(evt.Event)
		update.BlockIndex = idx
		update.Text = a.appendText(idx, deltaString(evt.Event, "thinking"))

	case KindInputJSONDelta:
		idx := blockIndex(evt.Event)
		update.BlockIndex = idx
		a.appendToolInputJSON(idx, deltaString(evt.Event, "partial_json"))

	case KindMessageDelta:
		a.feedMessageDelta(evt.Event)
		update.StopReason = a.stopReason

	case KindMessageStop:
		update.StopReason = a.stopReason

		if IsTerminalStopReason(a.stopReason) {
			update.Final = true
			update.FinalText = a.snapshotText()
			a.reset()

			return update, true
		}

	case KindUnknown:
	}

	return update, false
}

func (a *Accumulator) feedMessageStart(event map[string]any) {
	msg, _ := event["message"].(map[string]any)
	if msg == nil {
		return
	}

	if model, ok := msg["model"].(string); ok {
		a.model = model
	}

	if usage, ok := msg["usage"].(map[string]any); ok {
		a.usage = parseUsage(usage)
	}
}

func (a *Accumulator) feedMessageDelta(event map[string]any) {
	delta, _ := event["delta"].(map[string]any)
	if stopReason, ok := delta["stop_reason"].(string); ok {
		a.stopReason = stopReason
	}

	if usage, ok := event["usage"].(map[string]any); ok {
		a.usage = parseUsage(usage)
	}
}

func (a *Accumulator) appendText(idx int, fragment string) string {
	builder, ok := a.text[idx]
	if !ok {
		builder = &strings.Builder{}
		a.text[idx] = builder
	}

	builder.WriteString(fragment)

	return builder.String()
}

func (a *Accumulator) appendToolInputJSON(idx int, fragment string) {
	builder, ok := a.toolInputJSON[idx]
	if !ok {
		builder = &strings.Builder{}
		a.toolInputJSON[idx] = builder
	}

	builder.WriteString(fragment)
}

// ToolInputJSON returns the concatenated raw JSON fragments accumulated so
// far for the tool_use block at idx.
func (a *Accumulator) ToolInputJSON(idx int) string {
	builder, ok := a.toolInputJSON[idx]
	if !ok {
		return ""
	}

	return builder.String()
}

func blockIndex(event map[string]any) int {
	switch v := event["index"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return -1
	}
}

func deltaString(event map[string]any, key string) string {
	delta, _ := event["delta"].(map[string]any)
	s, _ := delta[key].(string)

	return s
}

func parseUsage(raw map[string]any) *message.Usage {
	usage := &message.Usage{}

	if v, ok := raw["input_tokens"].(float64); ok {
		usage.InputTokens = int(v)
	}

	if v, ok := raw["output_tokens"].(float64); ok {
		usage.OutputTokens = int(v)
	}

	return usage
}
