package claudesdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUserMessage_Creation tests user message creation.
func TestUserMessage_Creation(t *testing.T) {
	msg := &UserMessage{
		Type:    "user",
		Content: NewUserMessageContent("Hello, Claude!"),
	}

	require.Equal(t, "user", msg.Type)
	require.Equal(t, "user", msg.MessageType())
	require.True(t, msg.Content.IsString())
	require.Equal(t, "Hello, Claude!", msg.Content.String())

	blocks := msg.Content.Blocks()
	require.Len(t, blocks, 1)

	textBlock, ok := blocks[0].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "text", textBlock.Type)
	require.Equal(t, "Hello, Claude!", textBlock.Text)
}

// TestUserMessage_CreationWithBlocks tests user message creation with content blocks.
func TestUserMessage_CreationWithBlocks(t *testing.T) {
	msg := &UserMessage{
		Type: "user",
		Content: NewUserMessageContentBlocks([]ContentBlock{
			&TextBlock{Type: "text", Text: "Hello, Claude!"},
		}),
	}

	require.Equal(t, "user", msg.Type)
	require.Equal(t, "user", msg.MessageType())
	require.False(t, msg.Content.IsString())

	blocks := msg.Content.Blocks()
	require.Len(t, blocks, 1)

	textBlock, ok := blocks[0].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "text", textBlock.Type)
	require.Equal(t, "Hello, Claude!", textBlock.Text)
}

// TestAssistantMessage_WithTextContent tests assistant message with text content.
func TestAssistantMessage_WithTextContent(t *testing.T) {
	msg := &AssistantMessage{
		Type:  "assistant",
		Model: "claude-3-5-sonnet-20241022",
		Content: []ContentBlock{
			&TextBlock{Type: "text", Text: "Hello! How can I help you?"},
		},
	}

	require.Equal(t, "assistant", msg.Type)
	require.Equal(t, "assistant", msg.MessageType())
	require.Equal(t, "claude-3-5-sonnet-20241022", msg.Model)
	require.Len(t, msg.Content, 1)

	textBlock, ok := msg.Content[0].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "Hello! How can I help you?", textBlock.Text)
}

// TestAssistantMessage_WithThinkingContent tests assistant message with thinking content.
func TestAssistantMessage_WithThinkingContent(t *testing.T) {
	msg := &AssistantMessage{
		Type:  "assistant",
		Model: "claude-opus-4-5-20251101",
		Content: []ContentBlock{
			&ThinkingBlock{
				Type:      "thinking",
				Thinking:  "Let me think about this problem...",
				Signature: "sig_abc123",
			},
			&TextBlock{Type: "text", Text: "The answer is 42."},
		},
	}

	require.Equal(t, "assistant", msg.MessageType())
	require.Len(t, msg.Content, 2)

	thinkingBlock, ok := msg.Content[0].(*ThinkingBlock)
	require.True(t, ok)
	require.Equal(t, "thinking", thinkingBlock.Type)
	require.Equal(t, "thinking", thinkingBlock.BlockType())
	require.Equal(t, "Let me think about this problem...", thinkingBlock.Thinking)
	require.Equal(t, "sig_abc123", thinkingBlock.Signature)

	textBlock, ok := msg.Content[1].(*TextBlock)
	require.True(t, ok)
	require.Equal(t, "The answer is 42.", textBlock.Text)
}

// TestToolUseBlock_Creation tests tool use block creation.
func TestToolUseBlock_Creation(t *testing.T) {
	block := &ToolUseBlock{
		Type: "tool_use",
		ID:   "tool_abc123",
		Name: "Bash",
		Input: map[string]any{
			"command":     "ls -la",
			"description": "List files",
		},
	}

	require.Equal(t, "tool_use", block.Type)
	require.Equal(t, "tool_use", block.BlockType())
	require.Equal(t, "tool_abc123", block.ID)
	require.Equal(t, "Bash", block.Name)
	require.Equal(t, "ls -la", block.Input["command"])
	require.Equal(t, "List files", block.Input["description"])
}

// TestToolResultBlock_Creation tests tool result block creation.
func TestToolResultBlock_Creation(t *testing.T) {
	block := &ToolResultBlock{
		Type:      "tool_result",
		ToolUseID: "tool_abc123",
		IsError:   false,
		Content: []ContentBlock{
			&TextBlock{Type: "text", Text: "file1.txt\nfile2.txt"},
		},
	}

	require.Equal(t, "tool_result", block.Type)
	require.Equal(t, "tool_result", block.BlockType())
	require.Equal(t, "tool_abc123", block.ToolUseID)
	require.False(t, block.IsError)
	require.Len(t, block.Content, 1)
}

// TestResultMessage_Creation tests result message creation.
func TestResultMessage_Creation(t *testing.T) {
	cost := 0.05
	msg := &ResultMessage{
		Type:         "result",
		Subtype:      "success",
		DurationMs:   1234,
		IsError:      false,
		NumTurns:     5,
		SessionID:    "session_abc123",
		TotalCostUSD: &cost,
		Usage: &Usage{
			InputTokens:  1000,
			OutputTokens: 500,
		},
	}

	require.Equal(t, "result", msg.Type)
	require.Equal(t, "result", msg.MessageType())
	require.Equal(t, "success", msg.Subtype)
	require.Equal(t, 1234, msg.DurationMs)
	require.False(t, msg.IsError)
	require.Equal(t, 5, msg.NumTurns)
	require.Equal(t, "session_abc123", msg.SessionID)
	require.NotNil(t, msg.TotalCostUSD)
	require.InDelta(t, 0.05, *msg.TotalCostUSD, 0.001)
	require.NotNil(t, msg.Usage)
	require.Equal(t, 1000, msg.Usage.InputTokens)
	require.Equal(t, 500, msg.Usage.OutputTokens)
}

// TestClaudeAgentOptions_DefaultValues tests default option values.
func TestClaudeAgentOptions_DefaultValues(t *testing.T) {
	options := &ClaudeAgentOptions{}

	require.Empty(t, options.SystemPrompt)
	require.Empty(t, options.Model)
	require.Empty(t, options.PermissionMode)
	require.Zero(t, options.MaxTurns)
	require.Empty(t, options.Cwd)
	require.Empty(t, options.CliPath)
	require.Nil(t, options.Env)
	require.Nil(t, options.Hooks)
}

// TestClaudeAgentOptions_WithTools tests options with tools.
func TestClaudeAgentOptions_WithTools(t *testing.T) {
	options := &ClaudeAgentOptions{
		AllowedTools:    []string{"Bash", "Read"},
		DisallowedTools: []string{"Write"},
	}

	require.Len(t, options.AllowedTools, 2)
	require.Contains(t, options.AllowedTools, "Bash")
	require.Contains(t, options.AllowedTools, "Read")
	require.Len(t, options.DisallowedTools, 1)
	require.Contains(t, options.DisallowedTools, "Write")
}

// TestClaudeAgentOptions_WithPermissionMode tests options with permission mode.
func TestClaudeAgentOptions_WithPermissionMode(t *testing.T) {
	options := &ClaudeAgentOptions{
		PermissionMode: string(PermissionModeAcceptEdits),
	}

	require.Equal(t, string(PermissionModeAcceptEdits), options.PermissionMode)
}

// TestClaudeAgentOptions_WithSystemPromptString tests options with system prompt string.
func TestClaudeAgentOptions_WithSystemPromptString(t *testing.T) {
	options := &ClaudeAgentOptions{
		SystemPrompt: "You are a helpful coding assistant.",
	}

	require.Equal(t, "You are a helpful coding assistant.", options.SystemPrompt)
	require.Nil(t, options.SystemPromptPreset)
}

// TestClaudeAgentOptions_WithSystemPromptPreset tests options with system prompt preset.
func TestClaudeAgentOptions_WithSystemPromptPreset(t *testing.T) {
	options := &ClaudeAgentOptions{
		SystemPromptPreset: &SystemPromptPreset{
			Type:   "preset",
			Preset: "claude_code",
		},
	}

	require.NotNil(t, options.SystemPromptPreset)
	require.Equal(t, "preset", options.SystemPromptPreset.Type)
	require.Equal(t, "claude_code", options.SystemPromptPreset.Preset)
}

// TestClaudeAgentOptions_WithSystemPromptPresetAndAppend tests options with system prompt preset and append.
func TestClaudeAgentOptions_WithSystemPromptPresetAndAppend(t *testing.T) {
	appendText := "\n\nAdditional instructions here."
	options := &ClaudeAgentOptions{
		SystemPromptPreset: &SystemPromptPreset{
			Type:   "preset",
			Preset: "claude_code",
			Append: &appendText,
		},
	}

	require.NotNil(t, options.SystemPromptPreset)
	require.Equal(t, "preset", options.SystemPromptPreset.Type)
	require.Equal(t, "claude_code", options.SystemPromptPreset.Preset)
	require.NotNil(t, options.SystemPromptPreset.Append)
	require.Equal(t, "\n\nAdditional instructions here.", *options.SystemPromptPreset.Append)
}

// TestClaudeAgentOptions_WithSessionContinuation tests options with session continuation.
func TestClaudeAgentOptions_WithSessionContinuation(t *testing.T) {
	options := &ClaudeAgentOptions{
		Resume:               "session_previous_123",
		ContinueConversation: true,
		ForkSession:          true,
	}

	require.Equal(t, "session_previous_123", options.Resume)
	require.True(t, options.ContinueConversation)
	require.True(t, options.ForkSession)
}

// TestClaudeAgentOptions_WithModel tests options with model specification.
func TestClaudeAgentOptions_WithModel(t *testing.T) {
	options := &ClaudeAgentOptions{
		Model:         "claude-opus-4-5-20251101",
		MaxTurns:      100,
		Thinking:      ThinkingConfigEnabled{BudgetTokens: 8000},
		FallbackModel: "claude-3-5-sonnet-20241022",
	}

	require.Equal(t, "claude-opus-4-5-20251101", options.Model)
	require.Equal(t, 100, options.MaxTurns)
	require.NotNil(t, options.Thinking)
	require.Equal(t, ThinkingConfigEnabled{BudgetTokens: 8000}, options.Thinking)
	require.Equal(t, "claude-3-5-sonnet-20241022", options.FallbackModel)
}

// TestClaudeAgentOptions_WithAgents tests configuring named agent definitions
// ahead of Client.SetAgent/GetAgent.
func TestClaudeAgentOptions_WithAgents(t *testing.T) {
	options := &ClaudeAgentOptions{
		Agents: map[string]*AgentDefinition{
			"reviewer": {Description: "Reviews diffs", Prompt: "You review code."},
			"writer":   {Description: "Writes docs", Prompt: "You write documentation."},
		},
	}

	require.Len(t, options.Agents, 2)
	require.Equal(t, "Reviews diffs", options.Agents["reviewer"].Description)
	require.Equal(t, "You write documentation.", options.Agents["writer"].Prompt)
}

// TestClaudeAgentOptions_WithPreSubscribeBufferSize tests the fan-out hub's
// pre-subscribe backlog cap field.
func TestClaudeAgentOptions_WithPreSubscribeBufferSize(t *testing.T) {
	options := &ClaudeAgentOptions{}
	require.Zero(t, options.PreSubscribeBufferSize, "zero value means \"use the default\"")

	options.PreSubscribeBufferSize = 500
	require.Equal(t, 500, options.PreSubscribeBufferSize)
}

// TestIsValidPermissionMode tests the re-exported mode validator.
func TestIsValidPermissionMode(t *testing.T) {
	require.True(t, IsValidPermissionMode(PermissionModeAcceptEdits))
	require.False(t, IsValidPermissionMode(PermissionMode("not-a-real-mode")))
}

// TestParsePermissionUpdate tests decoding a raw CLI permission-update payload.
func TestParsePermissionUpdate(t *testing.T) {
	raw := map[string]any{
		"type":        "addRules",
		"rules":       []any{map[string]any{"toolName": "Bash"}},
		"behavior":    "allow",
		"directories": []any{"/tmp/work"},
	}

	update := ParsePermissionUpdate(raw)
	require.NotNil(t, update)
	require.Equal(t, PermissionUpdateTypeAddRules, update.Type)
	require.NotNil(t, update.Behavior)
	require.Equal(t, PermissionBehaviorAllow, *update.Behavior)
	require.Equal(t, []string{"/tmp/work"}, update.Directories)
}

// TestNormalizePermissionMode tests CLI/legacy mode spelling normalization.
func TestNormalizePermissionMode(t *testing.T) {
	require.Equal(t, string(PermissionModeBypassPermissions), NormalizePermissionMode("bypassPermissions"))
}

// TestMCPTransportKind tests reporting whether a server config runs
// in-process or over an external transport.
func TestMCPTransportKind(t *testing.T) {
	stdio := &MCPStdioServerConfig{Type: MCPServerTypeStdio, Command: "echo"}
	require.Equal(t, "external", MCPTransportKind(stdio))
}

// TestNewHookContext tests wrapping a parent context for hook callbacks.
func TestNewHookContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	hc := NewHookContext(parent)
	require.NotNil(t, hc)

	cancel()
	select {
	case <-hc.Done():
	default:
		t.Fatal("expected hook context to observe parent cancellation")
	}
}
