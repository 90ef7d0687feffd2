package config

// Beta represents a beta feature flag for the SDK.
type Beta string

const (
	// BetaContext1M enables 1 million token context window.
	BetaContext1M Beta = "context-1m-2025-08-07"
)

// SettingSource represents where settings should be loaded from.
type SettingSource string

const (
	// SettingSourceUser loads from user-level settings.
	SettingSourceUser SettingSource = "user"
	// SettingSourceProject loads from project-level settings.
	SettingSourceProject SettingSource = "project"
	// SettingSourceLocal loads from local-level settings.
	SettingSourceLocal SettingSource = "local"
)

// ToolsPreset represents a preset configuration for available tools.
type ToolsPreset struct {
	Type   string `json:"type"`   // "preset"
	Preset string `json:"preset"` // "claude_code"
}

// AgentDefinition defines a custom agent configuration.
type AgentDefinition struct {
	Description string   `json:"description"`
	Prompt      string   `json:"prompt"`
	Tools       []string `json:"tools,omitempty"`
	Model       *string  `json:"model,omitempty"` // "sonnet", "opus", "haiku", "inherit"
}

// SystemPromptPreset defines a system prompt preset configuration.
type SystemPromptPreset struct {
	Type   string  `json:"type"`   // "preset"
	Preset string  `json:"preset"` // "claude_code"
	Append *string `json:"append,omitempty"`
}

// PluginConfig configures a plugin to load.
type PluginConfig struct {
	Type string `json:"type"` // "local"
	Path string `json:"path"`
}

// ToolsConfig is an interface for configuring available tools.
// It represents either a list of tool names or a preset configuration.
type ToolsConfig interface {
	toolsConfig() // marker method
}

// ToolsList is a list of tool names to make available.
type ToolsList []string

func (ToolsList) toolsConfig() {}

func (*ToolsPreset) toolsConfig() {}

// Deduped returns a copy of t with duplicate tool names removed, preserving
// the first occurrence of each. Building the same --tools value from a
// ToolsList that accumulated duplicates (e.g. merged from multiple config
// sources) should still produce a stable, minimal CLI argument.
func (t ToolsList) Deduped() ToolsList {
	if len(t) < 2 {
		return t
	}

	seen := make(map[string]bool, len(t))
	deduped := make(ToolsList, 0, len(t))

	for _, name := range t {
		if seen[name] {
			continue
		}

		seen[name] = true
		deduped = append(deduped, name)
	}

	return deduped
}
