// Package permission provides permission handling types for the Claude CLI.
package permission

import "context"

// Mode represents different permission handling modes.
type Mode string

const (
	// ModeDefault uses standard permission prompts.
	ModeDefault Mode = "default"
	// ModeAcceptEdits automatically accepts file edits.
	ModeAcceptEdits Mode = "acceptEdits"
	// ModePlan enables plan mode for implementation planning.
	ModePlan Mode = "plan"
	// ModeBypassPermissions bypasses all permission checks.
	ModeBypassPermissions Mode = "bypassPermissions"
)

// validModes backs IsValidMode; a map lookup keeps the set of recognized
// modes in one place instead of duplicating a switch in every caller that
// wants to reject a bad value before round-tripping it to the agent.
var validModes = map[Mode]bool{
	ModeDefault:           true,
	ModeAcceptEdits:       true,
	ModePlan:              true,
	ModeBypassPermissions: true,
}

// IsValidMode reports whether mode is one of the recognized permission
// modes. Callers that accept a mode from outside the process (a
// SetPermissionMode argument, a config value) should check this before
// sending it on, since the agent treats an unknown mode as a protocol
// error rather than rejecting it locally.
func IsValidMode(mode Mode) bool {
	return validModes[mode]
}

// UpdateType represents the type of permission update.
type UpdateType string

const (
	// UpdateTypeAddRules adds new permission rules.
	UpdateTypeAddRules UpdateType = "addRules"
	// UpdateTypeReplaceRules replaces existing permission rules.
	UpdateTypeReplaceRules UpdateType = "replaceRules"
	// UpdateTypeRemoveRules removes permission rules.
	UpdateTypeRemoveRules UpdateType = "removeRules"
	// UpdateTypeSetMode sets the permission mode.
	UpdateTypeSetMode UpdateType = "setMode"
	// UpdateTypeAddDirectories adds accessible directories.
	UpdateTypeAddDirectories UpdateType = "addDirectories"
	// UpdateTypeRemoveDirectories removes accessible directories.
	UpdateTypeRemoveDirectories UpdateType = "removeDirectories"
)

// UpdateDestination represents where permission updates are stored.
type UpdateDestination string

const (
	// UpdateDestUserSettings stores in user-level settings.
	UpdateDestUserSettings UpdateDestination = "userSettings"
	// UpdateDestProjectSettings stores in project-level settings.
	UpdateDestProjectSettings UpdateDestination = "projectSettings"
	// UpdateDestLocalSettings stores in local-level settings.
	UpdateDestLocalSettings UpdateDestination = "localSettings"
	// UpdateDestSession stores in the current session only.
	UpdateDestSession UpdateDestination = "session"
)

// Behavior represents the permission behavior for a rule.
type Behavior string

const (
	// BehaviorAllow automatically allows the operation.
	BehaviorAllow Behavior = "allow"
	// BehaviorDeny automatically denies the operation.
	BehaviorDeny Behavior = "deny"
	// BehaviorAsk prompts the user for permission.
	BehaviorAsk Behavior = "ask"
)

// RuleValue represents a permission rule.
type RuleValue struct {
	ToolName    string
	RuleContent *string
}

// Update represents a permission update request.
type Update struct {
	Type        UpdateType
	Rules       []*RuleValue
	Behavior    *Behavior
	Mode        *Mode
	Directories []string
	Destination *UpdateDestination
}

// updateFieldWriters encode the CLI wire format for each optional Update
// field. ToDict walks this table so the set of known fields is listed once
// instead of as a chain of sequential if-statements.
var updateFieldWriters = []func(u *Update, out map[string]any){
	func(u *Update, out map[string]any) {
		if u.Destination != nil {
			out["destination"] = string(*u.Destination)
		}
	},
	func(u *Update, out map[string]any) {
		if len(u.Rules) == 0 {
			return
		}

		rules := make([]map[string]any, len(u.Rules))
		for i, rule := range u.Rules {
			ruleMap := map[string]any{"toolName": rule.ToolName}
			if rule.RuleContent != nil {
				ruleMap["ruleContent"] = *rule.RuleContent
			}

			rules[i] = ruleMap
		}

		out["rules"] = rules
	},
	func(u *Update, out map[string]any) {
		if u.Behavior != nil {
			out["behavior"] = string(*u.Behavior)
		}
	},
	func(u *Update, out map[string]any) {
		if u.Mode != nil {
			out["mode"] = string(*u.Mode)
		}
	},
	func(u *Update, out map[string]any) {
		if len(u.Directories) > 0 {
			out["directories"] = u.Directories
		}
	},
}

// ToDict converts the Update to a CLI-compatible map.
func (u *Update) ToDict() map[string]any {
	out := make(map[string]any, len(updateFieldWriters)+1)
	out["type"] = string(u.Type)

	for _, write := range updateFieldWriters {
		write(u, out)
	}

	return out
}

// ParseUpdate reconstructs an Update from a decoded CLI suggestion map, the
// inverse of ToDict. Unknown or mistyped fields are left at their zero
// value rather than rejected, since suggestions are advisory: a caller's
// ToolPermissionCallback is free to ignore fields it doesn't recognize.
func ParseUpdate(raw map[string]any) *Update {
	update := &Update{}

	if t, ok := raw["type"].(string); ok {
		update.Type = UpdateType(t)
	}

	if dest, ok := raw["destination"].(string); ok {
		d := UpdateDestination(dest)
		update.Destination = &d
	}

	if behavior, ok := raw["behavior"].(string); ok {
		b := Behavior(behavior)
		update.Behavior = &b
	}

	if mode, ok := raw["mode"].(string); ok {
		m := Mode(mode)
		update.Mode = &m
	}

	if dirs, ok := raw["directories"].([]any); ok {
		update.Directories = make([]string, 0, len(dirs))
		for _, d := range dirs {
			if s, ok := d.(string); ok {
				update.Directories = append(update.Directories, s)
			}
		}
	}

	if rawRules, ok := raw["rules"].([]any); ok {
		update.Rules = make([]*RuleValue, 0, len(rawRules))

		for _, r := range rawRules {
			ruleMap, ok := r.(map[string]any)
			if !ok {
				continue
			}

			rule := &RuleValue{}
			if name, ok := ruleMap["toolName"].(string); ok {
				rule.ToolName = name
			}

			if content, ok := ruleMap["ruleContent"].(string); ok {
				rule.RuleContent = &content
			}

			update.Rules = append(update.Rules, rule)
		}
	}

	return update
}

// Context provides context for tool permission callbacks.
type Context struct {
	Suggestions []*Update // Permission update suggestions from CLI
}

// Result is the interface for permission decision results.
type Result interface {
	GetBehavior() string
}

// Compile-time verification that permission result types implement Result.
var (
	_ Result = (*ResultAllow)(nil)
	_ Result = (*ResultDeny)(nil)
)

// ResultAllow represents an allow decision.
type ResultAllow struct {
	Behavior           string         // "allow"
	UpdatedInput       map[string]any // Modified input parameters
	UpdatedPermissions []*Update      // Permission updates to apply
}

// GetBehavior implements Result.
func (r *ResultAllow) GetBehavior() string { return "allow" }

// ResultDeny represents a deny decision.
type ResultDeny struct {
	Behavior  string // "deny"
	Message   string // Reason for denial
	Interrupt bool   // Whether to interrupt the session
}

// GetBehavior implements Result.
func (r *ResultDeny) GetBehavior() string { return "deny" }

// Callback is called before each tool use for permission checking.
type Callback func(
	ctx context.Context,
	toolName string,
	input map[string]any,
	permCtx *Context,
) (Result, error)
