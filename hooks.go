package claudesdk

import "strings"

// Hook types are re-exported from types.go for convenience.
// See types.go for documentation on hook-related types including:
// - HookEvent, HookInput, HookCallback, HookMatcher
// - All hook event constants (HookEventPreToolUse, etc.)
// - All hook input types (PreToolUseHookInput, etc.)
// - All hook output types (HookJSONOutput, SyncHookJSONOutput, etc.)

// MatchesTool reports whether a hook matcher string selects toolName. The
// CLI's own matcher applies the same rule server-side; this lets a host
// application pre-filter hook registrations (e.g. to decide whether it's
// worth registering a hook at all) without guessing at the CLI's syntax.
//
// An empty matcher or "*" matches every tool. Otherwise the matcher is a
// "|"-separated list of exact tool names.
func MatchesTool(matcher string, toolName string) bool {
	if matcher == "" || matcher == "*" {
		return true
	}

	for _, candidate := range strings.Split(matcher, "|") {
		if strings.TrimSpace(candidate) == toolName {
			return true
		}
	}

	return false
}
