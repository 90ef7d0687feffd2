package config

// NormalizePermissionMode maps legacy and alternate-build permission mode
// names to the values this CLI build accepts.
//
// Mappings:
//   - "acceptAll" -> "bypassPermissions" (pre-rename alias)
//   - "prompt" -> "default"
//   - "dontAsk" -> "bypassPermissions" (seen on CLI builds that split out a
//     non-interactive-but-not-bypass mode; this build has no such distinction)
//   - "delegate" -> "plan" (some builds use "delegate" for planning handed off
//     to a subagent; this build folds that into plan mode)
func NormalizePermissionMode(mode string) string {
	switch mode {
	case "acceptAll":
		return "bypassPermissions"
	case "prompt":
		return "default"
	case "dontAsk":
		return "bypassPermissions"
	case "delegate":
		return "plan"
	default:
		return mode
	}
}
