package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓"
	SymbolFail     = "✗"
	SymbolWarn     = "!"
	SymbolPending  = "○"
	SymbolComplete = "●"
)

// StatusSymbol returns the styled symbol for a "pass", "warn" or "fail"
// status. Anything else renders as pending.
func StatusSymbol(status string) string {
	switch status {
	case "pass":
		return SuccessStyle().Render(SymbolComplete)
	case "warn":
		return WarningStyle().Render(SymbolWarn)
	case "fail":
		return ErrorStyle().Render(SymbolFail)
	default:
		return MutedStyle().Render(SymbolPending)
	}
}
