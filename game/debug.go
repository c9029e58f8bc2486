package game

// DebugState holds global debug flags that persist across game resets
type DebugState struct {
	ShowLabels bool // Show ship type and altitude next to aircraft
	ShowStats  bool // Show radar bookkeeping counters
}

// Global debug state instance (persists across game resets)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}
