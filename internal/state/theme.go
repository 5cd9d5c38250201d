package state

// ThemeActionType enumerates theme actions.
type ThemeActionType string

const (
	ThemeToggle ThemeActionType = "theme/toggle"
	ThemeSet    ThemeActionType = "theme/set"
)

// ThemeAction is dispatched to a ThemeStore. Dark is only read by ThemeSet.
type ThemeAction struct {
	Type ThemeActionType
	Dark bool
}

// ThemeState is the light/dark preference. Light is the default.
type ThemeState struct {
	IsDarkMode bool
}

// ThemeStore is the container for ThemeState.
type ThemeStore = Store[ThemeState, ThemeAction]

// NewThemeStore returns a ThemeStore in light mode.
func NewThemeStore() *ThemeStore {
	return NewStore(ThemeState{}, ReduceTheme)
}

// ReduceTheme is the ThemeState reducer.
func ReduceTheme(s ThemeState, a ThemeAction) ThemeState {
	switch a.Type {
	case ThemeToggle:
		return ThemeState{IsDarkMode: !s.IsDarkMode}
	case ThemeSet:
		return ThemeState{IsDarkMode: a.Dark}
	default:
		return s
	}
}
