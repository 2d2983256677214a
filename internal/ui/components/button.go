package components

import "github.com/abhisek/pathfinder/internal/ui/theme"

// KeyButton renders an inline action bound to key, for example
// "[s] Get my report". Disabled actions are drawn outlined and dim.
func KeyButton(key, label string, enabled bool) string {
	text := "[" + key + "] " + label
	if !enabled {
		return theme.ButtonInactive.Render(text)
	}
	return theme.ButtonActive.Render(text)
}
