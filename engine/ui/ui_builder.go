package ui

import "log"

// UIBuilderOption is a functional option applied to the UI during construction via NewUI.
type UIBuilderOption func(*uiImpl)

// WithLogger sets the logger LogPanels writes to. Defaults to log.Default().
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - UIBuilderOption: a function that applies the logger option
func WithLogger(l *log.Logger) UIBuilderOption {
	return func(u *uiImpl) {
		if l != nil {
			u.logger = l
		}
	}
}
