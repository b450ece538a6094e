package viz

import "errors"

// ErrUnknownTheme indicates a theme name that is not registered.
var ErrUnknownTheme = errors.New("viz: unknown theme")
