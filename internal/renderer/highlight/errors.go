package highlight

import "errors"

// ErrUnknownTheme indicates no theme is registered under a name.
var ErrUnknownTheme = errors.New("unknown theme")
