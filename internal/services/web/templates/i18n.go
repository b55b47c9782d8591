package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer is the message printer components translate through.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T translates key through loc. With no localizer a string key is used as
// its own format so fragments still render in degraded paths.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	format, ok := key.(string)
	switch {
	case !ok:
		return ""
	case len(args) == 0:
		return format
	default:
		return fmt.Sprintf(format, args...)
	}
}
