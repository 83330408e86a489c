package roadmap

import "errors"

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrEndBeforeStart      = errors.New("end date is before start date")
	ErrNoTimeline          = errors.New("timeline not set")
	ErrInvalidTimeline     = errors.New("invalid timeline")
	ErrUnknownTimelineMode = errors.New("unknown timeline mode")
	ErrInvalidCanvas       = errors.New("invalid canvas size")
	ErrUnknownTheme        = errors.New("unknown colour theme")
	ErrInvalidColour       = errors.New("invalid colour")
	ErrEmptyName           = errors.New("name must not be empty")
	ErrFrozen              = errors.New("roadmap already drawn")
	ErrUnsupportedFormat   = errors.New("unsupported output format")
	ErrUnsupportedEngine   = errors.New("unsupported render engine")
)
