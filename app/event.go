package app

import (
	"fmt"

	"github.com/gogpu/present"
)

// EventKind identifies a window event.
type EventKind int

const (
	// EventResized reports a new framebuffer size. Size is empty while the
	// window is minimized.
	EventResized EventKind = iota + 1
	// EventRedrawRequested asks for a frame.
	EventRedrawRequested
	// EventCloseRequested asks the loop to stop.
	EventCloseRequested
)

func (k EventKind) String() string {
	switch k {
	case EventResized:
		return "Resized"
	case EventRedrawRequested:
		return "RedrawRequested"
	case EventCloseRequested:
		return "CloseRequested"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one window event.
type Event struct {
	Kind EventKind
	Size present.Size
}

// Resized returns an EventResized for size.
func Resized(size present.Size) Event { return Event{Kind: EventResized, Size: size} }

// EventSource delivers window events to Run.
type EventSource interface {
	// Next blocks until the next event. It returns false once the source
	// is exhausted or the window is gone.
	Next() (Event, bool)

	// RequestRedraw schedules an EventRedrawRequested. Pending requests
	// are coalesced.
	RequestRedraw()
}
