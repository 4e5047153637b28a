package toon

import "context"

// AsyncEvent is one item of an async event channel: either a valid Event or
// a terminal error. An item with a non-nil Err carries a zero Event and is
// the last item the channel delivers before closing.
type AsyncEvent struct {
	Event Event
	Err   error
}

// DecodeEventsAsync pushes the same event sequence Events(input, opts)
// would yield synchronously into a channel, read from a background
// goroutine. Element order matches the synchronous sequence exactly. The
// channel closes after end-of-input or after the first error is delivered.
// Canceling ctx stops the background goroutine and closes the channel
// without delivering the remaining events.
func DecodeEventsAsync(ctx context.Context, input string, opts DecodeOptions) <-chan AsyncEvent {
	out := make(chan AsyncEvent)

	go func() {
		defer close(out)
		for ev, err := range Events(input, opts) {
			item := AsyncEvent{Event: ev, Err: err}
			select {
			case out <- item:
				if err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
