// Package metrics records container activity.
package metrics

import "time"

// Recorder receives container events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	// Registered counts a registration under lifecycle.
	Registered(lifecycle string)
	// Dispatched observes one lifecycle strategy dispatch.
	Dispatched(lifecycle string, elapsed time.Duration, err error)
	// Resolved counts a top level resolution request.
	Resolved(err error)
	// Built observes a build and the number of singletons it constructed.
	Built(elapsed time.Duration, singletons int, err error)
}
