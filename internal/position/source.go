// Package position provides the continuous device position feed the tracker
// subscribes to while an operator is logged in.
package position

// Fix is one emission of the position source, in floating point degrees.
type Fix struct {
	Lat float64
	Lng float64
}

// Source is a continuous position feed. Watch registers a subscription and
// returns an opaque handle; onFix and onErr are invoked serially from the
// source's own goroutine until Unwatch is called with that handle. The source
// performs no retry of its own on errors.
type Source interface {
	Watch(onFix func(Fix), onErr func(error)) (handle string)
	Unwatch(handle string)
}
