// Package engine runs the daemon: one cooperative tick loop that
// services the control channel, drains gaze samples from the device
// into the recorder, and executes operator commands.
//
// The engine registers the full command surface on the server:
//
//   - show <okn|idle|saccades>: switch the presented stimulus
//   - record <N>s|<N>m: capture gaze data for a fixed duration
//   - stats: report internal counters
//   - exit: stop the daemon
//
// A recording's response is deferred until it finishes, so the
// front-end blocks on it for the whole capture. Everything runs on the
// tick goroutine except the device, which produces samples from its
// own and meets the engine only at a lock-free queue.
package engine
