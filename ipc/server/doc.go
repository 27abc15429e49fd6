// Package server implements the daemon side of the control channel.
//
// The Server owns a single-client lifecycle driven by explicit ticks:
// while no front-end is attached it keeps a listening socket open, and
// while one is attached the listening socket is gone, so a second
// front-end is refused at the kernel's doorstep. Exactly one of
// (listener, connection) exists at any time between ticks.
//
// Incoming commands run through an ordered parser registry. Parsers are
// consulted in registration order and the first one whose key matches
// consumes the command; unmatched commands fall back to a generated
// listing of everything the registry knows about.
//
// Responses may be produced asynchronously (a long recording finishing
// on another goroutine, for instance), so Respond is safe to call from
// any goroutine and queues onto a lock-free outbox that the tick loop
// drains onto the wire.
//
// This package provides:
//
//   - Registry: ordered command parser registration and dispatch
//   - Server: listener/connection lifecycle, command intake, response outbox
package server
