// Package client implements the front-end side of the control channel.
//
// A Client owns at most one of (pending connection, established
// connection) at a time. Ticking the client walks the in-progress
// connect to completion, flushes commands buffered before the link was
// up, and collects responses into an inbox in arrival order.
//
// Connection refusal is the common steady state when the daemon is not
// yet running. With RetryOnRefused set the client quietly retries on
// the next tick; otherwise the refusal surfaces as ErrServiceUnavailable
// so single-shot callers can bail out with a clear message.
//
// Blocking conveniences (WaitConnected, Call) are thin loops over Tick
// and are what the interactive shell and one-shot control commands use.
package client
