// Package ipc provides the control channel between the FreeFocus daemon and
// its front-ends: a length-prefixed framing protocol over a loopback TCP
// socket, driven by non-blocking, readiness-polled I/O.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures used across the channel, including the
//     tagged Command/Response message union and the server/client
//     configuration structures.
//
//   - serializer: Message payload serialization with multiple format options
//     (JSON, GOB, CBOR) for converting between Message objects and byte
//     arrays. JSON is the wire default.
//
//   - wire: The pure framing codec that prefixes each serialized payload
//     with a 4-byte big-endian length and splits complete frames back out
//     of a growable byte buffer. No I/O, no state.
//
//   - transport: The readiness poller, the non-blocking socket layer, and
//     the Connection type pairing one established socket with an inbound
//     byte buffer and an ordered outbound frame queue.
//
//   - server: The daemon-side role. Owns the listener lifecycle (bind,
//     listen, accept exactly one connection, rebuild after disconnect) and
//     the command dispatch registry with its help fallback.
//
//   - client: The front-end side role. Owns the connector lifecycle
//     (non-blocking connect, promote on writability) and routes each
//     inbound Response to the owning front-end.
//
// Both roles are tick-driven: a bounded loop polls readiness once per
// entity per tick, performs at most one read and one write pass per
// connection, and dispatches at most one inbound command. Nothing in this
// package blocks.
package ipc
