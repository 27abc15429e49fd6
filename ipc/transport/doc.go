// Package transport implements the socket layer of the control channel:
// readiness polling, non-blocking loopback TCP sockets, and the Connection
// type that pairs one established socket with an inbound byte buffer and an
// ordered outbound frame queue.
//
// Nothing here blocks. Sockets are only read from or written to after the
// poller reports the corresponding readiness with a zero timeout, once per
// tick. The three lifecycle objects, Listener (server role),
// PendingConnection (client role) and Connection (both), are singletons
// per process, owned and sequenced exclusively by the role managers in the
// server and client packages.
//
// Key Components:
//
//   - PollFd: queries a descriptor for read/write readiness without
//     blocking.
//
//   - ISocket: the byte-level surface a Connection drives. The production
//     implementation wraps a non-blocking file descriptor; tests inject
//     fakes to script partial writes and disconnects.
//
//   - Connection: one read attempt per readable tick feeding a decode
//     loop, one send attempt per writable tick draining the head of the
//     outbound queue. Zero-length reads and sends signal peer
//     disconnection.
//
//   - Listener / PendingConnection: the passive and in-progress halves of
//     the two connection-establishment state machines.
package transport
