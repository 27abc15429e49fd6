package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PendingConnection owns a socket that has issued a non-blocking connect
// but is not yet confirmed writable. The client role promotes it to a
// Connection once the poller reports writability, or discards it when the
// attempt turns out to have been refused.
type PendingConnection struct {
	fd       int
	endpoint string
}

// NewPendingConnection opens a non-blocking socket and issues the connect
// call. An "operation in progress" result is the expected outcome and is
// not an error; anything else is surfaced to the caller.
func NewPendingConnection(endpoint string) (*PendingConnection, error) {
	sa, err := resolveInet4(endpoint)
	if err != nil {
		return nil, err
	}

	fd, err := newStreamSocket()
	if err != nil {
		return nil, err
	}

	err = unix.Connect(fd, sa)
	if err != nil && err != unix.EINPROGRESS {
		unix.Close(fd)
		return nil, fmt.Errorf("connect to %s failed: %w", endpoint, err)
	}

	return &PendingConnection{fd: fd, endpoint: endpoint}, nil
}

// Endpoint returns the endpoint this attempt targets.
func (p *PendingConnection) Endpoint() string {
	return p.endpoint
}

// Writable reports whether the connect attempt has resolved. A refused
// attempt also resolves writable; Promote tells the two outcomes apart.
func (p *PendingConnection) Writable() (bool, error) {
	_, writable, err := PollFd(p.fd, false, true, 0)
	return writable, err
}

// Promote hands the now-established socket off for use as a Connection,
// consuming the pending wrapper. If the attempt was refused, the socket is
// closed and the connect error is returned instead.
func (p *PendingConnection) Promote() (ISocket, error) {
	soErr, err := unix.GetsockoptInt(p.fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		unix.Close(p.fd)
		return nil, fmt.Errorf("failed to read connect result: %w", err)
	}
	if soErr != 0 {
		unix.Close(p.fd)
		return nil, fmt.Errorf("connect to %s failed: %w", p.endpoint, unix.Errno(soErr))
	}
	return &fdSocket{fd: p.fd}, nil
}

// Close discards an unresolved attempt.
func (p *PendingConnection) Close() error {
	return unix.Close(p.fd)
}
