package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Listener owns the passive socket on the well-known endpoint. It exists
// only while no Connection exists; the server role destroys it immediately
// after handing the accepted socket off.
type Listener struct {
	fd       int
	endpoint string
}

// NewListener binds the loopback endpoint and starts listening. Address and
// port reuse are enabled where the platform supports them; an unsupported
// reuse-port option is ignored.
func NewListener(endpoint string) (*Listener, error) {
	sa, err := resolveInet4(endpoint)
	if err != nil {
		return nil, err
	}

	fd, err := newStreamSocket()
	if err != nil {
		return nil, err
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to set SO_REUSEADDR: %w", err)
	}
	// Not available everywhere.
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)

	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to bind %s: %w", endpoint, err)
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to listen on %s: %w", endpoint, err)
	}

	return &Listener{fd: fd, endpoint: endpoint}, nil
}

// Endpoint returns the bound endpoint.
func (l *Listener) Endpoint() string {
	return l.endpoint
}

// Readable reports whether a peer is waiting to be accepted.
func (l *Listener) Readable() (bool, error) {
	readable, _, err := PollFd(l.fd, true, false, 0)
	return readable, err
}

// Accept picks up exactly one pending connection and marks it non-blocking.
// Returns (nil, nil) when the peer vanished between poll and accept.
func (l *Listener) Accept() (ISocket, error) {
	nfd, _, err := unix.Accept(l.fd)
	if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accept on %s failed: %w", l.endpoint, err)
	}

	if err := unix.SetNonblock(nfd, true); err != nil {
		unix.Close(nfd)
		return nil, fmt.Errorf("failed to set accepted socket non-blocking: %w", err)
	}

	return &fdSocket{fd: nfd}, nil
}

// Close releases the passive socket.
func (l *Listener) Close() error {
	return unix.Close(l.fd)
}
