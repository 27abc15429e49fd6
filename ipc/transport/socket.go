package transport

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

var (
	// ErrPeerDisconnected reports a zero-length read or send: the peer
	// has gone away and the owning lifecycle must rebuild.
	ErrPeerDisconnected = errors.New("peer has disconnected")

	// ErrNotReady reports a socket operation that would have blocked
	// despite a readiness hint. The caller simply retries next tick.
	ErrNotReady = errors.New("socket not ready")
)

// ISocket is the byte-level surface a Connection drives. The production
// implementation wraps a non-blocking file descriptor; tests substitute
// fakes to script partial writes, slow arrivals and disconnects.
type ISocket interface {
	// Poll reports current read/write readiness without blocking
	Poll(forRead, forWrite bool, timeout time.Duration) (readable, writable bool, err error)
	// Read performs a single non-blocking read. A zero-length result
	// with a nil error means the peer performed an orderly shutdown.
	Read(p []byte) (int, error)
	// Write performs a single non-blocking write and reports how many
	// bytes the transport accepted.
	Write(p []byte) (int, error)
	// Close releases the descriptor
	Close() error
}

// fdSocket implements ISocket over a non-blocking file descriptor.
type fdSocket struct {
	fd int
}

func (s *fdSocket) Poll(forRead, forWrite bool, timeout time.Duration) (bool, bool, error) {
	return PollFd(s.fd, forRead, forWrite, timeout)
}

func (s *fdSocket) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, ErrNotReady
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

func (s *fdSocket) Write(p []byte) (int, error) {
	for {
		n, err := unix.Write(s.fd, p)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, ErrNotReady
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

func (s *fdSocket) Close() error {
	return unix.Close(s.fd)
}

// newStreamSocket opens a non-blocking TCP socket.
func newStreamSocket() (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, fmt.Errorf("failed to create socket: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("failed to set socket non-blocking: %w", err)
	}
	return fd, nil
}

// resolveInet4 parses a "host:port" endpoint into a sockaddr. Only IPv4
// literals are accepted; the channel is loopback-only.
func resolveInet4(endpoint string) (*unix.SockaddrInet4, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port in endpoint %q", endpoint)
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("endpoint %q is not an IPv4 address", endpoint)
	}

	sa := &unix.SockaddrInet4{Port: port}
	copy(sa.Addr[:], ip.To4())
	return sa, nil
}
