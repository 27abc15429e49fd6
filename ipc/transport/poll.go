package transport

import (
	"time"

	"golang.org/x/sys/unix"
)

// PollFd queries a descriptor for readiness without blocking. A timeout of
// zero returns immediately with the current state. A direction that was not
// asked for is always reported false.
//
// Hangups and error conditions are folded into readability: the subsequent
// read observes the zero-length result (or the error) and surfaces the
// disconnect through the normal path.
func PollFd(fd int, forRead, forWrite bool, timeout time.Duration) (readable, writable bool, err error) {
	var events int16
	if forRead {
		events |= unix.POLLIN
	}
	if forWrite {
		events |= unix.POLLOUT
	}
	if events == 0 {
		return false, false, nil
	}

	pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: events}}

	for {
		n, err := unix.Poll(pollDescriptors, int(timeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, false, err
		}
		if n == 0 {
			return false, false, nil
		}
		break
	}

	revents := pollDescriptors[0].Revents
	readable = forRead && revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0
	writable = forWrite && revents&unix.POLLOUT != 0
	return readable, writable, nil
}
