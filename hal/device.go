package hal

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// DataPacket is one gaze sample: a capture timestamp in seconds and
// normalized screen coordinates for each eye.
type DataPacket struct {
	Timestamp float64
	LeftX     float64
	LeftY     float64
	RightX    float64
	RightY    float64
}

// Device is an eye tracker. Start may spawn goroutines; the device owns
// them until Stop returns. Samples the queue cannot hold are dropped.
type Device interface {
	Name() string
	Start(out *xsync.MPMCQueueOf[DataPacket]) error
	Stop()
}

// NewDevice creates a device by name.
func NewDevice(name string, sampleRateHz int) (Device, error) {
	switch name {
	case "sim":
		return newSimDevice(sampleRateHz), nil
	default:
		return nil, fmt.Errorf("unknown device %q (available: %v)", name, DeviceNames())
	}
}

// DeviceNames lists every device NewDevice accepts.
func DeviceNames() []string {
	return []string{"sim"}
}
