package hal

import (
	"testing"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

func TestNewDevice(t *testing.T) {
	if _, err := NewDevice("sim", 0); err != nil {
		t.Fatalf("sim device: %v", err)
	}
	if _, err := NewDevice("tobii", 0); err == nil {
		t.Error("expected an error for an unknown device")
	}
}

func TestSimDeviceProducesSamples(t *testing.T) {
	dev := newSimDevice(500)
	out := xsync.NewMPMCQueueOf[DataPacket](1024)

	if err := dev.Start(out); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer dev.Stop()

	deadline := time.After(2 * time.Second)
	var got []DataPacket
	for len(got) < 10 {
		select {
		case <-deadline:
			t.Fatalf("collected only %d samples", len(got))
		default:
		}
		if pkt, ok := out.TryDequeue(); ok {
			got = append(got, pkt)
		} else {
			time.Sleep(time.Millisecond)
		}
	}

	for i, pkt := range got {
		if pkt.LeftX < 0 || pkt.LeftX > 1 || pkt.LeftY < 0 || pkt.LeftY > 1 {
			t.Errorf("sample %d out of normalized range: %+v", i, pkt)
		}
		if pkt.RightX <= pkt.LeftX {
			t.Errorf("sample %d lost the interocular offset: %+v", i, pkt)
		}
		if i > 0 && pkt.Timestamp <= got[i-1].Timestamp {
			t.Errorf("timestamps not increasing at sample %d", i)
		}
	}
}

func TestSimDeviceStopIsIdempotent(t *testing.T) {
	dev := newSimDevice(100)
	out := xsync.NewMPMCQueueOf[DataPacket](64)

	if err := dev.Start(out); err != nil {
		t.Fatalf("start: %v", err)
	}
	dev.Stop()
	dev.Stop() // second stop must not panic or hang
}
