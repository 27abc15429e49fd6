package hal

import (
	"math"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
)

const defaultSampleRateHz = 120

var (
	metricSamplesProduced = metrics.NewCounter("freefocus_hal_samples_produced_total")
	metricSamplesDropped  = metrics.NewCounter("freefocus_hal_samples_dropped_total")
)

// simDevice synthesizes smooth-pursuit-looking gaze data: both eyes
// sweep a slow horizontal sine with a small vertical wobble and a
// fixed interocular offset.
type simDevice struct {
	sampleRate int

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newSimDevice(sampleRateHz int) *simDevice {
	if sampleRateHz <= 0 {
		sampleRateHz = defaultSampleRateHz
	}
	return &simDevice{sampleRate: sampleRateHz}
}

func (d *simDevice) Name() string { return "sim" }

func (d *simDevice) Start(out *xsync.MPMCQueueOf[DataPacket]) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil // already running
	}
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	go d.run(out, d.stop, d.done)
	return nil
}

func (d *simDevice) Stop() {
	d.mu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (d *simDevice) run(out *xsync.MPMCQueueOf[DataPacket], stop, done chan struct{}) {
	defer close(done)

	period := time.Second / time.Duration(d.sampleRate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			t := now.Sub(start).Seconds()
			x := 0.5 + 0.4*math.Sin(2*math.Pi*0.25*t)
			y := 0.5 + 0.05*math.Sin(2*math.Pi*1.1*t)
			pkt := DataPacket{
				Timestamp: t,
				LeftX:     x - 0.01,
				LeftY:     y,
				RightX:    x + 0.01,
				RightY:    y,
			}
			if out.TryEnqueue(pkt) {
				metricSamplesProduced.Inc()
			} else {
				metricSamplesDropped.Inc()
			}
		}
	}
}
