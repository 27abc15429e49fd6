package engine

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/mordilloSan/go-logger/logger"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/jaytlang-hopkins/freefocus/hal"
	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
	"github.com/jaytlang-hopkins/freefocus/ipc/server"
	"github.com/jaytlang-hopkins/freefocus/recorder"
	"github.com/jaytlang-hopkins/freefocus/stimulus"
)

const (
	sampleQueueCapacity = 4096
	shutdownGraceTicks  = 200
)

// Config holds the daemon settings that are not about the control
// channel itself.
type Config struct {
	Device       string
	SampleRateHz int
	TickInterval time.Duration
}

// Normalize fills in defaults for zero values.
func (c *Config) Normalize() {
	if c.Device == "" {
		c.Device = "sim"
	}
	if c.TickInterval <= 0 {
		c.TickInterval = common.DefaultTickInterval
	}
}

// Engine owns the daemon's tick loop and every collaborator on it.
type Engine struct {
	config  Config
	srv     *server.Server
	dev     hal.Device
	rec     *recorder.Recorder
	display *stimulus.Display
	samples *xsync.MPMCQueueOf[hal.DataPacket]

	stopping bool
}

// New assembles an engine. The device must exist; the control socket is
// not created until Run.
func New(config Config, serverConfig common.ServerConfig, ser serializer.ISerializer) (*Engine, error) {
	config.Normalize()

	dev, err := hal.NewDevice(config.Device, config.SampleRateHz)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:  config,
		srv:     server.NewServer(serverConfig, ser),
		dev:     dev,
		rec:     recorder.New(),
		display: stimulus.NewDisplay(),
		samples: xsync.NewMPMCQueueOf[hal.DataPacket](sampleQueueCapacity),
	}
	e.registerParsers()
	return e, nil
}

// Run drives the tick loop until the context is cancelled or a client
// sends exit. It blocks the calling goroutine.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.dev.Start(e.samples); err != nil {
		return fmt.Errorf("failed to start device %q: %w", e.dev.Name(), err)
	}
	defer e.dev.Stop()
	defer e.srv.Close()

	logger.Infof("Engine running with device %q", e.dev.Name())

	ticker := time.NewTicker(e.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Shutting down: %v", ctx.Err())
			e.rec.Abort()
			return nil
		case now := <-ticker.C:
			if err := e.tick(now); err != nil {
				return err
			}
			if e.stopping {
				e.flushFarewell(ticker)
				return nil
			}
		}
	}
}

// tick runs one pass over every collaborator.
func (e *Engine) tick(now time.Time) error {
	if err := e.srv.Tick(); err != nil {
		return fmt.Errorf("control server failed: %w", err)
	}

	for {
		pkt, ok := e.samples.TryDequeue()
		if !ok {
			break
		}
		e.rec.Append(pkt)
	}

	done, path, err := e.rec.Tick(now)
	if done {
		if err != nil {
			logger.Errorf("Recording failed: %v", err)
			e.srv.Respond(false, fmt.Sprintf("recording failed: %v", err))
		} else {
			e.srv.Respond(true, path)
		}
	}
	return nil
}

// flushFarewell keeps ticking until the goodbye response is on the
// wire, within a bounded grace period.
func (e *Engine) flushFarewell(ticker *time.Ticker) {
	for i := 0; i < shutdownGraceTicks; i++ {
		if err := e.srv.Tick(); err != nil {
			return
		}
		if e.srv.PendingWrites() == 0 {
			return
		}
		<-ticker.C
	}
	logger.Warnf("Gave up flushing the farewell response")
}

// ----- Command Surface -----

func (e *Engine) registerParsers() {
	e.srv.Register(server.Parser{
		Key:         "show",
		Description: fmt.Sprintf("change the displayed stimulus %v", stimulus.Kinds()),
		Parse:       e.parseShow,
	})
	e.srv.Register(server.Parser{
		Key:         "record",
		Description: "capture gaze data for a duration, e.g. record 30s or record 2m",
		Parse:       e.parseRecord,
	})
	e.srv.Register(server.Parser{
		Key:         "stats",
		Description: "report internal counters",
		Parse:       e.parseStats,
	})
	e.srv.Register(server.Parser{
		Key:         "exit",
		Description: "stop the service",
		Parse:       e.parseExit,
	})
}

func (e *Engine) parseShow(args []string) {
	if len(args) != 1 {
		e.srv.Respond(false, fmt.Sprintf("usage: show <stimulus>, one of %v", stimulus.Kinds()))
		return
	}
	if err := e.display.Show(stimulus.Kind(args[0])); err != nil {
		e.srv.Respond(false, err.Error())
		return
	}
	e.srv.Respond(true, fmt.Sprintf("now showing %s", e.display.Current()))
}

// parseRecord starts a capture. The response is deliberately withheld
// until the recording finishes; the completion path in tick sends it
// with the output directory.
func (e *Engine) parseRecord(args []string) {
	const usage = "usage: record <N>s or record <N>m"
	if len(args) != 1 {
		e.srv.Respond(false, usage)
		return
	}
	duration, err := parseRecordDuration(args[0])
	if err != nil {
		e.srv.Respond(false, usage)
		return
	}
	if err := e.rec.Start(duration); err != nil {
		e.srv.Respond(false, err.Error())
		return
	}
}

func (e *Engine) parseStats(args []string) {
	var buf bytes.Buffer
	metrics.WritePrometheus(&buf, false)
	e.srv.Respond(true, buf.String())
}

func (e *Engine) parseExit(args []string) {
	logger.Infof("Stopped by client")
	e.srv.Respond(true, "stopping")
	e.stopping = true
}

// parseRecordDuration accepts the wire form of a recording length: a
// positive integer suffixed with s (seconds) or m (minutes).
func parseRecordDuration(arg string) (time.Duration, error) {
	if len(arg) < 2 {
		return 0, fmt.Errorf("malformed duration %q", arg)
	}

	var unit time.Duration
	switch arg[len(arg)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	default:
		return 0, fmt.Errorf("malformed duration %q", arg)
	}

	n := 0
	for _, r := range arg[:len(arg)-1] {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("malformed duration %q", arg)
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, fmt.Errorf("malformed duration %q", arg)
	}
	return time.Duration(n) * unit, nil
}
