// Package recorder captures gaze samples to disk for a fixed duration.
//
// One recording runs at a time. Starting one creates a fresh temporary
// directory holding data.csv; samples are appended as they arrive, and
// when the deadline passes the recorder writes a per-axis statistics
// summary next to the data and reports the directory back so the
// operator knows where the session landed.
//
// The recorder is driven by the engine's tick loop and is not safe for
// concurrent use.
package recorder

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/jaytlang-hopkins/freefocus/hal"
)

const (
	dirPrefix   = "EyeRecording-"
	dataFile    = "data.csv"
	summaryFile = "summary.json"
)

// ErrBusy is returned by Start while a recording is in progress.
var ErrBusy = errors.New("a recording is already in progress")

var (
	metricRecordingsStarted  = metrics.NewCounter("freefocus_recordings_started_total")
	metricRecordingsFinished = metrics.NewCounter("freefocus_recordings_finished_total")
	metricSamplesRecorded    = metrics.NewCounter("freefocus_recorder_samples_total")
)

var csvHeader = []string{"timestamp", "left_x", "left_y", "right_x", "right_y"}

// Recorder writes gaze samples to a CSV file until a deadline passes.
type Recorder struct {
	active   bool
	deadline time.Time
	dir      string
	file     *os.File
	csv      *csv.Writer
	samples  []hal.DataPacket
}

// New creates an idle recorder.
func New() *Recorder {
	return &Recorder{}
}

// Active reports whether a recording is in progress.
func (r *Recorder) Active() bool { return r.active }

// Start begins a recording that ends after the given duration. Only one
// recording may run at a time.
func (r *Recorder) Start(duration time.Duration) error {
	if r.active {
		return ErrBusy
	}
	if duration <= 0 {
		return fmt.Errorf("invalid recording duration %v", duration)
	}

	dir, err := os.MkdirTemp("", dirPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create recording directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, dataFile))
	if err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to create %s: %w", dataFile, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	r.active = true
	r.deadline = time.Now().Add(duration)
	r.dir = dir
	r.file = f
	r.csv = w
	r.samples = nil

	metricRecordingsStarted.Inc()
	logger.Infof("Recording for %v into %s", duration, dir)
	return nil
}

// Append records one sample. Samples arriving while idle are ignored.
func (r *Recorder) Append(pkt hal.DataPacket) {
	if !r.active {
		return
	}
	row := []string{
		formatFloat(pkt.Timestamp),
		formatFloat(pkt.LeftX),
		formatFloat(pkt.LeftY),
		formatFloat(pkt.RightX),
		formatFloat(pkt.RightY),
	}
	if err := r.csv.Write(row); err != nil {
		logger.Errorf("Failed to append sample: %v", err)
		return
	}
	r.samples = append(r.samples, pkt)
	metricSamplesRecorded.Inc()
}

// Tick finalizes the recording once its deadline has passed. When it
// completes, done is true and path names the directory holding the
// captured data.
func (r *Recorder) Tick(now time.Time) (done bool, path string, err error) {
	if !r.active || now.Before(r.deadline) {
		return false, "", nil
	}
	return r.finalize()
}

// Abort discards an in-progress recording and removes its directory.
func (r *Recorder) Abort() {
	if !r.active {
		return
	}
	dir := r.dir
	_ = r.file.Close()
	r.reset()
	_ = os.RemoveAll(dir)
	logger.Warnf("Recording aborted, removed %s", dir)
}

// ----- Internal Helpers -----

func (r *Recorder) finalize() (bool, string, error) {
	dir := r.dir
	count := len(r.samples)

	r.csv.Flush()
	flushErr := r.csv.Error()
	closeErr := r.file.Close()
	summaryErr := r.writeSummary()
	r.reset()

	if flushErr != nil {
		return true, dir, fmt.Errorf("failed to flush %s: %w", dataFile, flushErr)
	}
	if closeErr != nil {
		return true, dir, fmt.Errorf("failed to close %s: %w", dataFile, closeErr)
	}
	if summaryErr != nil {
		return true, dir, summaryErr
	}

	metricRecordingsFinished.Inc()
	logger.Infof("Recording finished, %d samples in %s", count, dir)
	return true, dir, nil
}

// writeSummary computes per-axis statistics over the captured samples
// and stores them as JSON alongside the data.
func (r *Recorder) writeSummary() error {
	axes := map[string][]float64{
		"left_x":  make([]float64, 0, len(r.samples)),
		"left_y":  make([]float64, 0, len(r.samples)),
		"right_x": make([]float64, 0, len(r.samples)),
		"right_y": make([]float64, 0, len(r.samples)),
	}
	for _, pkt := range r.samples {
		axes["left_x"] = append(axes["left_x"], pkt.LeftX)
		axes["left_y"] = append(axes["left_y"], pkt.LeftY)
		axes["right_x"] = append(axes["right_x"], pkt.RightX)
		axes["right_y"] = append(axes["right_y"], pkt.RightY)
	}

	summary := struct {
		Samples int              `json:"samples"`
		Axes    map[string]Stats `json:"axes"`
	}{
		Samples: len(r.samples),
		Axes:    make(map[string]Stats, len(axes)),
	}
	for name, values := range axes {
		summary.Axes[name] = NewStats(values)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, summaryFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", summaryFile, err)
	}
	return nil
}

func (r *Recorder) reset() {
	r.active = false
	r.dir = ""
	r.file = nil
	r.csv = nil
	r.samples = nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
