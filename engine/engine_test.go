package engine

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/jaytlang-hopkins/freefocus/ipc/client"
	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Levels: []logger.Level{logger.ErrorLevel}})
	os.Exit(m.Run())
}

func TestParseRecordDuration(t *testing.T) {
	tests := []struct {
		arg     string
		want    time.Duration
		wantErr bool
	}{
		{"10s", 10 * time.Second, false},
		{"2m", 2 * time.Minute, false},
		{"1s", time.Second, false},
		{"0s", 0, true},
		{"10", 0, true},
		{"s", 0, true},
		{"10x", 0, true},
		{"-5s", 0, true},
		{"1h", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseRecordDuration(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestEngineCommandSurface drives a live engine over loopback and walks
// the whole command set.
func TestEngineCommandSurface(t *testing.T) {
	endpoint := "127.0.0.1:55394"

	eng, err := New(
		Config{Device: "sim", SampleRateHz: 500, TickInterval: time.Millisecond},
		common.ServerConfig{Endpoint: endpoint},
		serializer.NewJSONSerializer(),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runDone := make(chan error, 1)
	go func() { runDone <- eng.Run(ctx) }()

	cli := client.NewClient(common.ClientConfig{
		Endpoint:       endpoint,
		RetryOnRefused: true,
		TickInterval:   time.Millisecond,
	}, serializer.NewJSONSerializer())
	defer cli.Close()

	if err := cli.WaitConnected(5 * time.Second); err != nil {
		t.Fatalf("connect: %v", err)
	}

	// show with a valid stimulus.
	resp, err := cli.Call("show", []string{"okn"}, 5*time.Second)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !resp.Succeeded || !strings.Contains(resp.Message, "okn") {
		t.Errorf("show okn: %+v", resp)
	}

	// show with a bogus stimulus fails but keeps the daemon alive.
	resp, err = cli.Call("show", []string{"strobe"}, 5*time.Second)
	if err != nil {
		t.Fatalf("show strobe: %v", err)
	}
	if resp.Succeeded {
		t.Error("unknown stimulus reported success")
	}

	// record with a malformed duration fails immediately.
	resp, err = cli.Call("record", []string{"10x"}, 5*time.Second)
	if err != nil {
		t.Fatalf("record 10x: %v", err)
	}
	if resp.Succeeded || !strings.Contains(resp.Message, "usage") {
		t.Errorf("malformed record: %+v", resp)
	}

	// A real recording blocks until it completes and returns the
	// output directory.
	resp, err = cli.Call("record", []string{"1s"}, 15*time.Second)
	if err != nil {
		t.Fatalf("record 1s: %v", err)
	}
	if !resp.Succeeded || !strings.Contains(resp.Message, "EyeRecording-") {
		t.Errorf("record 1s: %+v", resp)
	}
	defer os.RemoveAll(resp.Message)

	// An unknown command gets the help listing back.
	resp, err = cli.Call("frobnicate", nil, 5*time.Second)
	if err != nil {
		t.Fatalf("frobnicate: %v", err)
	}
	if resp.Succeeded || !strings.Contains(resp.Message, "Supported commands:") {
		t.Errorf("help fallback: %+v", resp)
	}

	// stats reports counters in Prometheus exposition format.
	resp, err = cli.Call("stats", nil, 5*time.Second)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !resp.Succeeded || !strings.Contains(resp.Message, "freefocus_") {
		t.Errorf("stats: %+v", resp)
	}

	// exit acknowledges, then the engine stops on its own.
	resp, err = cli.Call("exit", nil, 5*time.Second)
	if err != nil {
		t.Fatalf("exit: %v", err)
	}
	if !resp.Succeeded {
		t.Errorf("exit: %+v", resp)
	}

	select {
	case err := <-runDone:
		if err != nil {
			t.Errorf("engine run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("engine did not stop after exit")
	}
}
