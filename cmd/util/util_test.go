package util

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestGetServerConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("endpoint", "127.0.0.1:55399")
	viper.Set("read-chunk", 4096)
	viper.Set("tick-interval", 10*time.Millisecond)
	viper.Set("verbose", true)

	cfg := GetServerConfig()
	if cfg.Endpoint != "127.0.0.1:55399" {
		t.Errorf("endpoint %q", cfg.Endpoint)
	}
	if cfg.ReadChunkSize != 4096 {
		t.Errorf("read chunk %d", cfg.ReadChunkSize)
	}
	if cfg.TickInterval != 10*time.Millisecond {
		t.Errorf("tick interval %v", cfg.TickInterval)
	}
	if !cfg.Verbose {
		t.Error("verbose flag did not reach the config")
	}
}

func TestGetSerializer(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	for _, name := range []string{"json", "gob", "cbor"} {
		viper.Set("serializer", name)
		if _, err := GetSerializer(); err != nil {
			t.Errorf("serializer %q: %v", name, err)
		}
	}

	viper.Set("serializer", "xml")
	if _, err := GetSerializer(); err == nil {
		t.Error("expected an error for an unknown serializer")
	}
}

func TestWrapString(t *testing.T) {
	got := WrapString("one two three four five six seven eight nine ten eleven twelve")
	for i, line := range strings.Split(got, "\n") {
		if len(line) > Wrap {
			t.Errorf("line %d exceeds the wrap width: %q", i, line)
		}
	}
}
