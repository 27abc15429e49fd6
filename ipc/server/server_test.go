package server

import (
	"os"
	"testing"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Levels: []logger.Level{logger.ErrorLevel}})
	os.Exit(m.Run())
}

// ----- Registry Tests -----

func TestRegistryDispatchOrder(t *testing.T) {
	r := NewRegistry()

	var got []string
	r.Add(Parser{Key: "show", Description: "first", Parse: func(args []string) {
		got = append(got, "first")
	}})
	r.Add(Parser{Key: "record", Description: "second", Parse: func(args []string) {
		got = append(got, "second")
	}})

	if !r.Dispatch(&common.Command{Name: "record"}) {
		t.Fatal("expected a match for a registered key")
	}
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("dispatched %v, want [second]", got)
	}
}

func TestRegistryDuplicateKeyShadowed(t *testing.T) {
	r := NewRegistry()

	var got string
	r.Add(Parser{Key: "show", Description: "original", Parse: func(args []string) {
		got = "original"
	}})
	r.Add(Parser{Key: "show", Description: "usurper", Parse: func(args []string) {
		got = "usurper"
	}})

	r.Dispatch(&common.Command{Name: "show"})
	if got != "original" {
		t.Errorf("later duplicate handled the command, want the earlier registration")
	}
}

func TestRegistryUnmatched(t *testing.T) {
	r := NewRegistry()
	r.Add(Parser{Key: "show", Description: "d", Parse: func(args []string) {}})

	if r.Dispatch(&common.Command{Name: "frobnicate"}) {
		t.Error("unregistered command reported as matched")
	}
}

func TestRegistryHelpListing(t *testing.T) {
	r := NewRegistry()
	r.Add(Parser{Key: "show", Description: "change the displayed stimulus", Parse: func(args []string) {}})
	r.Add(Parser{Key: "exit", Description: "stop the service", Parse: func(args []string) {}})

	want := "Supported commands:" +
		"\n\t=> show: change the displayed stimulus" +
		"\n\t=> exit: stop the service" +
		"\n\t=> help: show this message"
	if got := r.HelpListing(); got != want {
		t.Errorf("help listing\ngot:  %q\nwant: %q", got, want)
	}
}

func TestRegistryHelpListingEmpty(t *testing.T) {
	want := "Supported commands:\n\t=> help: show this message"
	if got := NewRegistry().HelpListing(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// ----- Server Dispatch Tests -----

func testServer() *Server {
	return NewServer(common.ServerConfig{}, serializer.NewJSONSerializer())
}

func TestServerOneCommandPerTickStep(t *testing.T) {
	s := testServer()

	var handled []string
	s.Register(Parser{Key: "show", Description: "d", Parse: func(args []string) {
		handled = append(handled, "show")
	}})

	s.pending = []*common.Command{
		{Name: "show"},
		{Name: "show"},
		{Name: "show"},
	}

	s.dispatchOne()
	if len(handled) != 1 {
		t.Fatalf("handled %d commands in one step, want 1", len(handled))
	}
	if s.QueuedCommands() != 2 {
		t.Errorf("queued %d, want 2", s.QueuedCommands())
	}
}

func TestServerHelpFallback(t *testing.T) {
	s := testServer()
	s.Register(Parser{Key: "show", Description: "change the displayed stimulus", Parse: func(args []string) {}})

	tests := []struct {
		name          string
		cmd           string
		wantSucceeded bool
	}{
		{"ExplicitHelp", "help", true},
		{"UnknownCommand", "bogus", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.pending = []*common.Command{{Name: tt.cmd}}
			s.dispatchOne()

			msg, ok := s.outbox.TryDequeue()
			if !ok {
				t.Fatal("no response queued for unmatched command")
			}
			if msg.MsgType != common.MsgTResponse {
				t.Fatalf("queued a %v, want a response", msg.MsgType)
			}
			if msg.Response.Succeeded != tt.wantSucceeded {
				t.Errorf("succeeded = %v, want %v", msg.Response.Succeeded, tt.wantSucceeded)
			}
			if msg.Response.Message != s.registry.HelpListing() {
				t.Errorf("response message is not the help listing: %q", msg.Response.Message)
			}
		})
	}
}

func TestServerMatchedCommandGetsArguments(t *testing.T) {
	s := testServer()

	var got []string
	s.Register(Parser{Key: "record", Description: "d", Parse: func(args []string) {
		got = args
	}})

	s.pending = []*common.Command{{Name: "record", Arguments: []string{"10s"}}}
	s.dispatchOne()

	if len(got) != 1 || got[0] != "10s" {
		t.Errorf("parser received %v, want [10s]", got)
	}
}
