package client_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/jaytlang-hopkins/freefocus/ipc/client"
	"github.com/jaytlang-hopkins/freefocus/ipc/common"
	"github.com/jaytlang-hopkins/freefocus/ipc/serializer"
	"github.com/jaytlang-hopkins/freefocus/ipc/server"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Config{Levels: []logger.Level{logger.ErrorLevel}})
	os.Exit(m.Run())
}

// tickBoth interleaves both sides until cond holds or the budget runs out.
func tickBoth(t *testing.T, srv *server.Server, cli *client.Client, cond func() bool) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if err := srv.Tick(); err != nil {
			t.Fatalf("server tick: %v", err)
		}
		if err := cli.Tick(); err != nil {
			t.Fatalf("client tick: %v", err)
		}
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached within tick budget")
}

func TestClientServerRoundTrip(t *testing.T) {
	endpoint := "127.0.0.1:55391"

	srv := server.NewServer(common.ServerConfig{Endpoint: endpoint}, serializer.NewJSONSerializer())
	defer srv.Close()

	srv.Register(server.Parser{
		Key:         "show",
		Description: "change the displayed stimulus",
		Parse: func(args []string) {
			if len(args) != 1 {
				srv.Respond(false, "usage: show <stimulus>")
				return
			}
			srv.Respond(true, "now showing "+args[0])
		},
	})

	cli := client.NewClient(common.ClientConfig{
		Endpoint:       endpoint,
		RetryOnRefused: true,
	}, serializer.NewJSONSerializer())
	defer cli.Close()

	// Establish the link.
	tickBoth(t, srv, cli, cli.IsConnected)

	// While a front-end is attached nothing must be listening, so a
	// second front-end is refused by the kernel, not by us.
	if srv.HasListener() {
		t.Error("server still listening with a front-end attached")
	}
	if !srv.HasConnection() {
		t.Error("server lost the connection it just accepted")
	}
	if cli.HasPendingConnection() {
		t.Error("client kept its pending wrapper after promoting it")
	}

	// Matched command.
	cli.Send("show", []string{"okn"})
	var resp *common.Response
	tickBoth(t, srv, cli, func() bool {
		resp = cli.NextResponse()
		return resp != nil
	})
	if !resp.Succeeded || resp.Message != "now showing okn" {
		t.Errorf("got response %+v", resp)
	}

	// Unknown command falls back to the help listing and fails.
	cli.Send("frobnicate", nil)
	tickBoth(t, srv, cli, func() bool {
		resp = cli.NextResponse()
		return resp != nil
	})
	if resp.Succeeded {
		t.Error("unknown command reported success")
	}

	// After the front-end leaves, the server goes back to listening.
	cli.Close()
	for i := 0; i < 2000 && !srv.HasListener(); i++ {
		if err := srv.Tick(); err != nil {
			t.Fatalf("server tick after disconnect: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	if !srv.HasListener() {
		t.Error("server did not resume listening after the front-end left")
	}
}

func TestClientRefusedWithoutRetry(t *testing.T) {
	cli := client.NewClient(common.ClientConfig{
		Endpoint: "127.0.0.1:55392", // nobody listens here
	}, serializer.NewJSONSerializer())
	defer cli.Close()

	var err error
	for i := 0; i < 200; i++ {
		if err = cli.Tick(); err != nil {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !errors.Is(err, client.ErrServiceUnavailable) {
		t.Errorf("got %v, want ErrServiceUnavailable", err)
	}
}

func TestClientRefusedWithRetry(t *testing.T) {
	cli := client.NewClient(common.ClientConfig{
		Endpoint:       "127.0.0.1:55393", // nobody listens here
		RetryOnRefused: true,
	}, serializer.NewJSONSerializer())
	defer cli.Close()

	for i := 0; i < 50; i++ {
		if err := cli.Tick(); err != nil {
			t.Fatalf("tick surfaced an error despite RetryOnRefused: %v", err)
		}
		if cli.IsConnected() && cli.HasPendingConnection() {
			t.Fatal("client holds a connection and a pending attempt at once")
		}
		time.Sleep(time.Millisecond)
	}
	if cli.IsConnected() {
		t.Error("connected to an endpoint nobody listens on")
	}
}
