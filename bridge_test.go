package unitconv_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lone-faerie/unitconv"
	"github.com/lone-faerie/unitconv/config"
	"github.com/lone-faerie/unitconv/mock"
)

func testBridge(t *testing.T) (*unitconv.Bridge, *mock.Client) {
	t.Helper()

	cfg := config.Default()
	client := mock.NewClient(cfg.MQTT.ClientOptions())
	bridge := unitconv.NewWithClient(cfg, client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	if err := bridge.Connect(ctx); err != nil {
		t.Fatal(err)
	}

	bridge.Start(ctx)
	<-bridge.Ready()

	return bridge, client
}

func TestBridgeConvert(t *testing.T) {
	bridge, client := testBridge(t)
	defer bridge.Disconnect()

	client.Receive("unitconv/convert/request", []byte(`{"value": 100, "from_unit": "C", "to_unit": "F"}`))

	published := client.Published("unitconv/convert/response")
	if len(published) != 1 {
		t.Fatalf("wanted 1 response, got %d", len(published))
	}

	var body convertResponse
	if err := json.Unmarshal(published[0], &body); err != nil {
		t.Fatal(err)
	}

	if body.Error != "" {
		t.Fatalf("unexpected error %q", body.Error)
	}
	if body.Result == nil {
		t.Fatal("result is nil")
	}
	if want, got := 212.0, *body.Result; got != want {
		t.Errorf("result: wanted %v, got %v", want, got)
	}
}

func TestBridgeConvertUnsupported(t *testing.T) {
	bridge, client := testBridge(t)
	defer bridge.Disconnect()

	client.Receive("unitconv/convert/request", []byte(`{"value": 1, "from_unit": "xx", "to_unit": "yy"}`))

	published := client.Published("unitconv/convert/response")
	if len(published) != 1 {
		t.Fatalf("wanted 1 response, got %d", len(published))
	}

	var body convertResponse
	if err := json.Unmarshal(published[0], &body); err != nil {
		t.Fatal(err)
	}

	if body.Result != nil {
		t.Fatalf("unexpected result %v", *body.Result)
	}

	want := "Conversion from 'xx' to 'yy' is not supported."
	if body.Error != want {
		t.Errorf("error: wanted %q, got %q", want, body.Error)
	}
}

func TestBridgeInvalidRequest(t *testing.T) {
	bridge, client := testBridge(t)
	defer bridge.Disconnect()

	client.Receive("unitconv/convert/request", []byte(`not json`))

	published := client.Published("unitconv/convert/response")
	if len(published) != 1 {
		t.Fatalf("wanted 1 response, got %d", len(published))
	}

	var body convertResponse
	if err := json.Unmarshal(published[0], &body); err != nil {
		t.Fatal(err)
	}

	if body.Error == "" {
		t.Error("wanted an error response, got none")
	}
}

func TestBridgeStatus(t *testing.T) {
	bridge, client := testBridge(t)

	status := client.Published("unitconv/bridge/status")
	if len(status) != 1 {
		t.Fatalf("wanted 1 status message, got %d", len(status))
	}
	if want, got := "online", string(status[0]); got != want {
		t.Errorf("status: wanted %q, got %q", want, got)
	}

	bridge.Disconnect()
	<-bridge.Done()

	status = client.Published("unitconv/bridge/status")
	if len(status) != 2 {
		t.Fatalf("wanted 2 status messages, got %d", len(status))
	}
	if want, got := "offline", string(status[1]); got != want {
		t.Errorf("status: wanted %q, got %q", want, got)
	}

	if client.IsConnected() {
		t.Error("client still connected after Disconnect")
	}
}

func TestBridgeStopTopic(t *testing.T) {
	bridge, client := testBridge(t)

	client.Receive("unitconv/bridge/stop", nil)

	select {
	case <-bridge.Done():
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop")
	}

	if client.IsConnected() {
		t.Error("client still connected after stop")
	}
}

func ExampleBridge() {
	cfg := config.Default()
	bridge := unitconv.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := bridge.Connect(ctx); err != nil {
		return
	}
	defer bridge.Disconnect()

	bridge.Start(ctx)
	<-bridge.Ready()
	<-ctx.Done()
}
