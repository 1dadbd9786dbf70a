package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocketProgressStream(t *testing.T) {
	srv := testServer(t, "")
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Wait for the hub to register the client before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for srv.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered on hub")
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.hub.BroadcastProgress("flextext", "build", "Building document", 60)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var msg ProgressMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("message not JSON: %v\n%s", err, data)
	}
	if msg.Type != "progress" || msg.Operation != "flextext" || msg.Progress != 60 {
		t.Errorf("message = %+v", msg)
	}
	if msg.Timestamp == "" {
		t.Error("timestamp not set")
	}
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Must not block or panic with nobody listening.
	hub.BroadcastProgress("flextext", "fetch", "x", 1)
	hub.BroadcastComplete("flextext", "done", nil)
	hub.BroadcastError("flextext", "boom")
}
