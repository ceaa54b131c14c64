package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"rentloBack/internal/models"
)

func TestPresenceRegistryEviction(t *testing.T) {
	reg := newPresenceRegistry()

	// reconnect storm: each new socket evicts the previous one
	conns := []*websocket.Conn{{}, {}, {}, {}}
	for i, conn := range conns {
		evicted := reg.add("alice", conn)
		if i == 0 && evicted != nil {
			t.Fatal("unexpected eviction on first register")
		}
		if i > 0 && evicted != conns[i-1] {
			t.Fatalf("expected socket %d to be evicted", i-1)
		}
	}

	if len(reg.conns) != 1 {
		t.Fatalf("expected exactly 1 entry after reconnects, got %d", len(reg.conns))
	}
	cur, ok := reg.lookup("alice")
	if !ok || cur != conns[len(conns)-1] {
		t.Fatal("expected the latest socket to be registered")
	}
}

func TestPresenceRegistryRemoveConn(t *testing.T) {
	reg := newPresenceRegistry()
	stale := &websocket.Conn{}
	fresh := &websocket.Conn{}

	reg.add("alice", stale)
	reg.add("alice", fresh)

	// the stale socket's close must not evict the fresh connection
	if reg.removeConn("alice", stale) {
		t.Fatal("expected stale conn removal to be refused")
	}
	if _, ok := reg.lookup("alice"); !ok {
		t.Fatal("expected alice to still be online")
	}

	if !reg.removeConn("alice", fresh) {
		t.Fatal("expected current conn removal to succeed")
	}
	if _, ok := reg.lookup("alice"); ok {
		t.Fatal("expected alice to be offline")
	}
}

func TestPresenceRegistryRemove(t *testing.T) {
	reg := newPresenceRegistry()
	conn := &websocket.Conn{}
	reg.add("alice", conn)

	if got := reg.remove("alice"); got != conn {
		t.Fatal("expected remove to return the registered socket")
	}
	if got := reg.remove("alice"); got != nil {
		t.Fatal("expected second remove to be a no-op")
	}
}

func TestRouteMessage(t *testing.T) {
	if got := routeMessage(true, ""); got != routeDirect {
		t.Fatalf("expected online recipient to get direct delivery, got %v", got)
	}
	if got := routeMessage(true, "ExponentPushToken[abc]"); got != routeDirect {
		t.Fatalf("expected live socket to win over push token, got %v", got)
	}
	if got := routeMessage(false, "ExponentPushToken[abc]"); got != routePush {
		t.Fatalf("expected offline recipient with token to get push, got %v", got)
	}
	if got := routeMessage(false, ""); got != routeDrop {
		t.Fatalf("expected offline recipient without token to be store-only, got %v", got)
	}
}

type recordingStore struct {
	saved chan models.RelayMessage
}

func (s *recordingStore) SaveRelayMessage(ctx context.Context, msg models.RelayMessage) error {
	s.saved <- msg
	return nil
}

type clientEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Every send-message persists exactly one record, whether delivery is
// direct, push or nowhere.
func TestRelayPersistsEverySendMessage(t *testing.T) {
	store := &recordingStore{saved: make(chan models.RelayMessage, 8)}
	manager := NewWebSocketManager(nil)
	go manager.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn.SetReadLimit(readLimit)
		conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
		go pingLoop(conn)
		go handleRelayEvents(conn, manager, store)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(clientEvent{Event: "storeClientInfo", Data: map[string]string{"customId": "alice"}}); err != nil {
		t.Fatal(err)
	}

	send := func(recipient, content, pushToken string) {
		t.Helper()
		err := conn.WriteJSON(clientEvent{Event: "send-message", Data: models.RelayMessage{
			Sender:             "alice",
			Recipient:          recipient,
			Content:            content,
			RecipientPushToken: pushToken,
		}})
		if err != nil {
			t.Fatal(err)
		}
	}

	// online: alice messages herself, so her registration is processed
	// before delivery and the frame comes straight back
	send("alice", "to myself", "")
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var evt struct {
		Event string              `json:"event"`
		Data  models.RelayMessage `json:"data"`
	}
	if err := conn.ReadJSON(&evt); err != nil {
		t.Fatalf("expected live delivery: %v", err)
	}
	if evt.Event != "receive-message" || evt.Data.Content != "to myself" {
		t.Fatalf("unexpected delivery: %+v", evt)
	}
	assertSavedOnce(t, store, "to myself")

	// offline with a push token
	send("bob", "while away", "ExponentPushToken[abc]")
	assertSavedOnce(t, store, "while away")

	// offline without a token: store-only
	send("carol", "into the void", "")
	assertSavedOnce(t, store, "into the void")

	// a frame whose sender is not the registered handle never persists
	if err := conn.WriteJSON(clientEvent{Event: "send-message", Data: models.RelayMessage{
		Sender: "mallory", Recipient: "alice", Content: "spoofed",
	}}); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-store.saved:
		t.Fatalf("unexpected persist of spoofed message: %+v", msg)
	case <-time.After(300 * time.Millisecond):
	}
}

func assertSavedOnce(t *testing.T, store *recordingStore, content string) {
	t.Helper()
	select {
	case msg := <-store.saved:
		if msg.Content != content {
			t.Fatalf("expected %q persisted, got %+v", content, msg)
		}
		if msg.CreatedAt.IsZero() {
			t.Fatal("expected createdAt to be stamped")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected %q to be persisted", content)
	}
	select {
	case msg := <-store.saved:
		t.Fatalf("unexpected second persist: %+v", msg)
	case <-time.After(200 * time.Millisecond):
	}
}
