package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"rentloBack/internal/handlers"
	"rentloBack/internal/models"
)

const (
	readLimit          = 1 << 20
	readDeadline       = 120 * time.Second
	writeDeadline      = 5 * time.Second
	pingInterval       = 15 * time.Second
	firstHelloDeadline = 30 * time.Second
	persistTimeout     = 3 * time.Second
	pushTimeout        = 5 * time.Second
)

// wsEvent is the envelope every client frame arrives in.
type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type serverEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type Client struct {
	ID     string
	Socket *websocket.Conn
}

type unreg struct {
	handle string
	conn   *websocket.Conn
}

// presenceRegistry maps handles to their live sockets. One socket per
// handle; a newer connection evicts the older one.
type presenceRegistry struct {
	conns map[string]*websocket.Conn
}

func newPresenceRegistry() *presenceRegistry {
	return &presenceRegistry{conns: make(map[string]*websocket.Conn)}
}

// add registers conn under handle and returns the evicted socket, if any.
func (p *presenceRegistry) add(handle string, conn *websocket.Conn) *websocket.Conn {
	old := p.conns[handle]
	p.conns[handle] = conn
	if old != nil && old != conn {
		return old
	}
	return nil
}

// remove drops the handle's entry regardless of which socket holds it.
func (p *presenceRegistry) remove(handle string) *websocket.Conn {
	cur, ok := p.conns[handle]
	if !ok {
		return nil
	}
	delete(p.conns, handle)
	return cur
}

// removeConn drops the handle's entry only while conn is still the
// registered socket, so a stale close cannot evict a fresh connection.
func (p *presenceRegistry) removeConn(handle string, conn *websocket.Conn) bool {
	cur, ok := p.conns[handle]
	if !ok || cur != conn {
		return false
	}
	delete(p.conns, handle)
	return true
}

func (p *presenceRegistry) lookup(handle string) (*websocket.Conn, bool) {
	conn, ok := p.conns[handle]
	return conn, ok
}

type route int

const (
	routeDirect route = iota
	routePush
	routeDrop
)

// routeMessage picks the delivery path for a recipient: live socket wins,
// then push token, otherwise the message is store-only.
func routeMessage(online bool, pushToken string) route {
	switch {
	case online:
		return routeDirect
	case pushToken != "":
		return routePush
	}
	return routeDrop
}

type WebSocketManager struct {
	presence   *presenceRegistry
	register   chan Client
	unregister chan unreg
	deliver    chan models.RelayMessage
	fcm        *handlers.FCMHandler
}

func NewWebSocketManager(fcm *handlers.FCMHandler) *WebSocketManager {
	return &WebSocketManager{
		presence:   newPresenceRegistry(),
		register:   make(chan Client),
		unregister: make(chan unreg),
		deliver:    make(chan models.RelayMessage),
		fcm:        fcm,
	}
}

// Run owns the presence registry. All registry access goes through here.
func (ws *WebSocketManager) Run() {
	for {
		select {
		case client := <-ws.register:
			if old := ws.presence.add(client.ID, client.Socket); old != nil {
				_ = old.Close()
			}
			log.Printf("WS register handle=%s", client.ID)

		case u := <-ws.unregister:
			if u.conn == nil {
				if cur := ws.presence.remove(u.handle); cur != nil {
					_ = cur.Close()
					log.Printf("WS unregister handle=%s", u.handle)
				}
			} else if ws.presence.removeConn(u.handle, u.conn) {
				_ = u.conn.Close()
				log.Printf("WS unregister handle=%s", u.handle)
			}

		case msg := <-ws.deliver:
			conn, online := ws.presence.lookup(msg.Recipient)
			switch routeMessage(online, msg.RecipientPushToken) {
			case routeDirect:
				_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := conn.WriteJSON(serverEvent{Event: "receive-message", Data: msg}); err != nil {
					log.Printf("direct send error to=%s: %v", msg.Recipient, err)
					_ = conn.Close()
					ws.presence.removeConn(msg.Recipient, conn)
				}
			case routePush:
				if ws.fcm != nil {
					go ws.sendPush(msg)
				}
			case routeDrop:
				log.Printf("deliver skip: handle=%s offline, no push token", msg.Recipient)
			}
		}
	}
}

func (ws *WebSocketManager) sendPush(msg models.RelayMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if err := ws.fcm.SendMessage(ctx, msg.RecipientPushToken, msg.SenderFullName, msg.Content, msg.Sender); err != nil {
		log.Printf("push send error to=%s: %v", msg.Recipient, err)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// RelayHandler upgrades the connection. The first frame the client sends
// must be a storeClientInfo event naming its handle.
func (app *application) RelayHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(firstHelloDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	go pingLoop(conn)
	go handleRelayEvents(conn, app.wsManager, app.messageService)
}

// pings go out as control frames via WriteControl, which may run
// concurrently with the event loop's data writes on the same conn.
func pingLoop(conn *websocket.Conn) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
			_ = writeClose(conn, websocket.CloseGoingAway, "ping error")
			_ = conn.Close()
			return
		}
	}
}

// messageStore persists relayed messages. Satisfied by services.MessageService.
type messageStore interface {
	SaveRelayMessage(ctx context.Context, msg models.RelayMessage) error
}

func handleRelayEvents(conn *websocket.Conn, manager *WebSocketManager, messages messageStore) {
	var handle string
	defer func() {
		if handle != "" {
			manager.unregister <- unreg{handle: handle, conn: conn}
		}
		_ = conn.Close()
	}()

	for {
		var evt wsEvent
		if err := conn.ReadJSON(&evt); err != nil {
			log.Println("read json error:", err)
			_ = writeClose(conn, websocket.CloseNormalClosure, "read error")
			return
		}

		switch evt.Event {
		case "storeClientInfo":
			var info struct {
				CustomID string `json:"customId"`
			}
			if err := json.Unmarshal(evt.Data, &info); err != nil || info.CustomID == "" {
				log.Println("invalid storeClientInfo payload:", err)
				_ = writeClose(conn, websocket.ClosePolicyViolation, "client info required")
				return
			}
			handle = info.CustomID
			conn.SetReadDeadline(time.Now().Add(readDeadline))
			manager.register <- Client{ID: handle, Socket: conn}

		case "send-message":
			var msg models.RelayMessage
			if err := json.Unmarshal(evt.Data, &msg); err != nil {
				log.Println("invalid send-message payload:", err)
				continue
			}
			if handle == "" || msg.Sender != handle {
				log.Println("reject: sender does not match registered handle")
				continue
			}
			if msg.Recipient == "" || strings.TrimSpace(msg.Content) == "" {
				log.Println("reject: empty recipient or content")
				continue
			}
			if msg.CreatedAt.IsZero() {
				msg.CreatedAt = time.Now()
			}

			manager.deliver <- msg

			// persists whether or not delivery succeeded
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			if err := messages.SaveRelayMessage(ctx, msg); err != nil {
				log.Println("save message error:", err)
			}
			cancel()

		case "pre-disconnect":
			var info struct {
				CustomID string `json:"customId"`
			}
			if err := json.Unmarshal(evt.Data, &info); err != nil || info.CustomID == "" {
				continue
			}
			manager.unregister <- unreg{handle: info.CustomID}
			if info.CustomID == handle {
				handle = ""
			}

		default:
			log.Printf("unknown event %q", evt.Event)
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
