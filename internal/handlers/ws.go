package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"lechefer/internal/slides"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsCommand is a message from a websocket client.
type wsCommand struct {
	Type      string `json:"type"`
	On        *bool  `json:"on,omitempty"`
	Direction int    `json:"direction,omitempty"`
}

// wsError is sent back for commands that could not be applied.
type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// websocket serves the same session to kiosk clients as JSON state frames.
// Every slide or mode change pushes a full state; clients send commands.
func (h *LandingHandler) websocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	sess, ok := h.store.GetSession(sessionID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	hub, ok := h.store.Broadcaster(sessionID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "session", sessionID, "error", err)
		return
	}
	defer conn.Close()

	sub := hub.Subscribe()
	defer func() {
		hub.Unsubscribe(sub)
		h.store.Release(sessionID)
	}()
	if err := h.store.Mount(sessionID); err != nil {
		return
	}

	replies := make(chan any, 4)
	done := make(chan struct{})
	go h.readCommands(conn, sessionID, replies, done)

	sendState := func() error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(toState(sessionID, sess.Snapshot(time.Now().UTC())))
	}
	if err := sendState(); err != nil {
		return
	}

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case _, open := <-sub:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"),
					time.Now().Add(wsWriteWait))
				return
			}
			if err := sendState(); err != nil {
				return
			}
		case reply := <-replies:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

// readCommands applies client commands until the connection fails. Errors
// are queued as replies for the writer; only the writer touches the socket
// for writes.
func (h *LandingHandler) readCommands(conn *websocket.Conn, sessionID string, replies chan<- any, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", "session", sessionID, "error", err)
			}
			return
		}
		if err := h.applyCommand(sessionID, data); err != nil {
			select {
			case replies <- wsError{Type: "error", Error: err.Error()}:
			default:
			}
		}
	}
}

func (h *LandingHandler) applyCommand(sessionID string, data []byte) error {
	var cmd wsCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return err
	}
	switch cmd.Type {
	case "toggle":
		_, err := h.store.Toggle(sessionID)
		return err
	case "mode":
		if cmd.On == nil {
			_, err := h.store.Toggle(sessionID)
			return err
		}
		_, err := h.store.SetMode(sessionID, slides.ModeFromToggle(*cmd.On))
		return err
	case "paginate":
		return h.store.Paginate(sessionID, cmd.Direction)
	default:
		return errUnknownCommand(cmd.Type)
	}
}

type errUnknownCommand string

func (e errUnknownCommand) Error() string {
	return "unknown command " + string(e)
}
