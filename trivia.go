// Quizbox trivia game
//
// One participant hosts a game show; everyone else joins a room code as a
// player. The host drives rounds of questions while players answer or buzz
// in live, and a running score is kept per player.
//
// Features:
// - Single WebSocket endpoint: /trivia/ws, actions addressed by room code
// - Room creator becomes the host; everyone else is a player
// - Three question types: multiple-choice (timed), buzzer, sequence reveal
// - Multiple-choice questions broadcast a countdown every 500ms
// - First buzz wins; the host can lock out the previous answerer and move on
// - The host sees correct answers, players never do until the reveal
// - Points only become real when the host confirms them
// - Players identified by cookie, so a reconnect keeps their score
// - Rooms auto-reaped after a configurable idle timeout
// - Random 4-char room codes via crypto/rand, with server-side collision check
// - In-browser QR link to share a room, backed by go-qrcode

package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "quizbox_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// Client is one websocket connection. session is only touched from the
// connection's own read goroutine.
type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
	session  *Session
}

// trySend delivers a message outside any session, dropping it if the client
// is backed up. Used only before the client has joined a room.
func (c *Client) trySend(msg any) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) readPump(cfg *Config, reg *Registry) {
	defer func() {
		if c.session != nil {
			c.session.disconnect(cfg, reg, c)
		} else {
			close(c.send)
		}
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		dispatch(cfg, reg, c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// dispatch routes one client action. Room creation and joining are handled
// by the registry; everything else is addressed to the client's session.
func dispatch(cfg *Config, reg *Registry, c *Client, msg ClientMessage) {
	switch msg.Type {
	case "create_room":
		if c.session != nil {
			c.trySend(AckMessage{Type: "ack", Action: msg.Type, Ok: false, Reason: "alreadyJoined"})
			return
		}
		s := reg.create(cfg, c, msg.Name)
		c.session = s
		c.trySend(AckMessage{Type: "ack", Action: msg.Type, Ok: true, Room: s.code})

	case "join_room":
		if c.session != nil {
			c.trySend(AckMessage{Type: "ack", Action: msg.Type, Ok: false, Reason: "alreadyJoined"})
			return
		}
		s := reg.get(msg.Room)
		if s == nil {
			c.trySend(AckMessage{Type: "ack", Action: msg.Type, Ok: false, Reason: reasonFor(ErrRoomNotFound)})
			return
		}
		s.join(cfg, c, msg.Name, msg.Role)
		c.session = s
		c.trySend(AckMessage{Type: "ack", Action: msg.Type, Ok: true, Room: s.code})

	default:
		s := c.session
		if s == nil {
			c.trySend(AckMessage{Type: "ack", Action: msg.Type, Ok: false, Reason: reasonFor(ErrNotJoined)})
			return
		}
		s.handleAction(cfg, c, msg)
	}
}

func serveWS(cfg *Config, reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 16),
			playerID: playerID,
		}

		go client.writePump()
		client.readPump(cfg, reg)
	}
}

// QR handler: generates a PNG QR code for joining the given room.
func qrHandler(cfg *Config, path string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")
		if room == "" {
			http.Error(w, "missing room code", http.StatusBadRequest)
			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + path + "?room=" + room

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func serveTriviaHome(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write([]byte(newPage("quizbox", "Connect a game client to /trivia/ws")))
	}
}

// registerTriviaGame sets up routes so that:
//   - $path           → landing page, assigns the identity cookie
//   - $path/ws        → WebSocket carrying all game actions
//   - $path/qr/:room  → PNG QR code linking to a room
func registerTriviaGame(cfg *Config, path string, mux *httprouter.Router, bank *QuestionBank) {
	reg := newRegistry(cfg, bank)

	mux.GET(cfg.prefix+path, serveTriviaHome(cfg))

	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, reg))

	mux.GET(cfg.prefix+path+"/qr/:room", qrHandler(cfg, path))
}
