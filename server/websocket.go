package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// wsConnection serializes writes to one subscriber.
type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (wsc *wsConnection) sendJSON(v interface{}) error {
	wsc.writeMu.Lock()
	defer wsc.writeMu.Unlock()
	return wsc.conn.WriteJSON(v)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the feed is local-network only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// broadcaster fans decoded input events out to WebSocket subscribers.
type broadcaster struct {
	mu      sync.Mutex
	clients map[*wsConnection]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{clients: make(map[*wsConnection]struct{})}
}

func (b *broadcaster) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithField("err", err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	wsc := &wsConnection{conn: conn}
	b.add(wsc)
	defer b.remove(wsc)

	// subscribers only listen; reads just detect the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.WithField("err", err).Debug("websocket subscriber closed")
			return
		}
	}
}

func (b *broadcaster) add(wsc *wsConnection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[wsc] = struct{}{}
}

func (b *broadcaster) remove(wsc *wsConnection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, wsc)
}

// Broadcast sends e to every subscriber, dropping the ones whose writes fail.
func (b *broadcaster) Broadcast(e Event) {
	b.mu.Lock()
	clients := make([]*wsConnection, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.Unlock()

	for _, c := range clients {
		if err := c.sendJSON(e); err != nil {
			c.conn.Close()
			b.remove(c)
		}
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
