// Package monitor broadcasts a running simulator's device-state
// snapshots to any connected WebSocket client, adapted from the
// teacher's dashboard broadcast loop and retargeted from ECU
// telemetry to Newton device state.
package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bucko909/powerpod/internal/device"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Monitor serves the device state snapshot over HTTP (one-shot GET)
// and pushes it to connected WebSocket clients on an interval.
type Monitor struct {
	state *device.State

	clientsMu sync.RWMutex
	clients   map[*client]struct{}

	logger   *log.Logger
	interval time.Duration
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New builds a Monitor over state, pushing snapshots every interval.
func New(state *device.State, interval time.Duration, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Monitor{
		state:    state,
		clients:  make(map[*client]struct{}),
		logger:   logger,
		interval: interval,
	}
}

// Handler returns an http.Handler serving GET /snapshot (a single
// JSON snapshot) and GET /ws (an upgraded WebSocket feed).
func (m *Monitor) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", m.handleSnapshot)
	mux.HandleFunc("/ws", m.handleWS)
	return mux
}

func (m *Monitor) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m.state.Snapshot()); err != nil {
		m.logger.Printf("[monitor] encode snapshot: %v", err)
	}
}

func (m *Monitor) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Printf("[monitor] upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 8)}
	m.clientsMu.Lock()
	m.clients[c] = struct{}{}
	m.clientsMu.Unlock()

	go m.writePump(c)
	m.readPump(c)
}

func (m *Monitor) readPump(c *client) {
	defer m.dropClient(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Monitor) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (m *Monitor) dropClient(c *client) {
	m.clientsMu.Lock()
	defer m.clientsMu.Unlock()
	if _, ok := m.clients[c]; ok {
		delete(m.clients, c)
		close(c.send)
	}
}

// Run broadcasts a device-state snapshot to every connected client
// every interval, until stop is closed.
func (m *Monitor) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.broadcast()
		}
	}
}

func (m *Monitor) broadcast() {
	data, err := json.Marshal(m.state.Snapshot())
	if err != nil {
		m.logger.Printf("[monitor] marshal snapshot: %v", err)
		return
	}
	m.clientsMu.RLock()
	defer m.clientsMu.RUnlock()
	for c := range m.clients {
		select {
		case c.send <- data:
		default:
			m.logger.Printf("[monitor] client send buffer full, dropping update")
		}
	}
}
