package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// SlotEvent tells subscribed calendar clients that a slot was just taken so
// they can refresh availability without polling.
type SlotEvent struct {
	Datetime time.Time `json:"datetime"`
	Members  []string  `json:"members"`
}

var clients = make(map[*websocket.Conn]bool)
var clientsMu sync.RWMutex
var register = make(chan *websocket.Conn)
var unregister = make(chan *websocket.Conn)
var broadcast = make(chan SlotEvent, 16)

func RunHub() {
	for {
		select {
		case conn := <-register:
			clientsMu.Lock()
			clients[conn] = true
			clientsMu.Unlock()
		case conn := <-unregister:
			clientsMu.Lock()
			delete(clients, conn)
			clientsMu.Unlock()
		case event := <-broadcast:
			clientsMu.RLock()
			stale := []*websocket.Conn{}
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending slot event: %v", err)
					conn.Close()
					stale = append(stale, conn)
				}
			}
			clientsMu.RUnlock()
			clientsMu.Lock()
			for _, conn := range stale {
				delete(clients, conn)
			}
			clientsMu.Unlock()
		}
	}
}

// PublishSlotTaken hands an event to the hub without blocking the booking
// response; if nobody is draining the hub the event is dropped.
func PublishSlotTaken(event SlotEvent) {
	select {
	case broadcast <- event:
	default:
	}
}

// ServeSlots keeps a subscriber connection open until the client hangs up.
// The stream is one-way; inbound frames are read only to detect the close.
func ServeSlots(conn *websocket.Conn) {
	register <- conn
	defer func() {
		unregister <- conn
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
