// Package dispatch pushes order lifecycle events to connected dashboard
// clients over websockets.
package dispatch

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/utils"
)

const (
	EventOrderCreated    = "order_created"
	EventOrderUpdate     = "order_update"
	EventOrderDispatched = "order_dispatched"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the connected dashboard clients keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{clients: make(map[*websocket.Conn]string)}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// orderEvent wraps the order with a display-ready total so dashboard
// clients do not reimplement currency formatting.
type orderEvent struct {
	models.Order
	TotalDisplay string `json:"total_display"`
}

func newOrderEvent(order models.Order) orderEvent {
	return orderEvent{Order: order, TotalDisplay: utils.FormatCurrencyBRL(order.TotalAmount)}
}

// BroadcastOrderCreated announces a freshly placed order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: newOrderEvent(order)})
}

// BroadcastOrderUpdate announces a lifecycle or detail change.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: newOrderEvent(order)})
}

// BroadcastOrderDispatched announces an order leaving with a delivery person.
func BroadcastOrderDispatched(order models.Order) {
	broadcast(Message{Event: EventOrderDispatched, Data: newOrderEvent(order)})
}

// BroadcastDashboardUpdate pushes fresh aggregate numbers.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("dispatch: marshal broadcast: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("dispatch: send to client: %v", err)
		}
	}
}
