package realtime

import "encoding/json"

// Frame is the wire envelope of the realtime server: a named event with an
// opaque payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Event names of the control frames this client sends.
const (
	eventAuthenticate     = "authenticate"
	eventSubscribeOrder   = "subscribe_order"
	eventUnsubscribeOrder = "unsubscribe_order"
)

// EventOrderUpdate is the event name under which the server pushes per-order
// status changes to subscribed clients.
const EventOrderUpdate = "order_update"

type authRequest struct {
	APIKey string `json:"apiKey"`
}

type orderRef struct {
	OrderUID string `json:"orderId"`
}

// OrderUpdate is the payload of an EventOrderUpdate frame.
type OrderUpdate struct {
	OrderUID string `json:"orderId"`
	Status   string `json:"status"`
	RiderUID string `json:"riderId"`
	ETA      string `json:"eta"`
}
