package realtime

import (
	"context"
	"encoding/json"
)

// HandlerFunc is invoked for every incoming frame whose event name it is
// registered under. Handlers run on the channel's read loop, one at a time.
type HandlerFunc func(c context.Context, data json.RawMessage)

type Handlers map[string]HandlerFunc

//go:generate mockgen -source=api.go -package realtime -destination channel_mock.go Channel
type Channel interface {
	// Connect dials the realtime server, authenticates and registers the
	// handlers. At most one connection exists per process: calling Connect
	// while connected is a no-op and keeps the original handlers.
	Connect(c context.Context, handlers Handlers) error
	Disconnect(c context.Context) error
	IsConnected() bool
	SubscribeOrder(c context.Context, orderUID string) error
	UnsubscribeOrder(c context.Context, orderUID string) error
}
