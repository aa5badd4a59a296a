package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AkshMaheshwari/MyEzz/lib/mycontext"
	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/mylog"
)

const (
	defaultMaxReconnectAttempts = 5
	defaultReconnectDelay       = 2 * time.Second
)

type wsChannel struct {
	url                  string
	apiKey               string
	logger               mylog.Logger
	maxReconnectAttempts int
	reconnectDelay       time.Duration

	mutex         sync.Mutex
	conn          *websocket.Conn
	handlers      Handlers
	subscriptions map[string]bool
	closing       chan struct{}
}

func New(url string, apiKey string) Channel {
	return &wsChannel{
		url:                  url,
		apiKey:               apiKey,
		logger:               mylog.New("realtime"),
		maxReconnectAttempts: defaultMaxReconnectAttempts,
		reconnectDelay:       defaultReconnectDelay,
		subscriptions:        map[string]bool{},
	}
}

func (ch *wsChannel) Connect(c context.Context, handlers Handlers) error {
	ch.mutex.Lock()
	defer ch.mutex.Unlock()

	if ch.conn != nil {
		ch.logger.Log(c, "", mylog.SeverityInfo, "Already connected to %s: keeping existing channel", ch.url)
		return nil
	}

	conn, err := ch.dialAndAuthenticate(c)
	if err != nil {
		return err
	}

	ch.conn = conn
	ch.handlers = handlers
	ch.closing = make(chan struct{})

	go ch.readLoop(conn, ch.closing)

	ch.logger.Log(c, "", mylog.SeverityInfo, "Connected to realtime server %s", ch.url)

	return nil
}

func (ch *wsChannel) Disconnect(c context.Context) error {
	ch.mutex.Lock()
	defer ch.mutex.Unlock()

	if ch.conn == nil {
		return nil
	}

	close(ch.closing)

	err := ch.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		ch.logger.Log(c, "", mylog.SeverityWarn, "Error sending close message: %s", err)
	}

	err = ch.conn.Close()
	ch.conn = nil
	ch.subscriptions = map[string]bool{}

	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error closing realtime connection: %s", err))
	}

	return nil
}

func (ch *wsChannel) IsConnected() bool {
	ch.mutex.Lock()
	defer ch.mutex.Unlock()

	return ch.conn != nil
}

func (ch *wsChannel) SubscribeOrder(c context.Context, orderUID string) error {
	ch.mutex.Lock()
	defer ch.mutex.Unlock()

	if ch.conn == nil {
		return myerrors.NewUnavailableError(fmt.Errorf("not connected to realtime server"))
	}

	err := ch.writeFrame(ch.conn, eventSubscribeOrder, orderRef{OrderUID: orderUID})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error subscribing to order %s: %s", orderUID, err))
	}

	ch.subscriptions[orderUID] = true

	ch.logger.Log(c, orderUID, mylog.SeverityInfo, "Subscribed to updates of order %s", orderUID)

	return nil
}

func (ch *wsChannel) UnsubscribeOrder(c context.Context, orderUID string) error {
	ch.mutex.Lock()
	defer ch.mutex.Unlock()

	if ch.conn == nil {
		return myerrors.NewUnavailableError(fmt.Errorf("not connected to realtime server"))
	}

	err := ch.writeFrame(ch.conn, eventUnsubscribeOrder, orderRef{OrderUID: orderUID})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error unsubscribing from order %s: %s", orderUID, err))
	}

	delete(ch.subscriptions, orderUID)

	ch.logger.Log(c, orderUID, mylog.SeverityInfo, "Unsubscribed from updates of order %s", orderUID)

	return nil
}

func (ch *wsChannel) dialAndAuthenticate(c context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(c, ch.url, nil)
	if err != nil {
		return nil, myerrors.NewUnavailableError(fmt.Errorf("error dialing realtime server %s: %s", ch.url, err))
	}

	err = ch.writeFrame(conn, eventAuthenticate, authRequest{APIKey: ch.apiKey})
	if err != nil {
		conn.Close()
		return nil, myerrors.NewAuthenticationError(fmt.Errorf("error authenticating on realtime server: %s", err))
	}

	return conn, nil
}

func (ch *wsChannel) writeFrame(conn *websocket.Conn, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling %s payload: %s", event, err)
	}

	return conn.WriteJSON(Frame{
		Event: event,
		Data:  data,
	})
}

// readLoop reads frames until the connection dies. The closing channel tells
// an intentional Disconnect apart from a broken connection.
func (ch *wsChannel) readLoop(conn *websocket.Conn, closing chan struct{}) {
	for {
		frame := Frame{}
		err := conn.ReadJSON(&frame)
		if err != nil {
			select {
			case <-closing:
				return
			default:
			}

			c := mycontext.ContextWithTrace("realtime")
			ch.logger.Log(c, "", mylog.SeverityWarn, "Realtime connection lost: %s", err)
			ch.reconnect(c, closing)

			return
		}

		ch.dispatch(frame)
	}
}

func (ch *wsChannel) dispatch(frame Frame) {
	c := mycontext.ContextWithTrace(frame.Event)

	handler, exists := ch.handlers[frame.Event]
	if !exists {
		ch.logger.Log(c, "", mylog.SeverityWarn, "No handler registered for event %s", frame.Event)
		return
	}

	handler(c, frame.Data)
}

// reconnect re-dials a fixed number of times and restores the order
// subscriptions that existed before the connection broke.
func (ch *wsChannel) reconnect(c context.Context, closing chan struct{}) {
	for attempt := 1; attempt <= ch.maxReconnectAttempts; attempt++ {
		select {
		case <-closing:
			return
		case <-time.After(ch.reconnectDelay):
		}

		ch.logger.Log(c, "", mylog.SeverityInfo, "Reconnect attempt %d of %d", attempt, ch.maxReconnectAttempts)

		conn, err := ch.dialAndAuthenticate(c)
		if err != nil {
			ch.logger.Log(c, "", mylog.SeverityWarn, "Reconnect attempt %d failed: %s", attempt, err)
			continue
		}

		ch.mutex.Lock()
		ch.conn = conn
		for orderUID := range ch.subscriptions {
			err = ch.writeFrame(conn, eventSubscribeOrder, orderRef{OrderUID: orderUID})
			if err != nil {
				ch.logger.Log(c, orderUID, mylog.SeverityWarn, "Error restoring subscription of order %s: %s", orderUID, err)
			}
		}
		ch.mutex.Unlock()

		go ch.readLoop(conn, closing)

		ch.logger.Log(c, "", mylog.SeverityInfo, "Reconnected to realtime server %s", ch.url)

		return
	}

	ch.logger.Log(c, "", mylog.SeverityError, "Giving up on realtime server %s after %d attempts", ch.url, ch.maxReconnectAttempts)

	ch.mutex.Lock()
	ch.conn = nil
	ch.mutex.Unlock()
}
