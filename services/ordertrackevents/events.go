package ordertrackevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/myevents"
)

const (
	TopicName              = "ordertrack"
	orderPlacedName        = TopicName + ".placed"
	orderStatusChangedName = TopicName + ".statusChanged"
)

type OrderEventService interface {
	Subscribe(c context.Context) error
	OnOrderPlaced(c context.Context, topic string, event OrderPlaced) error
	OnOrderStatusChanged(c context.Context, topic string, event OrderStatusChanged) error
}

func DispatchEvent(c context.Context, reader io.Reader, service OrderEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case orderPlacedName:
		{
			event := OrderPlaced{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderPlaced(c, envelope.Topic, event)
		}
	case orderStatusChangedName:
		{
			event := OrderStatusChanged{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnOrderStatusChanged(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event %s", envelope.EventTypeName))
	}
}

type OrderPlaced struct {
	OrderUID        string
	UserUID         string
	RestaurantCount int
	AmountInCents   int
	Currency        string
}

func (e OrderPlaced) GetEventTypeName() string {
	return orderPlacedName
}

func (e OrderPlaced) GetAggregateName() string {
	return e.OrderUID
}

type OrderStatusChanged struct {
	OrderUID  string
	OldStatus string
	NewStatus string
	RiderUID  string
}

func (e OrderStatusChanged) GetEventTypeName() string {
	return orderStatusChangedName
}

func (e OrderStatusChanged) GetAggregateName() string {
	return e.OrderUID
}
