package ordertrack

import (
	"context"
	"fmt"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/myhttp"
	"github.com/AkshMaheshwari/MyEzz/lib/mylog"
	"github.com/AkshMaheshwari/MyEzz/services/orderapi"
	"github.com/AkshMaheshwari/MyEzz/services/ordertrackevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.subscriber.Subscribe(c, ordertrackevents.TopicName, myhttp.GuessHostnameWithScheme()+"/ordertrack/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", ordertrackevents.TopicName, err)
	}

	return nil
}

// OnOrderPlaced mirrors the freshly placed order into the unified-order
// backend, so order lists served from there include orders placed through
// this front. Delivery through the outbox keeps this off the critical path
// of order placement.
func (s *service) OnOrderPlaced(c context.Context, topic string, event ordertrackevents.OrderPlaced) error {
	s.logger.Log(c, event.OrderUID, mylog.SeverityInfo, "Webhook: order %s placed for user %s", event.OrderUID, event.UserUID)

	tracked, exists, err := s.trackingStore.Get(c, event.OrderUID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching order %s: %s", event.OrderUID, err))
	}
	if !exists {
		return myerrors.NewNotFoundError(fmt.Errorf("order %s is not tracked here", event.OrderUID))
	}

	// The order UID makes redelivery of this event idempotent on the backend
	_, err = s.orderFetcher.CreateOrder(c, composeUnifiedOrderRequest(tracked))
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error mirroring order %s: %s", event.OrderUID, err))
	}

	return nil
}

func (s *service) OnOrderStatusChanged(c context.Context, topic string, event ordertrackevents.OrderStatusChanged) error {
	s.logger.Log(c, event.OrderUID, mylog.SeverityInfo, "Webhook: order %s went from %s to %s", event.OrderUID, event.OldStatus, event.NewStatus)

	return nil
}

func composeUnifiedOrderRequest(tracked TrackedOrder) orderapi.OrderRequest {
	items := []orderapi.OrderItem{}
	for _, group := range tracked.Restaurants {
		for _, item := range group.Items {
			items = append(items, orderapi.OrderItem{
				ProductUID:    item.ProductUID,
				Name:          item.Name,
				RestaurantUID: item.RestaurantUID,
				PriceInCents:  item.PriceInCents,
				Quantity:      item.Quantity,
			})
		}
	}

	return orderapi.OrderRequest{
		OrderUID:        tracked.OrderUID,
		UserUID:         tracked.UserUID,
		Items:           items,
		AmountInCents:   tracked.AmountInCents,
		Currency:        tracked.Currency,
		DeliveryAddress: tracked.DeliveryAddress,
	}
}
