package ordertrack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/mylog"
	"github.com/AkshMaheshwari/MyEzz/lib/mypublisher"
	"github.com/AkshMaheshwari/MyEzz/lib/mypubsub"
	"github.com/AkshMaheshwari/MyEzz/lib/mystore"
	"github.com/AkshMaheshwari/MyEzz/lib/mytime"
	"github.com/AkshMaheshwari/MyEzz/lib/myuuid"
	"github.com/AkshMaheshwari/MyEzz/services/cart"
	"github.com/AkshMaheshwari/MyEzz/services/orderapi"
	"github.com/AkshMaheshwari/MyEzz/services/orderstatus"
	"github.com/AkshMaheshwari/MyEzz/services/ordertrackevents"
	"github.com/AkshMaheshwari/MyEzz/services/realtime"
	"github.com/AkshMaheshwari/MyEzz/services/riderapi"
)

type service struct {
	orderPlacer   riderapi.Orderer
	orderFetcher  orderapi.Client
	trackingStore mystore.Store[TrackedOrder]
	channel       realtime.Channel
	publisher     mypublisher.Publisher
	subscriber    mypubsub.PubSub
	nower         mytime.Nower
	uuider        myuuid.UUIDer
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(orderPlacer riderapi.Orderer, orderFetcher orderapi.Client, trackingStore mystore.Store[TrackedOrder], channel realtime.Channel, publisher mypublisher.Publisher, subscriber mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		orderPlacer:   orderPlacer,
		orderFetcher:  orderFetcher,
		trackingStore: trackingStore,
		channel:       channel,
		publisher:     publisher,
		subscriber:    subscriber,
		nower:         nower,
		uuider:        uuider,
		logger:        logger,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, ordertrackevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", ordertrackevents.TopicName, err)
	}

	return nil
}

// subscribeToUpdates opens the live-update channel and binds the order-update
// event to this service.
func (s *service) subscribeToUpdates(c context.Context) error {
	return s.channel.Connect(c, realtime.Handlers{
		realtime.EventOrderUpdate: s.onOrderUpdate,
	})
}

func (s *service) placeOrder(c context.Context, crt cart.Cart) (TrackedOrder, error) {
	err := crt.Validate()
	if err != nil {
		return TrackedOrder{}, err
	}

	orderUID := s.uuider.Create()
	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Placing order %s for user %s with %d items", orderUID, crt.UserUID, len(crt.Items))

	groups := crt.GroupByRestaurant()
	now := s.nower.Now()

	order, err := s.orderPlacer.PlaceOrder(c, composeOrderRequest(orderUID, crt, groups))
	if err != nil {
		s.logger.Log(c, orderUID, mylog.SeverityError, "Error placing order %s: %s", orderUID, err)
		return TrackedOrder{}, err
	}

	status := order.Status
	if status == "" {
		status = string(orderstatus.StatusPlaced)
	}

	tracked := TrackedOrder{
		OrderUID:        orderUID,
		UserUID:         crt.UserUID,
		CreatedAt:       now,
		Restaurants:     groups,
		AmountInCents:   crt.TotalInCents(),
		Currency:        crt.Currency,
		PaymentMethod:   crt.PaymentMethod,
		DeliveryAddress: crt.DeliveryAddress,
		Status:          status,
		RiderUID:        order.RiderUID,
	}

	err = s.trackingStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err = s.trackingStore.Put(c, orderUID, tracked)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing order: %s", err))
		}

		err = s.publisher.Publish(c, ordertrackevents.TopicName, ordertrackevents.OrderPlaced{
			OrderUID:        orderUID,
			UserUID:         crt.UserUID,
			RestaurantCount: len(groups),
			AmountInCents:   tracked.AmountInCents,
			Currency:        tracked.Currency,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return TrackedOrder{}, err
	}

	// Live updates are nice to have: when the subscription fails the app
	// can still poll the status endpoint.
	err = s.channel.SubscribeOrder(c, orderUID)
	if err != nil {
		s.logger.Log(c, orderUID, mylog.SeverityWarn, "Error subscribing to updates of order %s: %s", orderUID, err)
	}

	return tracked, nil
}

func (s *service) getOrder(c context.Context, orderUID string) (orderPageInfo, error) {
	tracked, exists, err := s.trackingStore.Get(c, orderUID)
	if err != nil {
		return orderPageInfo{}, myerrors.NewInternalError(fmt.Errorf("error fetching order %s: %s", orderUID, err))
	}
	if !exists {
		// Not placed through this front: ask the unified-order backend
		order, err := s.orderFetcher.GetOrder(c, orderUID)
		if err != nil {
			return orderPageInfo{}, err
		}
		tracked = trackedFromUnified(order)
	}

	return orderPageInfo{
		Order:       tracked,
		StatusLabel: tracked.StatusLabel(),
	}, nil
}

func (s *service) getOrderStatus(c context.Context, orderUID string) (statusPageInfo, error) {
	tracked, exists, err := s.trackingStore.Get(c, orderUID)
	if err != nil {
		return statusPageInfo{}, myerrors.NewInternalError(fmt.Errorf("error fetching order %s: %s", orderUID, err))
	}
	if exists {
		return statusPageInfo{
			OrderUID:    tracked.OrderUID,
			Status:      tracked.Status,
			StatusLabel: tracked.StatusLabel(),
			RiderUID:    tracked.RiderUID,
			ETA:         tracked.ETA,
		}, nil
	}

	resp, err := s.orderPlacer.GetOrderStatus(c, orderUID)
	if err != nil {
		return statusPageInfo{}, err
	}

	return statusPageInfo{
		OrderUID:    resp.OrderUID,
		Status:      resp.Status,
		StatusLabel: orderstatus.FromCode(resp.Status).DisplayLabel(),
		RiderUID:    resp.RiderUID,
		ETA:         resp.ETA,
	}, nil
}

func (s *service) listOrders(c context.Context, userUID string) (orderListPageInfo, error) {
	orders, err := s.orderFetcher.ListOrdersForUser(c, userUID)
	if err != nil {
		return orderListPageInfo{}, err
	}

	summaries := []orderSummary{}
	for _, order := range orders {
		summaries = append(summaries, orderSummary{
			OrderUID:      order.OrderUID,
			Status:        order.Status,
			StatusLabel:   orderstatus.FromCode(order.Status).DisplayLabel(),
			AmountInCents: order.AmountInCents,
			Currency:      order.Currency,
			CreatedAt:     order.CreatedAt,
		})
	}

	return orderListPageInfo{Orders: summaries}, nil
}

// onOrderUpdate is bound to the realtime channel's order-update event.
func (s *service) onOrderUpdate(c context.Context, data json.RawMessage) {
	update := realtime.OrderUpdate{}
	err := json.Unmarshal(data, &update)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error parsing order update: %s", err)
		return
	}

	err = s.handleOrderUpdate(c, update)
	if err != nil {
		s.logger.Log(c, update.OrderUID, mylog.SeverityError, "Error handling update of order %s: %s", update.OrderUID, err)
	}
}

func (s *service) handleOrderUpdate(c context.Context, update realtime.OrderUpdate) error {
	s.logger.Log(c, update.OrderUID, mylog.SeverityInfo, "Order %s is now %s", update.OrderUID, update.Status)

	var oldStatus string
	err := s.trackingStore.RunInTransaction(c, func(c context.Context) error {
		tracked, exists, err := s.trackingStore.Get(c, update.OrderUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching order: %s", err))
		}
		if !exists {
			return myerrors.NewNotFoundError(fmt.Errorf("order %s is not tracked here", update.OrderUID))
		}

		oldStatus = tracked.Status
		now := s.nower.Now()
		tracked.Status = update.Status
		tracked.RiderUID = update.RiderUID
		tracked.ETA = update.ETA
		tracked.LastModified = &now

		err = s.trackingStore.Put(c, update.OrderUID, tracked)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing order: %s", err))
		}

		err = s.publisher.Publish(c, ordertrackevents.TopicName, ordertrackevents.OrderStatusChanged{
			OrderUID:  update.OrderUID,
			OldStatus: oldStatus,
			NewStatus: update.Status,
			RiderUID:  update.RiderUID,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return err
	}

	if orderstatus.FromCode(update.Status).IsTerminal() {
		err = s.channel.UnsubscribeOrder(c, update.OrderUID)
		if err != nil {
			s.logger.Log(c, update.OrderUID, mylog.SeverityWarn, "Error unsubscribing from order %s: %s", update.OrderUID, err)
		}
	}

	return nil
}

func composeOrderRequest(orderUID string, crt cart.Cart, groups []cart.RestaurantGroup) riderapi.OrderRequest {
	restaurants := []riderapi.RestaurantOrder{}
	for _, group := range groups {
		items := []riderapi.OrderItem{}
		for _, item := range group.Items {
			items = append(items, riderapi.OrderItem{
				ProductUID:   item.ProductUID,
				Name:         item.Name,
				PriceInCents: item.PriceInCents,
				Quantity:     item.Quantity,
			})
		}
		restaurants = append(restaurants, riderapi.RestaurantOrder{
			RestaurantUID:  group.RestaurantUID,
			RestaurantName: group.RestaurantName,
			Items:          items,
			ItemCount:      group.ItemCount,
			TotalInCents:   group.TotalInCents,
		})
	}

	return riderapi.OrderRequest{
		OrderUID:        orderUID,
		UserUID:         crt.UserUID,
		Restaurants:     restaurants,
		AmountInCents:   crt.TotalInCents(),
		Currency:        crt.Currency,
		PaymentMethod:   crt.PaymentMethod,
		DeliveryAddress: crt.DeliveryAddress,
		DeliveryNotes:   crt.DeliveryNotes,
	}
}

func trackedFromUnified(order orderapi.Order) TrackedOrder {
	return TrackedOrder{
		OrderUID:      order.OrderUID,
		UserUID:       order.UserUID,
		CreatedAt:     order.CreatedAt,
		AmountInCents: order.AmountInCents,
		Currency:      order.Currency,
		Status:        order.Status,
	}
}
