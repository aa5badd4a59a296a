package ordertrack

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/AkshMaheshwari/MyEzz/lib/myevents"
	"github.com/AkshMaheshwari/MyEzz/lib/mypublisher"
	"github.com/AkshMaheshwari/MyEzz/lib/mypubsub"
	"github.com/AkshMaheshwari/MyEzz/lib/mystore"
	"github.com/AkshMaheshwari/MyEzz/lib/mytime"
	"github.com/AkshMaheshwari/MyEzz/lib/myuuid"
	"github.com/AkshMaheshwari/MyEzz/services/cart"
	"github.com/AkshMaheshwari/MyEzz/services/orderapi"
	"github.com/AkshMaheshwari/MyEzz/services/ordertrackevents"
	"github.com/AkshMaheshwari/MyEzz/services/realtime"
	"github.com/AkshMaheshwari/MyEzz/services/riderapi"
)

const cartForm = `userUid=user-1&currency=INR&deliveryAddress=12 MG Road&paymentMethod=upi` +
	`&items[0].productUid=p1&items[0].name=Margherita&items[0].restaurantUid=r1&items[0].restaurantName=Pizza Palace&items[0].priceInCents=900&items[0].quantity=2` +
	`&items[1].productUid=p2&items[1].name=Noodles&items[1].restaurantUid=r2&items[1].restaurantName=Wok Away&items[1].priceInCents=650&items[1].quantity=1`

func TestPlaceOrder(t *testing.T) {

	t.Run("Place order groups cart and forwards it", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, orderPlacer, _, channel, publisher, nower, uuider, _ := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("123")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		orderPlacer.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(c context.Context, req riderapi.OrderRequest) (riderapi.Order, error) {
				assert.Equal(t, "123", req.OrderUID)
				assert.Equal(t, "user-1", req.UserUID)
				assert.Equal(t, 2450, req.AmountInCents)
				assert.Len(t, req.Restaurants, 2)
				assert.Equal(t, "r1", req.Restaurants[0].RestaurantUID)
				assert.Equal(t, 1800, req.Restaurants[0].TotalInCents)
				assert.Equal(t, "r2", req.Restaurants[1].RestaurantUID)
				assert.Equal(t, 650, req.Restaurants[1].TotalInCents)
				return riderapi.Order{OrderUID: "123", Status: "placed"}, nil
			})
		publisher.EXPECT().Publish(gomock.Any(), ordertrackevents.TopicName, ordertrackevents.OrderPlaced{
			OrderUID:        "123",
			UserUID:         "user-1",
			RestaurantCount: 2,
			AmountInCents:   2450,
			Currency:        "INR",
		}).Return(nil)
		channel.EXPECT().SubscribeOrder(gomock.Any(), "123").Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPost, "/api/order", strings.NewReader(cartForm))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"StatusLabel": "Order placed"`)

		tracked, exists, _ := storer.Get(ctx, "123")
		assert.True(t, exists)
		assert.Equal(t, "user-1", tracked.UserUID)
		assert.Equal(t, 2450, tracked.AmountInCents)
		assert.Len(t, tracked.Restaurants, 2)
	})

	t.Run("Backend error propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, orderPlacer, _, _, _, nower, uuider, _ := setup(t, ctrl)

		uuider.EXPECT().Create().Return("124")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		orderPlacer.EXPECT().PlaceOrder(gomock.Any(), gomock.Any()).
			Return(riderapi.Order{}, assert.AnError)

		request, _ := http.NewRequest(http.MethodPost, "/api/order", strings.NewReader(cartForm))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 500, response.Code)
	})

	t.Run("Invalid cart is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _, _, _, _, _, _ := setup(t, ctrl)

		request, _ := http.NewRequest(http.MethodPost, "/api/order", strings.NewReader("userUid=user-1"))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 400, response.Code)
	})
}

func TestGetOrder(t *testing.T) {

	t.Run("Tracked order is served from the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _, _, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", TrackedOrder{OrderUID: "123", UserUID: "user-1", Status: "preparing"})

		request, _ := http.NewRequest(http.MethodGet, "/api/order/123", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"StatusLabel": "Your food is being prepared"`)
	})

	t.Run("Unknown order falls back to the unified backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, orderFetcher, _, _, _, _, _ := setup(t, ctrl)

		orderFetcher.EXPECT().GetOrder(gomock.Any(), "999").
			Return(orderapi.Order{OrderUID: "999", Status: "delivered"}, nil)

		request, _ := http.NewRequest(http.MethodGet, "/api/order/999", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"StatusLabel": "Delivered"`)
	})
}

func TestGetOrderStatus(t *testing.T) {

	t.Run("Cached status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, _, _, _, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", TrackedOrder{OrderUID: "123", Status: "on_the_way", RiderUID: "rider-7", ETA: "12 min"})

		request, _ := http.NewRequest(http.MethodGet, "/api/order/123/status", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"StatusLabel": "On the way"`)
		assert.Contains(t, response.Body.String(), `"RiderUID": "rider-7"`)
	})

	t.Run("Uncached status is fetched from the rider backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, orderPlacer, _, _, _, _, _, _ := setup(t, ctrl)

		orderPlacer.EXPECT().GetOrderStatus(gomock.Any(), "999").
			Return(riderapi.StatusResponse{OrderUID: "999", Status: "ready"}, nil)

		request, _ := http.NewRequest(http.MethodGet, "/api/order/999/status", nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"StatusLabel": "Ready for pickup"`)
	})
}

func TestListOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, router, _, _, orderFetcher, _, _, _, _, _ := setup(t, ctrl)

	orderFetcher.EXPECT().ListOrdersForUser(gomock.Any(), "user-1").
		Return([]orderapi.Order{
			{OrderUID: "123", Status: "delivered", AmountInCents: 2450, Currency: "INR"},
			{OrderUID: "124", Status: "placed", AmountInCents: 900, Currency: "INR"},
		}, nil)

	request, _ := http.NewRequest(http.MethodGet, "/api/orders/user-1", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `"OrderUID": "123"`)
	assert.Contains(t, response.Body.String(), `"OrderUID": "124"`)
}

func TestOrderUpdate(t *testing.T) {

	t.Run("Update is stored and published", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, _, storer, _, _, _, publisher, nower, _, handlers := setup(t, ctrl)

		storer.Put(ctx, "123", TrackedOrder{OrderUID: "123", UserUID: "user-1", Status: "preparing"})

		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), ordertrackevents.TopicName, ordertrackevents.OrderStatusChanged{
			OrderUID:  "123",
			OldStatus: "preparing",
			NewStatus: "on_the_way",
			RiderUID:  "rider-7",
		}).Return(nil)

		payload, _ := json.Marshal(realtime.OrderUpdate{OrderUID: "123", Status: "on_the_way", RiderUID: "rider-7", ETA: "12 min"})
		handlers[realtime.EventOrderUpdate](ctx, payload)

		tracked, exists, _ := storer.Get(ctx, "123")
		assert.True(t, exists)
		assert.Equal(t, "on_the_way", tracked.Status)
		assert.Equal(t, "rider-7", tracked.RiderUID)
		assert.Equal(t, "12 min", tracked.ETA)
		assert.NotNil(t, tracked.LastModified)
	})

	t.Run("Terminal update unsubscribes the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, _, storer, _, _, channel, publisher, nower, _, handlers := setup(t, ctrl)

		storer.Put(ctx, "123", TrackedOrder{OrderUID: "123", Status: "on_the_way"})

		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), ordertrackevents.TopicName, gomock.Any()).Return(nil)
		channel.EXPECT().UnsubscribeOrder(gomock.Any(), "123").Return(nil)

		payload, _ := json.Marshal(realtime.OrderUpdate{OrderUID: "123", Status: "delivered"})
		handlers[realtime.EventOrderUpdate](ctx, payload)

		tracked, _, _ := storer.Get(ctx, "123")
		assert.Equal(t, "delivered", tracked.Status)
	})

	t.Run("Update for untracked order is dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, _, _, _, _, _, _, _, _, handlers := setup(t, ctrl)

		payload, _ := json.Marshal(realtime.OrderUpdate{OrderUID: "999", Status: "delivered"})
		handlers[realtime.EventOrderUpdate](ctx, payload)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[TrackedOrder], *riderapi.MockOrderer, *orderapi.MockClient, *realtime.MockChannel, *mypublisher.MockPublisher, *mytime.MockNower, *myuuid.MockUUIDer, realtime.Handlers) {
	c := context.TODO()
	storer, _, _ := mystore.NewInMemoryStore[TrackedOrder](c)
	orderPlacer := riderapi.NewMockOrderer(ctrl)
	orderFetcher := orderapi.NewMockClient(ctrl)
	channel := realtime.NewMockChannel(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	subscriber := mypubsub.NewMockPubSub(ctrl)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)

	sut := NewWebService(orderPlacer, orderFetcher, storer, channel, publisher, subscriber, nower, uuider)
	router := mux.NewRouter()

	// These are called by the following call to RegisterEndpoints
	var handlers realtime.Handlers
	publisher.EXPECT().CreateTopic(c, ordertrackevents.TopicName).Return(nil)
	subscriber.EXPECT().Subscribe(c, ordertrackevents.TopicName, gomock.Any()).Return(nil)
	channel.EXPECT().Connect(c, gomock.Any()).DoAndReturn(
		func(c context.Context, h realtime.Handlers) error {
			handlers = h
			return nil
		})

	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, orderPlacer, orderFetcher, channel, publisher, nower, uuider, handlers
}

func TestEventEndpoint(t *testing.T) {

	t.Run("Order-placed event mirrors the order to the unified backend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, router, storer, _, orderFetcher, _, _, _, _, _ := setup(t, ctrl)

		storer.Put(ctx, "123", TrackedOrder{
			OrderUID:      "123",
			UserUID:       "user-1",
			AmountInCents: 1800,
			Currency:      "INR",
			Restaurants: []cart.RestaurantGroup{
				{
					RestaurantUID: "r1",
					Items: []cart.Item{
						{ProductUID: "p1", Name: "Margherita", RestaurantUID: "r1", PriceInCents: 900, Quantity: 2},
					},
				},
			},
		})

		orderFetcher.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).DoAndReturn(
			func(c context.Context, req orderapi.OrderRequest) (orderapi.Order, error) {
				assert.Equal(t, "123", req.OrderUID)
				assert.Equal(t, "user-1", req.UserUID)
				assert.Equal(t, 1800, req.AmountInCents)
				assert.Len(t, req.Items, 1)
				assert.Equal(t, "p1", req.Items[0].ProductUID)
				return orderapi.Order{OrderUID: "123"}, nil
			})

		body := composeEventRequest(t, ordertrackevents.OrderPlaced{
			OrderUID:        "123",
			UserUID:         "user-1",
			RestaurantCount: 1,
			AmountInCents:   1800,
			Currency:        "INR",
		})
		request, _ := http.NewRequest(http.MethodPost, "/ordertrack/event", bytes.NewReader(body))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
	})

	t.Run("Order-placed event for untracked order is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _, _, _, _, _, _ := setup(t, ctrl)

		body := composeEventRequest(t, ordertrackevents.OrderPlaced{OrderUID: "999"})
		request, _ := http.NewRequest(http.MethodPost, "/ordertrack/event", bytes.NewReader(body))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 404, response.Code)
	})

	t.Run("Status-changed event is acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _, _, _, _, _, _ := setup(t, ctrl)

		body := composeEventRequest(t, ordertrackevents.OrderStatusChanged{
			OrderUID:  "123",
			OldStatus: "preparing",
			NewStatus: "on_the_way",
		})
		request, _ := http.NewRequest(http.MethodPost, "/ordertrack/event", bytes.NewReader(body))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code)
	})
}

func composeEventRequest(t *testing.T, event myevents.Event) []byte {
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	envelope, err := json.Marshal(myevents.EventEnvelope{
		Topic:         ordertrackevents.TopicName,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	})
	assert.NoError(t, err)

	body, err := json.Marshal(myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: envelope,
		},
	})
	assert.NoError(t, err)

	return body
}
