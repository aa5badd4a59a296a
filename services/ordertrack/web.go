package ordertrack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AkshMaheshwari/MyEzz/lib/mycontext"
	"github.com/AkshMaheshwari/MyEzz/lib/myhttp"
	"github.com/AkshMaheshwari/MyEzz/lib/mylog"
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

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(orderPlacer riderapi.Orderer, orderFetcher orderapi.Client, trackingStore mystore.Store[TrackedOrder], channel realtime.Channel, publisher mypublisher.Publisher, subscriber mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("ordertrack")
	return &webService{
		service: newService(orderPlacer, orderFetcher, trackingStore, channel, publisher, subscriber, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/order", s.placeOrderPage()).Methods("POST")
	router.HandleFunc("/api/order/{orderUID}", s.orderDetailsPage()).Methods("GET")
	router.HandleFunc("/api/order/{orderUID}/status", s.orderStatusPage()).Methods("GET")
	router.HandleFunc("/api/orders/{userUID}", s.orderListPage()).Methods("GET")
	router.HandleFunc("/ordertrack/event", s.eventPage()).Methods("POST")

	err := s.service.CreateTopics(c)
	if err != nil {
		return fmt.Errorf("error creating topics: %s", err)
	}

	err = s.service.Subscribe(c)
	if err != nil {
		return fmt.Errorf("error subscribing to events: %s", err)
	}

	err = s.service.subscribeToUpdates(c)
	if err != nil {
		return fmt.Errorf("error connecting to realtime server: %s", err)
	}

	return nil
}

func (s *webService) eventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := ordertrackevents.DispatchEvent(c, r.Body, s.service)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *webService) placeOrderPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		submittedCart, err := cart.NewFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		order, err := s.service.placeOrder(c, submittedCart)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orderPageInfo{
			Order:       order,
			StatusLabel: order.StatusLabel(),
		})
	}
}

func (s *webService) orderDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orderUID := mux.Vars(r)["orderUID"]

		pageInfo, err := s.service.getOrder(c, orderUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, pageInfo)
	}
}

func (s *webService) orderStatusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orderUID := mux.Vars(r)["orderUID"]

		pageInfo, err := s.service.getOrderStatus(c, orderUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, pageInfo)
	}
}

func (s *webService) orderListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		userUID := mux.Vars(r)["userUID"]

		pageInfo, err := s.service.listOrders(c, userUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, pageInfo)
	}
}
