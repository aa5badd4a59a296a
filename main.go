package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/AkshMaheshwari/MyEzz/lib/myhttpclient"
	"github.com/AkshMaheshwari/MyEzz/lib/mypublisher"
	"github.com/AkshMaheshwari/MyEzz/lib/mypubsub"
	"github.com/AkshMaheshwari/MyEzz/lib/myqueue"
	"github.com/AkshMaheshwari/MyEzz/lib/mystore"
	"github.com/AkshMaheshwari/MyEzz/lib/mytime"
	"github.com/AkshMaheshwari/MyEzz/lib/myuuid"
	"github.com/AkshMaheshwari/MyEzz/services/orderapi"
	"github.com/AkshMaheshwari/MyEzz/services/ordertrack"
	"github.com/AkshMaheshwari/MyEzz/services/realtime"
	"github.com/AkshMaheshwari/MyEzz/services/riderapi"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	trackingStore, storeCleanup, err := mystore.New[ordertrack.TrackedOrder](c)
	if err != nil {
		log.Fatalf("Error creating order tracking store: %s", err)
	}
	defer storeCleanup()

	httpClient := myhttpclient.New()

	riderClient, err := riderapi.NewClient(os.Getenv("RIDER_API_URL"), httpClient)
	if err != nil {
		log.Fatalf("Error creating rider-api client: %s", err)
	}

	orderClient, err := orderapi.NewClient(os.Getenv("ORDER_API_URL"), httpClient)
	if err != nil {
		log.Fatalf("Error creating order-api client: %s", err)
	}

	channel := realtime.New(os.Getenv("REALTIME_URL"), os.Getenv("REALTIME_API_KEY"))

	orderTrackService := ordertrack.NewWebService(riderClient, orderClient, trackingStore, channel, publisher, pubsub, nower, uuider)
	err = orderTrackService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error starting ordertrack service: %s", err)
	}
	defer channel.Disconnect(c)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
