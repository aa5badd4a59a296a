package mypublisher

import (
	"context"

	"github.com/AkshMaheshwari/MyEzz/lib/myevents"

	"github.com/gorilla/mux"
)

//go:generate mockgen -source=publisher_api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	RegisterEndpoints(c context.Context, router *mux.Router)
	CreateTopic(c context.Context, topicName string) error
	Publish(c context.Context, topic string, event myevents.Event) error
}
