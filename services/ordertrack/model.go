package ordertrack

import (
	"time"

	"github.com/AkshMaheshwari/MyEzz/services/cart"
	"github.com/AkshMaheshwari/MyEzz/services/orderstatus"
)

// TrackedOrder is the locally kept view of an order that was placed through
// this front. It caches the last status pushed over the realtime channel so
// the app does not hit the backend for every status question.
type TrackedOrder struct {
	OrderUID        string
	UserUID         string
	CreatedAt       time.Time
	LastModified    *time.Time
	Restaurants     []cart.RestaurantGroup
	AmountInCents   int
	Currency        string
	PaymentMethod   string
	DeliveryAddress string
	Status          string
	RiderUID        string
	ETA             string
}

func (o TrackedOrder) StatusLabel() string {
	return orderstatus.FromCode(o.Status).DisplayLabel()
}

func (o TrackedOrder) IsDone() bool {
	return orderstatus.FromCode(o.Status).IsTerminal()
}

// orderPageInfo is what the order endpoints return to the app.
type orderPageInfo struct {
	Order       TrackedOrder
	StatusLabel string
}

type orderListPageInfo struct {
	Orders []orderSummary
}

type orderSummary struct {
	OrderUID      string
	Status        string
	StatusLabel   string
	AmountInCents int
	Currency      string
	CreatedAt     time.Time
}

type statusPageInfo struct {
	OrderUID    string
	Status      string
	StatusLabel string
	RiderUID    string
	ETA         string
}
