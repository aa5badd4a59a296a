package riderapi

import "time"

const (
	defaultPaymentMethod = "cash_on_delivery"
	defaultDeliveryNotes = "none"
)

// OrderRequest is the payload the rider backend expects. Field names follow
// that backend's wire format, not ours.
type OrderRequest struct {
	OrderUID        string            `json:"order_id"`
	UserUID         string            `json:"user_id"`
	Restaurants     []RestaurantOrder `json:"restaurants"`
	AmountInCents   int               `json:"amount"`
	Currency        string            `json:"currency"`
	PaymentMethod   string            `json:"payment_method"`
	DeliveryAddress string            `json:"delivery_address"`
	DeliveryNotes   string            `json:"delivery_notes"`
}

type RestaurantOrder struct {
	RestaurantUID  string      `json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name"`
	Items          []OrderItem `json:"items"`
	ItemCount      int         `json:"item_count"`
	TotalInCents   int         `json:"total"`
}

type OrderItem struct {
	ProductUID   string `json:"product_id"`
	Name         string `json:"name"`
	PriceInCents int    `json:"price"`
	Quantity     int    `json:"quantity"`
}

type Order struct {
	OrderUID  string    `json:"order_id"`
	Status    string    `json:"status"`
	RiderUID  string    `json:"rider_id"`
	CreatedAt time.Time `json:"created_at"`
}

type StatusResponse struct {
	OrderUID string `json:"order_id"`
	Status   string `json:"status"`
	RiderUID string `json:"rider_id"`
	ETA      string `json:"eta"`
}

// applyDefaults fills the fields the backend insists on but the app may omit.
func (r *OrderRequest) applyDefaults() {
	if r.PaymentMethod == "" {
		r.PaymentMethod = defaultPaymentMethod
	}
	if r.DeliveryNotes == "" {
		r.DeliveryNotes = defaultDeliveryNotes
	}
}
