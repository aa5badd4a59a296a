package orderapi

import "time"

const defaultOrderType = "delivery"

// OrderRequest is the payload for the unified-order backend. That backend
// aggregates orders of every kind, hence the order-type discriminator.
type OrderRequest struct {
	OrderUID        string      `json:"orderId"`
	UserUID         string      `json:"userId"`
	OrderType       string      `json:"orderType"`
	Items           []OrderItem `json:"items"`
	AmountInCents   int         `json:"totalAmount"`
	Currency        string      `json:"currency"`
	DeliveryAddress string      `json:"deliveryAddress"`
}

type OrderItem struct {
	ProductUID    string `json:"productId"`
	Name          string `json:"productName"`
	RestaurantUID string `json:"vendorId"`
	PriceInCents  int    `json:"unitPrice"`
	Quantity      int    `json:"quantity"`
}

type Order struct {
	OrderUID      string      `json:"orderId"`
	UserUID       string      `json:"userId"`
	OrderType     string      `json:"orderType"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	AmountInCents int         `json:"totalAmount"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"createdAt"`
}

func (r *OrderRequest) applyDefaults() {
	if r.OrderType == "" {
		r.OrderType = defaultOrderType
	}
}
