package riderapi

import (
	"context"
)

//go:generate mockgen -source=api.go -package riderapi -destination orderer_mock.go Orderer
type Orderer interface {
	PlaceOrder(c context.Context, req OrderRequest) (Order, error)
	GetOrderStatus(c context.Context, orderUID string) (StatusResponse, error)
}
