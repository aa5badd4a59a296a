package orderapi

import (
	"context"
)

//go:generate mockgen -source=api.go -package orderapi -destination client_mock.go Client
type Client interface {
	CreateOrder(c context.Context, req OrderRequest) (Order, error)
	GetOrder(c context.Context, orderUID string) (Order, error)
	ListOrdersForUser(c context.Context, userUID string) ([]Order, error)
}
