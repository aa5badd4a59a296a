package orderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/myhttpclient"
)

type httpClient struct {
	baseURL string
	sender  myhttpclient.HTTPSender
}

func NewClient(baseURL string, sender myhttpclient.HTTPSender) (Client, error) {
	if baseURL == "" {
		return nil, myerrors.NewInvalidInputError(fmt.Errorf("missing order-api base-url"))
	}

	return &httpClient{
		baseURL: baseURL,
		sender:  sender,
	}, nil
}

func (o *httpClient) CreateOrder(c context.Context, req OrderRequest) (Order, error) {
	req.applyDefaults()

	body, err := json.Marshal(req)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error marshalling order %s: %s", req.OrderUID, err))
	}

	httpStatus, respBody, err := o.sender.Send(c, http.MethodPost, fmt.Sprintf("%s/api/unified/orders", o.baseURL), body)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error creating order %s: %s", req.OrderUID, err))
	}
	if httpStatus != http.StatusOK && httpStatus != http.StatusCreated {
		return Order{}, newErrorOnStatus(httpStatus, fmt.Errorf("error creating order %s: http-status %d", req.OrderUID, httpStatus))
	}

	return parseOrder(respBody)
}

func (o *httpClient) GetOrder(c context.Context, orderUID string) (Order, error) {
	httpStatus, respBody, err := o.sender.Send(c, http.MethodGet, fmt.Sprintf("%s/api/unified/orders/%s", o.baseURL, orderUID), nil)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error fetching order %s: %s", orderUID, err))
	}
	if httpStatus != http.StatusOK {
		return Order{}, newErrorOnStatus(httpStatus, fmt.Errorf("error fetching order %s: http-status %d", orderUID, httpStatus))
	}

	return parseOrder(respBody)
}

func (o *httpClient) ListOrdersForUser(c context.Context, userUID string) ([]Order, error) {
	u := fmt.Sprintf("%s/api/unified/orders?userId=%s", o.baseURL, url.QueryEscape(userUID))
	httpStatus, respBody, err := o.sender.Send(c, http.MethodGet, u, nil)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing orders of user %s: %s", userUID, err))
	}
	if httpStatus != http.StatusOK {
		return nil, newErrorOnStatus(httpStatus, fmt.Errorf("error listing orders of user %s: http-status %d", userUID, httpStatus))
	}

	orders := []Order{}
	err = json.Unmarshal(respBody, &orders)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error parsing order-list response: %s", err))
	}

	return orders, nil
}

func parseOrder(respBody []byte) (Order, error) {
	order := Order{}
	err := json.Unmarshal(respBody, &order)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error parsing order response: %s", err))
	}

	return order, nil
}

func newErrorOnStatus(httpStatus int, err error) error {
	switch httpStatus {
	case http.StatusNotFound:
		return myerrors.NewNotFoundError(err)
	case http.StatusForbidden, http.StatusUnauthorized:
		return myerrors.NewAuthenticationError(err)
	case http.StatusBadRequest:
		return myerrors.NewInvalidInputError(err)
	default:
		return myerrors.NewInternalError(err)
	}
}
