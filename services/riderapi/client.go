package riderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/myhttpclient"
)

type httpOrderer struct {
	baseURL    string
	httpClient myhttpclient.HTTPSender
}

func NewClient(baseURL string, httpClient myhttpclient.HTTPSender) (Orderer, error) {
	if baseURL == "" {
		return nil, myerrors.NewInvalidInputError(fmt.Errorf("missing rider-api base-url"))
	}

	return &httpOrderer{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

func (o *httpOrderer) PlaceOrder(c context.Context, req OrderRequest) (Order, error) {
	req.applyDefaults()

	body, err := json.Marshal(req)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error marshalling order %s: %s", req.OrderUID, err))
	}

	url := fmt.Sprintf("%s/api/orders", o.baseURL)
	httpStatus, respBody, err := o.httpClient.Send(c, http.MethodPost, url, body)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error placing order %s: %s", req.OrderUID, err))
	}
	if httpStatus != http.StatusOK && httpStatus != http.StatusCreated {
		return Order{}, newErrorOnStatus(httpStatus, fmt.Errorf("error placing order %s: http-status %d", req.OrderUID, httpStatus))
	}

	order := Order{}
	err = json.Unmarshal(respBody, &order)
	if err != nil {
		return Order{}, myerrors.NewInternalError(fmt.Errorf("error parsing order response: %s", err))
	}

	return order, nil
}

func (o *httpOrderer) GetOrderStatus(c context.Context, orderUID string) (StatusResponse, error) {
	url := fmt.Sprintf("%s/api/orders/%s/status", o.baseURL, orderUID)
	httpStatus, respBody, err := o.httpClient.Send(c, http.MethodGet, url, nil)
	if err != nil {
		return StatusResponse{}, myerrors.NewInternalError(fmt.Errorf("error fetching status of order %s: %s", orderUID, err))
	}
	if httpStatus != http.StatusOK {
		return StatusResponse{}, newErrorOnStatus(httpStatus, fmt.Errorf("error fetching status of order %s: http-status %d", orderUID, httpStatus))
	}

	resp := StatusResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return StatusResponse{}, myerrors.NewInternalError(fmt.Errorf("error parsing status response: %s", err))
	}

	return resp, nil
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
