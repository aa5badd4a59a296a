package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
	"github.com/AkshMaheshwari/MyEzz/lib/myhttpclient"
)

func TestCreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	client, err := NewClient("http://unified.backend", sender)
	assert.NoError(t, err)

	t.Run("Defaults order type", func(t *testing.T) {
		var sentBody []byte
		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, "http://unified.backend/api/unified/orders", gomock.Any()).
			DoAndReturn(func(c context.Context, method, url string, body []byte) (int, []byte, error) {
				sentBody = body
				return http.StatusCreated, []byte(`{"orderId":"123","status":"placed"}`), nil
			})

		order, err := client.CreateOrder(c, OrderRequest{OrderUID: "123", UserUID: "user-1"})
		assert.NoError(t, err)
		assert.Equal(t, "123", order.OrderUID)

		sent := map[string]any{}
		assert.NoError(t, json.Unmarshal(sentBody, &sent))
		assert.Equal(t, "delivery", sent["orderType"])
		assert.Equal(t, "user-1", sent["userId"])
	})

	t.Run("Error propagates", func(t *testing.T) {
		sender.EXPECT().
			Send(gomock.Any(), http.MethodPost, "http://unified.backend/api/unified/orders", gomock.Any()).
			Return(http.StatusServiceUnavailable, []byte(`{}`), nil)

		_, err := client.CreateOrder(c, OrderRequest{OrderUID: "124"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, myerrors.GetHttpStatus(err))
	})
}

func TestGetOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	client, _ := NewClient("http://unified.backend", sender)

	sender.EXPECT().
		Send(gomock.Any(), http.MethodGet, "http://unified.backend/api/unified/orders/123", gomock.Nil()).
		Return(http.StatusOK, []byte(`{"orderId":"123","status":"preparing","totalAmount":2050}`), nil)

	order, err := client.GetOrder(c, "123")
	assert.NoError(t, err)
	assert.Equal(t, "preparing", order.Status)
	assert.Equal(t, 2050, order.AmountInCents)
}

func TestListOrdersForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	client, _ := NewClient("http://unified.backend", sender)

	t.Run("Success", func(t *testing.T) {
		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, "http://unified.backend/api/unified/orders?userId=user-1", gomock.Nil()).
			Return(http.StatusOK, []byte(`[{"orderId":"123"},{"orderId":"124"}]`), nil)

		orders, err := client.ListOrdersForUser(c, "user-1")
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("User uid is escaped", func(t *testing.T) {
		sender.EXPECT().
			Send(gomock.Any(), http.MethodGet, "http://unified.backend/api/unified/orders?userId=a%2Fb", gomock.Nil()).
			Return(http.StatusOK, []byte(`[]`), nil)

		orders, err := client.ListOrdersForUser(c, "a/b")
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})
}
