package cart

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByRestaurant(t *testing.T) {
	testCases := []struct {
		name   string
		items  []Item
		expect []RestaurantGroup
	}{
		{
			name:   "empty cart",
			items:  []Item{},
			expect: []RestaurantGroup{},
		},
		{
			name: "single restaurant",
			items: []Item{
				{ProductUID: "p1", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 900, Quantity: 2},
				{ProductUID: "p2", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 250, Quantity: 1},
			},
			expect: []RestaurantGroup{
				{
					RestaurantUID:  "r1",
					RestaurantName: "Pizza Palace",
					Items: []Item{
						{ProductUID: "p1", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 900, Quantity: 2},
						{ProductUID: "p2", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 250, Quantity: 1},
					},
					ItemCount:    3,
					TotalInCents: 2050,
				},
			},
		},
		{
			name: "two restaurants interleaved keep first-seen order",
			items: []Item{
				{ProductUID: "p1", RestaurantUID: "r2", RestaurantName: "Wok Away", PriceInCents: 1200, Quantity: 1},
				{ProductUID: "p2", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 900, Quantity: 1},
				{ProductUID: "p3", RestaurantUID: "r2", RestaurantName: "Wok Away", PriceInCents: 300, Quantity: 2},
			},
			expect: []RestaurantGroup{
				{
					RestaurantUID:  "r2",
					RestaurantName: "Wok Away",
					Items: []Item{
						{ProductUID: "p1", RestaurantUID: "r2", RestaurantName: "Wok Away", PriceInCents: 1200, Quantity: 1},
						{ProductUID: "p3", RestaurantUID: "r2", RestaurantName: "Wok Away", PriceInCents: 300, Quantity: 2},
					},
					ItemCount:    3,
					TotalInCents: 1800,
				},
				{
					RestaurantUID:  "r1",
					RestaurantName: "Pizza Palace",
					Items: []Item{
						{ProductUID: "p2", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 900, Quantity: 1},
					},
					ItemCount:    1,
					TotalInCents: 900,
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Cart{Items: tc.items}.GroupByRestaurant()
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestTotalInCents(t *testing.T) {
	c := Cart{
		Items: []Item{
			{PriceInCents: 900, Quantity: 2},
			{PriceInCents: 250, Quantity: 3},
		},
	}
	assert.Equal(t, 2550, c.TotalInCents())
}

func TestNewFromValues(t *testing.T) {
	values := url.Values{}
	values.Set("userUid", "user-1")
	values.Set("currency", "INR")
	values.Set("deliveryAddress", "12 MG Road")
	values.Set("items[0].productUid", "p1")
	values.Set("items[0].name", "Margherita")
	values.Set("items[0].restaurantUid", "r1")
	values.Set("items[0].restaurantName", "Pizza Palace")
	values.Set("items[0].priceInCents", "900")
	values.Set("items[0].quantity", "2")

	cart, err := NewFromValues(values)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserUID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "Margherita", cart.Items[0].Name)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.NoError(t, cart.Validate())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name        string
		cart        Cart
		expectError bool
	}{
		{
			name:        "missing user",
			cart:        Cart{Items: []Item{{RestaurantUID: "r1", Quantity: 1}}},
			expectError: true,
		},
		{
			name:        "empty cart",
			cart:        Cart{UserUID: "u1"},
			expectError: true,
		},
		{
			name:        "zero quantity",
			cart:        Cart{UserUID: "u1", Items: []Item{{RestaurantUID: "r1", Quantity: 0}}},
			expectError: true,
		},
		{
			name:        "valid",
			cart:        Cart{UserUID: "u1", Items: []Item{{RestaurantUID: "r1", Quantity: 1}}},
			expectError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cart.Validate()
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormRoundTrip(t *testing.T) {
	original := Cart{
		UserUID:         "user-1",
		Currency:        "INR",
		DeliveryAddress: "12 MG Road",
		PaymentMethod:   "upi",
		Items: []Item{
			{ProductUID: "p1", Name: "Margherita", RestaurantUID: "r1", RestaurantName: "Pizza Palace", PriceInCents: 900, Quantity: 2},
			{ProductUID: "p2", Name: "Noodles", RestaurantUID: "r2", RestaurantName: "Wok Away", PriceInCents: 650, Quantity: 1},
		},
	}

	values, err := original.ToForm()
	assert.NoError(t, err)

	decoded, err := NewFromValues(values)
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
}
