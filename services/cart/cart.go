package cart

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"

	"github.com/AkshMaheshwari/MyEzz/lib/myerrors"
)

// Cart is the shape in which the app submits a shopping cart. Items can
// originate from multiple restaurants and arrive as one flat list.
type Cart struct {
	UserUID         string `form:"userUid"`
	Currency        string `form:"currency"`
	DeliveryAddress string `form:"deliveryAddress"`
	DeliveryNotes   string `form:"deliveryNotes"`
	PaymentMethod   string `form:"paymentMethod"`
	Items           []Item `form:"items"`
}

type Item struct {
	ProductUID     string `form:"productUid"`
	Name           string `form:"name"`
	RestaurantUID  string `form:"restaurantUid"`
	RestaurantName string `form:"restaurantName"`
	PriceInCents   int    `form:"priceInCents"`
	Quantity       int    `form:"quantity"`
}

func (i Item) TotalInCents() int {
	return i.PriceInCents * i.Quantity
}

// RestaurantGroup is a per-restaurant slice of the cart: the rider backend
// expects one sub-order per restaurant.
type RestaurantGroup struct {
	RestaurantUID  string
	RestaurantName string
	Items          []Item
	ItemCount      int
	TotalInCents   int
}

func NewFromRequest(r *http.Request) (Cart, error) {
	err := r.ParseForm()
	if err != nil {
		return Cart{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (Cart, error) {
	cart := Cart{}
	err := formcodec.NewDecoder().Decode(&cart, values)
	if err != nil {
		return cart, fmt.Errorf("error decoding form: %s", err)
	}

	return cart, nil
}

func (c Cart) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(c)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %s", err)
	}

	return values, nil
}

func (c Cart) Validate() error {
	if c.UserUID == "" {
		return myerrors.NewInvalidInputErrorf("missing userUid")
	}
	if len(c.Items) == 0 {
		return myerrors.NewInvalidInputErrorf("cart is empty")
	}
	for idx, item := range c.Items {
		if item.RestaurantUID == "" {
			return myerrors.NewInvalidInputErrorf("item %d: missing restaurantUid", idx)
		}
		if item.Quantity <= 0 {
			return myerrors.NewInvalidInputErrorf("item %d: quantity must be positive", idx)
		}
	}

	return nil
}

// GroupByRestaurant splits the flat item list into one group per restaurant
// with a per-group item count and total. Groups appear in the order in which
// their restaurant is first encountered and items keep their cart order.
func (c Cart) GroupByRestaurant() []RestaurantGroup {
	groups := []RestaurantGroup{}
	indexOnUID := map[string]int{}

	for _, item := range c.Items {
		idx, exists := indexOnUID[item.RestaurantUID]
		if !exists {
			groups = append(groups, RestaurantGroup{
				RestaurantUID:  item.RestaurantUID,
				RestaurantName: item.RestaurantName,
			})
			idx = len(groups) - 1
			indexOnUID[item.RestaurantUID] = idx
		}

		groups[idx].Items = append(groups[idx].Items, item)
		groups[idx].ItemCount += item.Quantity
		groups[idx].TotalInCents += item.TotalInCents()
	}

	return groups
}

func (c Cart) TotalInCents() int {
	total := 0
	for _, item := range c.Items {
		total += item.TotalInCents()
	}

	return total
}
