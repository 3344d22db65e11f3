package events

import "time"

// OrderPlaced is emitted when the shopper finalizes an order. The order
// itself is not stored server-side; this event is the only trace it leaves.
type OrderPlaced struct {
	EventType     string      `json:"eventType"`
	OrderID       string      `json:"orderId"`
	Courier       string      `json:"courier"`
	ShippingPrice float64     `json:"shippingPrice"`
	Total         float64     `json:"totalAmount"`
	Items         []OrderItem `json:"items"`
	Timestamp     time.Time   `json:"timestamp"`
}

type OrderItem struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Discount  int     `json:"discount"`
}
