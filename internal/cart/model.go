package cart

// Item is a single cart line. Immutable once added; edits replace the line.
type Item struct {
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Discount  int     `json:"discount"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
}

type CustomerData struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Commune        string `json:"commune"`
	ShippingStreet string `json:"shipping_street"`
}

// Cart is the persisted shopping state. Products keep insertion order,
// which is also display order.
type Cart struct {
	Products     []Item       `json:"products"`
	CustomerData CustomerData `json:"customer_data"`
}

// Clone returns a deep copy so callers can hand the cart across a network
// boundary without racing later edits.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Products = make([]Item, len(c.Products))
	copy(cp.Products, c.Products)
	return &cp
}
