package shipping

// Quote is a single courier offer. It lives only in checkout memory and is
// never persisted; at most one quote is selected at a time.
type Quote struct {
	Courier string  `json:"courier"`
	Price   float64 `json:"price"`
}
