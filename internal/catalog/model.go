package catalog

// Product is the slice of the upstream catalog entry this system consumes.
// Stock and Rating feed the quoting side's effective-stock check.
type Product struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Stock     int     `json:"stock"`
	Rating    float64 `json:"rating"`
}
