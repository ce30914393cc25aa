package catalog

// Product is one entry of the personal catalog. The whole collection is
// persisted as a single JSON array in one storage slot.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// Image is either a data-URI (upload still pending) or the resolved
	// URL on the media host.
	Image         string `json:"image"`
	ImagePublicID string `json:"imagePublicId,omitempty"`

	Variants []Variant `json:"variants"`
}

// Variant is a purchasable configuration of a Product. Variant ids are
// globally unique, not just unique within their product.
type Variant struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}
