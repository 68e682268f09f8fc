package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID       string  `json:"productId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	OfferPercentage float64 `json:"offerPercentage"`
	Quantity        int     `json:"quantity"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	Category        string  `json:"category,omitempty"`
}
