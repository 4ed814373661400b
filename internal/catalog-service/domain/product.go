package domain

type Product struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"` // minor units
	Currency      string  `json:"currency"`
	Category      string  `json:"category,omitempty"`
	ImageURL      string  `json:"image_url,omitempty"`
	InStock       bool    `json:"in_stock"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}
