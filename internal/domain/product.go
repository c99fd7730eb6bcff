package domain

// Product represents a product sold by a restaurant.
type Product struct {
	ID           int         `json:"id,omitempty" db:"id"`
	RestaurantID int         `json:"restaurant_id" db:"restaurant_id"`
	PhotoURL     string      `json:"photo_url" db:"photo_url"`
	Name         string      `json:"name" db:"name"`
	Category     string      `json:"category" db:"category"`
	Price        float64     `json:"price" db:"price"`
	Promotions   []Promotion `json:"promotions"`
}

// Promotion is a time-scoped price promotion of a product.
type Promotion struct {
	ID          int            `json:"id,omitempty" db:"id"`
	ProductID   int            `json:"product_id,omitempty" db:"product_id"`
	Description string         `json:"description" db:"description"`
	Price       float64        `json:"price" db:"price"`
	Hours       []PromotionDay `json:"hours"`
}

// PromotionDay is a single hour window in which a promotion is active.
// Day is 0-6 (Sunday to Saturday); Start and End follow the format 'HH:mm'.
type PromotionDay struct {
	ID          int    `json:"id,omitempty" db:"id"`
	PromotionID int    `json:"promotion_id,omitempty" db:"promotion_id"`
	Day         int    `json:"day" db:"day"`
	Start       string `json:"start" db:"start"`
	End         string `json:"end" db:"end"`
}
