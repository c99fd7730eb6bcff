package domain

// Restaurant represents a managed restaurant with its weekly working hours.
type Restaurant struct {
	ID       int             `json:"id,omitempty" db:"id"`
	PhotoURL string          `json:"photo_url" db:"photo_url"`
	Name     string          `json:"name" db:"name"`
	Address  string          `json:"address" db:"address"`
	Hours    []RestaurantDay `json:"hours"`
}

// RestaurantDay is a single working-hour window of a restaurant.
// Day is 0-6 (Sunday to Saturday); Start and End follow the format 'HH:mm'.
type RestaurantDay struct {
	ID           int    `json:"id,omitempty" db:"id"`
	RestaurantID int    `json:"restaurant_id,omitempty" db:"restaurant_id"`
	Day          int    `json:"day" db:"day"`
	Start        string `json:"start" db:"start"`
	End          string `json:"end" db:"end"`
}
