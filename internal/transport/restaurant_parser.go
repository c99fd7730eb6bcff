package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/domain"
)

// restaurantPayload is the explicit allow-list of restaurant fields accepted
// from a request body. Anything else in the payload is silently dropped.
type restaurantPayload struct {
	PhotoURL string        `json:"photo_url" validate:"required"`
	Name     string        `json:"name" validate:"required"`
	Address  string        `json:"address" validate:"required"`
	Hours    []hourPayload `json:"hours"`
}

// hourPayload is a tentative day/start/end window before validation.
// Day is a pointer so that day 0 (Sunday) is distinguishable from absent.
type hourPayload struct {
	Day   *int   `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

var restaurantFieldMessages = map[string]string{
	"PhotoURL": "Photo url is required",
	"Name":     "Name is required",
	"Address":  "Address is required",
}

// parseRestaurantHour validates one working-hour window of a restaurant.
// Start and end must be exactly 5 characters, the 'HH:mm' length.
func parseRestaurantHour(hour hourPayload) (domain.RestaurantDay, error) {
	if hour.Day == nil {
		return domain.RestaurantDay{}, errors.New("Day is required")
	}
	if len(hour.Start) != 5 {
		return domain.RestaurantDay{}, fmt.Errorf("Start time '%s' is invalid, must be in format HH:mm", hour.Start)
	}
	if len(hour.End) != 5 {
		return domain.RestaurantDay{}, fmt.Errorf("End time '%s' is invalid, must be in format HH:mm", hour.End)
	}

	return domain.RestaurantDay{
		Day:   *hour.Day,
		Start: hour.Start,
		End:   hour.End,
	}, nil
}

// parseRestaurant whitelists and validates an inbound restaurant payload.
// An empty body fails with "Restaurant not provided"; any field failure is
// wrapped as "Invalid restaurant" with the failing rule's message as detail.
func parseRestaurant(body []byte) (*domain.Restaurant, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apierror.NewNotProvided("Restaurant not provided")
	}
	keyCount, err := payloadKeyCount(body)
	if err != nil {
		return nil, apierror.NewValidation("Invalid restaurant", err.Error())
	}
	if keyCount == 0 {
		return nil, apierror.NewNotProvided("Restaurant not provided")
	}

	var payload restaurantPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apierror.NewValidation("Invalid restaurant", err.Error())
	}

	if err := validate.Struct(payload); err != nil {
		return nil, apierror.NewValidation("Invalid restaurant", firstValidationMessage(err, restaurantFieldMessages))
	}

	hours := make([]domain.RestaurantDay, 0, len(payload.Hours))
	for _, bodyHour := range payload.Hours {
		hour, err := parseRestaurantHour(bodyHour)
		if err != nil {
			return nil, apierror.NewValidation("Invalid restaurant", err.Error())
		}
		hours = append(hours, hour)
	}

	return &domain.Restaurant{
		PhotoURL: payload.PhotoURL,
		Name:     payload.Name,
		Address:  payload.Address,
		Hours:    hours,
	}, nil
}
