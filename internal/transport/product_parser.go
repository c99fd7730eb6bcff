package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/domain"
)

// productPayload is the explicit allow-list of product fields accepted from a
// request body. The restaurant id always comes from the route, never the body.
type productPayload struct {
	PhotoURL   string             `json:"photo_url" validate:"required"`
	Name       string             `json:"name" validate:"required"`
	Category   string             `json:"category" validate:"required"`
	Price      *float64           `json:"price" validate:"required"`
	Promotions []promotionPayload `json:"promotions"`
}

type promotionPayload struct {
	Description string        `json:"description"`
	Price       *float64      `json:"price"`
	Hours       []hourPayload `json:"hours"`
}

var productFieldMessages = map[string]string{
	"PhotoURL": "Photo url is required",
	"Name":     "Name is required",
	"Category": "Category is required",
	"Price":    "Price is required",
}

var promotionTimePattern = regexp.MustCompile(`^\d\d:\d\d$`)

// verifyPromotionTime checks a promotion time against the 'HH:mm' pattern
// with hour 0-23 and a quarter-hour minute granularity.
func verifyPromotionTime(value string) error {
	if !promotionTimePattern.MatchString(value) {
		return fmt.Errorf("Time '%s' is invalid, must be in format HH:mm", value)
	}

	hour, _ := strconv.Atoi(value[:2])
	minute, _ := strconv.Atoi(value[3:])

	if hour > 23 {
		return fmt.Errorf("Time '%s' is invalid, hour must be between 00 and 23", value)
	}
	switch minute {
	case 0, 15, 30, 45:
	default:
		return fmt.Errorf("Time '%s' is invalid, minutes must be 00, 15, 30 or 45", value)
	}
	return nil
}

// parsePromotionHour validates one hour window of a promotion.
func parsePromotionHour(hour hourPayload) (domain.PromotionDay, error) {
	if hour.Day == nil {
		return domain.PromotionDay{}, errors.New("Day is required")
	}

	if hour.Start == "" {
		return domain.PromotionDay{}, fmt.Errorf("Start time '%s' is required", hour.Start)
	}
	if err := verifyPromotionTime(hour.Start); err != nil {
		return domain.PromotionDay{}, err
	}

	if hour.End == "" {
		return domain.PromotionDay{}, fmt.Errorf("End time '%s' is required", hour.End)
	}
	if err := verifyPromotionTime(hour.End); err != nil {
		return domain.PromotionDay{}, err
	}

	return domain.PromotionDay{
		Day:   *hour.Day,
		Start: hour.Start,
		End:   hour.End,
	}, nil
}

// parsePromotion validates one promotion with its hour windows. Failures are
// plain errors; the product parser wraps them.
func parsePromotion(payload promotionPayload) (domain.Promotion, error) {
	if payload.Description == "" {
		return domain.Promotion{}, errors.New("Description of promotion is required")
	}
	if payload.Price == nil {
		return domain.Promotion{}, errors.New("Price of promotion is required")
	}

	hours := make([]domain.PromotionDay, 0, len(payload.Hours))
	for _, bodyHour := range payload.Hours {
		hour, err := parsePromotionHour(bodyHour)
		if err != nil {
			return domain.Promotion{}, err
		}
		hours = append(hours, hour)
	}

	return domain.Promotion{
		Description: payload.Description,
		Price:       *payload.Price,
		Hours:       hours,
	}, nil
}

// parseProduct whitelists and validates an inbound product payload, injecting
// the restaurant id from the route. An empty body fails with "Product not
// provided"; any field failure, including nested promotion and hour rules, is
// wrapped as "Invalid product" with the failing rule's message as detail.
func parseProduct(body []byte, restaurantID int) (*domain.Product, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apierror.NewNotProvided("Product not provided")
	}
	keyCount, err := payloadKeyCount(body)
	if err != nil {
		return nil, apierror.NewValidation("Invalid product", err.Error())
	}
	if keyCount == 0 {
		return nil, apierror.NewNotProvided("Product not provided")
	}

	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apierror.NewValidation("Invalid product", err.Error())
	}

	if err := validate.Struct(payload); err != nil {
		return nil, apierror.NewValidation("Invalid product", firstValidationMessage(err, productFieldMessages))
	}

	promotions := make([]domain.Promotion, 0, len(payload.Promotions))
	for _, bodyPromotion := range payload.Promotions {
		promotion, err := parsePromotion(bodyPromotion)
		if err != nil {
			return nil, apierror.NewValidation("Invalid product", err.Error())
		}
		promotions = append(promotions, promotion)
	}

	return &domain.Product{
		RestaurantID: restaurantID,
		PhotoURL:     payload.PhotoURL,
		Name:         payload.Name,
		Category:     payload.Category,
		Price:        *payload.Price,
		Promotions:   promotions,
	}, nil
}
