package repository

import (
	"context"
	"database/sql"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/domain"
)

// RestaurantRepository defines the interface for restaurant data access
type RestaurantRepository interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	Show(ctx context.Context, id int) (*domain.Restaurant, error)
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	Update(ctx context.Context, restaurant *domain.Restaurant) error
	Delete(ctx context.Context, id int) error
}

type restaurantRepository struct {
	db *sql.DB
}

// NewRestaurantRepository creates a new instance of RestaurantRepository
func NewRestaurantRepository(db *sql.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func restaurantNotFound() *apierror.Error {
	return apierror.NewNotFound("Restaurant was not found")
}

// List retrieves all restaurants with their working hours. The hours of all
// listed restaurants are fetched in a single batch query, not one per row.
func (r *restaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, photo_url, name, address
		FROM restaurants
		ORDER BY id
	`)
	if err != nil {
		return nil, apierror.Parse(err, "Error on list restaurants")
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	ids := []int{}
	for rows.Next() {
		restaurant := domain.Restaurant{Hours: []domain.RestaurantDay{}}
		var address sql.NullString
		if err := rows.Scan(&restaurant.ID, &restaurant.PhotoURL, &restaurant.Name, &address); err != nil {
			return nil, apierror.Parse(err, "Error on list restaurants")
		}
		restaurant.Address = address.String
		restaurants = append(restaurants, restaurant)
		ids = append(ids, restaurant.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.Parse(err, "Error on list restaurants")
	}

	if len(ids) == 0 {
		return restaurants, nil
	}

	hoursByRestaurant, err := r.fetchHours(ctx, ids)
	if err != nil {
		return nil, apierror.Parse(err, "Error on list restaurants")
	}
	for i := range restaurants {
		if hours, ok := hoursByRestaurant[restaurants[i].ID]; ok {
			restaurants[i].Hours = hours
		}
	}

	return restaurants, nil
}

// Show retrieves one restaurant by id together with its working hours.
func (r *restaurantRepository) Show(ctx context.Context, id int) (*domain.Restaurant, error) {
	restaurant := &domain.Restaurant{Hours: []domain.RestaurantDay{}}
	var address sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, photo_url, name, address
		FROM restaurants
		WHERE id = $1
	`, id).Scan(&restaurant.ID, &restaurant.PhotoURL, &restaurant.Name, &address)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, restaurantNotFound()
		}
		return nil, apierror.Parse(err, "Error on show restaurant")
	}
	restaurant.Address = address.String

	hoursByRestaurant, err := r.fetchHours(ctx, []int{id})
	if err != nil {
		return nil, apierror.Parse(err, "Error on show restaurant")
	}
	if hours, ok := hoursByRestaurant[id]; ok {
		restaurant.Hours = hours
	}

	return restaurant, nil
}

// Create inserts the restaurant and its working hours inside one transaction.
func (r *restaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Parse(err, "Error on create restaurant")
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO restaurants (photo_url, name, address)
		VALUES ($1, $2, $3)
		RETURNING id
	`, restaurant.PhotoURL, restaurant.Name, restaurant.Address).Scan(&id)
	if err != nil {
		return apierror.Parse(err, "Error on create restaurant")
	}

	if err := insertRestaurantDays(ctx, tx, restaurant.Hours, id); err != nil {
		return apierror.Parse(err, "Error on create restaurant")
	}

	if err := tx.Commit(); err != nil {
		return apierror.Parse(err, "Error on create restaurant")
	}
	return nil
}

// Update replaces the restaurant row and all of its working hours. The
// submitted hours entirely replace the stored ones.
func (r *restaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Parse(err, "Error on update restaurant")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE restaurants
		SET photo_url = $2, name = $3, address = $4
		WHERE id = $1
	`, restaurant.ID, restaurant.PhotoURL, restaurant.Name, restaurant.Address)
	if err != nil {
		return apierror.Parse(err, "Error on update restaurant")
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return apierror.Parse(err, "Error on update restaurant")
	}
	if updated == 0 {
		return restaurantNotFound()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurant_days WHERE restaurant_id = $1`, restaurant.ID); err != nil {
		return apierror.Parse(err, "Error on update restaurant")
	}
	if err := insertRestaurantDays(ctx, tx, restaurant.Hours, restaurant.ID); err != nil {
		return apierror.Parse(err, "Error on update restaurant")
	}

	if err := tx.Commit(); err != nil {
		return apierror.Parse(err, "Error on update restaurant")
	}
	return nil
}

// Delete removes the restaurant and its working hours. Hours go first so a
// concurrently vanishing parent row cannot leave orphans behind.
func (r *restaurantRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Parse(err, "Error on delete restaurant")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurant_days WHERE restaurant_id = $1`, id); err != nil {
		return apierror.Parse(err, "Error on delete restaurant")
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return apierror.Parse(err, "Error on delete restaurant")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return apierror.Parse(err, "Error on delete restaurant")
	}
	if deleted == 0 {
		return restaurantNotFound()
	}

	if err := tx.Commit(); err != nil {
		return apierror.Parse(err, "Error on delete restaurant")
	}
	return nil
}

// fetchHours batch-loads the working hours of the given restaurants, grouped
// by restaurant id.
func (r *restaurantRepository) fetchHours(ctx context.Context, restaurantIDs []int) (map[int][]domain.RestaurantDay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, restaurant_id, day, "start", "end"
		FROM restaurant_days
		WHERE restaurant_id = ANY($1)
		ORDER BY id
	`, restaurantIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[int][]domain.RestaurantDay)
	for rows.Next() {
		var hour domain.RestaurantDay
		if err := rows.Scan(&hour.ID, &hour.RestaurantID, &hour.Day, &hour.Start, &hour.End); err != nil {
			return nil, err
		}
		hours[hour.RestaurantID] = append(hours[hour.RestaurantID], hour)
	}
	return hours, rows.Err()
}

func insertRestaurantDays(ctx context.Context, tx *sql.Tx, hours []domain.RestaurantDay, restaurantID int) error {
	for _, hour := range hours {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO restaurant_days (day, "start", "end", restaurant_id)
			VALUES ($1, $2, $3, $4)
		`, hour.Day, hour.Start, hour.End, restaurantID)
		if err != nil {
			return err
		}
	}
	return nil
}
