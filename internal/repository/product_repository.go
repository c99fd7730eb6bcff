package repository

import (
	"context"
	"database/sql"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/domain"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context, restaurantID int) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func productNotFound() *apierror.Error {
	return apierror.NewNotFound("Product was not found")
}

// List retrieves the products of a restaurant with their promotions and the
// promotions' hour windows. Children are fetched with one batch query per
// nesting level, not one per parent row.
func (r *productRepository) List(ctx context.Context, restaurantID int) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, restaurant_id, photo_url, name, category, price
		FROM products
		WHERE restaurant_id = $1
		ORDER BY id
	`, restaurantID)
	if err != nil {
		return nil, apierror.Parse(err, "Error on list products")
	}
	defer rows.Close()

	products := []domain.Product{}
	productIDs := []int{}
	for rows.Next() {
		product := domain.Product{Promotions: []domain.Promotion{}}
		if err := rows.Scan(&product.ID, &product.RestaurantID, &product.PhotoURL,
			&product.Name, &product.Category, &product.Price); err != nil {
			return nil, apierror.Parse(err, "Error on list products")
		}
		products = append(products, product)
		productIDs = append(productIDs, product.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.Parse(err, "Error on list products")
	}

	if len(productIDs) == 0 {
		return products, nil
	}

	promotionsByProduct, err := r.fetchPromotions(ctx, productIDs)
	if err != nil {
		return nil, apierror.Parse(err, "Error on list products")
	}
	for i := range products {
		if promotions, ok := promotionsByProduct[products[i].ID]; ok {
			products[i].Promotions = promotions
		}
	}

	return products, nil
}

// Create inserts the product, its promotions and their hour windows inside
// one transaction.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Parse(err, "Error on create product")
	}
	defer tx.Rollback()

	var productID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (restaurant_id, photo_url, name, category, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, product.RestaurantID, product.PhotoURL, product.Name, product.Category, product.Price).Scan(&productID)
	if err != nil {
		return apierror.Parse(err, "Error on create product")
	}

	if err := insertPromotions(ctx, tx, product.Promotions, productID); err != nil {
		return apierror.Parse(err, "Error on create product")
	}

	if err := tx.Commit(); err != nil {
		return apierror.Parse(err, "Error on create product")
	}
	return nil
}

// Update replaces the product row and all of its promotions. The submitted
// promotions (and their hour windows) entirely replace the stored ones.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Parse(err, "Error on update product")
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET restaurant_id = $2, photo_url = $3, name = $4, category = $5, price = $6
		WHERE id = $1
	`, product.ID, product.RestaurantID, product.PhotoURL, product.Name, product.Category, product.Price)
	if err != nil {
		return apierror.Parse(err, "Error on update product")
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return apierror.Parse(err, "Error on update product")
	}
	if updated == 0 {
		return productNotFound()
	}

	if err := deletePromotions(ctx, tx, product.ID); err != nil {
		return apierror.Parse(err, "Error on update product")
	}
	if err := insertPromotions(ctx, tx, product.Promotions, product.ID); err != nil {
		return apierror.Parse(err, "Error on update product")
	}

	if err := tx.Commit(); err != nil {
		return apierror.Parse(err, "Error on update product")
	}
	return nil
}

// Delete removes the product with its promotions and their hour windows.
// Children go first so a concurrently vanishing parent row cannot leave
// orphans behind.
func (r *productRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apierror.Parse(err, "Error on delete product")
	}
	defer tx.Rollback()

	if err := deletePromotions(ctx, tx, id); err != nil {
		return apierror.Parse(err, "Error on delete product")
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return apierror.Parse(err, "Error on delete product")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return apierror.Parse(err, "Error on delete product")
	}
	if deleted == 0 {
		return productNotFound()
	}

	if err := tx.Commit(); err != nil {
		return apierror.Parse(err, "Error on delete product")
	}
	return nil
}

// fetchPromotions batch-loads the promotions of the given products and their
// hour windows, grouped by product id.
func (r *productRepository) fetchPromotions(ctx context.Context, productIDs []int) (map[int][]domain.Promotion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, description, price
		FROM promotions
		WHERE product_id = ANY($1)
		ORDER BY id
	`, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := []domain.Promotion{}
	promotionIDs := []int{}
	for rows.Next() {
		promotion := domain.Promotion{Hours: []domain.PromotionDay{}}
		if err := rows.Scan(&promotion.ID, &promotion.ProductID, &promotion.Description, &promotion.Price); err != nil {
			return nil, err
		}
		promotions = append(promotions, promotion)
		promotionIDs = append(promotionIDs, promotion.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(promotionIDs) > 0 {
		hoursByPromotion, err := r.fetchPromotionDays(ctx, promotionIDs)
		if err != nil {
			return nil, err
		}
		for i := range promotions {
			if hours, ok := hoursByPromotion[promotions[i].ID]; ok {
				promotions[i].Hours = hours
			}
		}
	}

	byProduct := make(map[int][]domain.Promotion)
	for _, promotion := range promotions {
		byProduct[promotion.ProductID] = append(byProduct[promotion.ProductID], promotion)
	}
	return byProduct, nil
}

func (r *productRepository) fetchPromotionDays(ctx context.Context, promotionIDs []int) (map[int][]domain.PromotionDay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, promotion_id, day, "start", "end"
		FROM promotion_days
		WHERE promotion_id = ANY($1)
		ORDER BY id
	`, promotionIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[int][]domain.PromotionDay)
	for rows.Next() {
		var hour domain.PromotionDay
		if err := rows.Scan(&hour.ID, &hour.PromotionID, &hour.Day, &hour.Start, &hour.End); err != nil {
			return nil, err
		}
		hours[hour.PromotionID] = append(hours[hour.PromotionID], hour)
	}
	return hours, rows.Err()
}

func insertPromotions(ctx context.Context, tx *sql.Tx, promotions []domain.Promotion, productID int) error {
	for _, promotion := range promotions {
		var promotionID int
		err := tx.QueryRowContext(ctx, `
			INSERT INTO promotions (product_id, description, price)
			VALUES ($1, $2, $3)
			RETURNING id
		`, productID, promotion.Description, promotion.Price).Scan(&promotionID)
		if err != nil {
			return err
		}

		for _, hour := range promotion.Hours {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO promotion_days (day, "start", "end", promotion_id)
				VALUES ($1, $2, $3, $4)
			`, hour.Day, hour.Start, hour.End, promotionID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// deletePromotions removes the promotions of a product together with their
// hour windows.
func deletePromotions(ctx context.Context, tx *sql.Tx, productID int) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM promotion_days
		WHERE promotion_id IN (SELECT id FROM promotions WHERE product_id = $1)
	`, productID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM promotions WHERE product_id = $1`, productID)
	return err
}
