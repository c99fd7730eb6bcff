package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/domain"
)

func TestProductCreate(t *testing.T) {
	productRepo := newMockProductRepository()
	router := newTestRouter(newMockRestaurantRepository(), productRepo)

	w := doRequest(t, router, http.MethodPost, "/restaurants/7/products", validProductBody())

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(productRepo.products) != 1 {
		t.Fatalf("expected 1 stored product, got %d", len(productRepo.products))
	}

	stored := productRepo.products[1]
	if stored.RestaurantID != 7 {
		t.Errorf("expected the route's restaurant id, got %d", stored.RestaurantID)
	}
	if len(stored.Promotions) != 1 || len(stored.Promotions[0].Hours) != 1 {
		t.Errorf("unexpected stored product: %+v", stored)
	}
}

func TestProductCreateInvalid(t *testing.T) {
	productRepo := newMockProductRepository()
	router := newTestRouter(newMockRestaurantRepository(), productRepo)

	w := doRequest(t, router, http.MethodPost, "/restaurants/7/products", `{"name": "Pizza"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope["message"] != "Invalid product" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
	if productRepo.calls != 0 {
		t.Error("repository should not be called for an invalid payload")
	}
}

func TestProductCreateNotProvided(t *testing.T) {
	router := newTestRouter(newMockRestaurantRepository(), newMockProductRepository())

	w := doRequest(t, router, http.MethodPost, "/restaurants/7/products", "{}")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope["message"] != "Product not provided" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
}

func TestProductMalformedIDs(t *testing.T) {
	productRepo := newMockProductRepository()
	router := newTestRouter(newMockRestaurantRepository(), productRepo)

	tests := []struct {
		name    string
		method  string
		url     string
		body    string
		message string
	}{
		{"create bad restaurant id", http.MethodPost, "/restaurants/a/products", validProductBody(), "Invalid restaurant's id"},
		{"list bad restaurant id", http.MethodGet, "/restaurants/a/products", "", "Invalid restaurant's id"},
		{"update bad product id", http.MethodPut, "/restaurants/7/products/a", validProductBody(), "Invalid product's id"},
		{"update bad restaurant id", http.MethodPut, "/restaurants/a/products/1", validProductBody(), "Invalid restaurant's id"},
		{"delete bad product id", http.MethodDelete, "/restaurants/7/products/a", "", "Invalid product's id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, tt.method, tt.url, tt.body)

			if w.Code != http.StatusNotFound {
				t.Fatalf("expected status 404, got %d", w.Code)
			}
			envelope := decodeEnvelope(t, w)
			if envelope["message"] != tt.message {
				t.Errorf("unexpected message: %v", envelope["message"])
			}
		})
	}
	if productRepo.calls != 0 {
		t.Error("repository should not be called for a malformed id")
	}
}

func TestProductList(t *testing.T) {
	productRepo := newMockProductRepository()
	router := newTestRouter(newMockRestaurantRepository(), productRepo)

	doRequest(t, router, http.MethodPost, "/restaurants/7/products", validProductBody())
	doRequest(t, router, http.MethodPost, "/restaurants/8/products", validProductBody())

	w := doRequest(t, router, http.MethodGet, "/restaurants/7/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var products []domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected only the restaurant's own products, got %d", len(products))
	}
	if products[0].RestaurantID != 7 {
		t.Errorf("unexpected product: %+v", products[0])
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	router := newTestRouter(newMockRestaurantRepository(), newMockProductRepository())

	w := doRequest(t, router, http.MethodPut, "/restaurants/7/products/99", validProductBody())

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope["message"] != "Product was not found" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
}

func TestProductUpdateReplaces(t *testing.T) {
	productRepo := newMockProductRepository()
	router := newTestRouter(newMockRestaurantRepository(), productRepo)

	doRequest(t, router, http.MethodPost, "/restaurants/7/products", validProductBody())

	body := `{
		"photo_url": "Photo url",
		"name": "Renamed product",
		"category": "Category",
		"price": 12.5
	}`
	w := doRequest(t, router, http.MethodPut, "/restaurants/7/products/1", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	stored := productRepo.products[1]
	if stored.Name != "Renamed product" {
		t.Errorf("expected the product to be replaced, got %+v", stored)
	}
	if len(stored.Promotions) != 0 {
		t.Errorf("promotions absent from the payload should be dropped, got %+v", stored.Promotions)
	}
}

// Delete only checks the product id. A mismatched restaurant id in the
// route does not prevent the delete.
func TestProductDeleteIgnoresRestaurantID(t *testing.T) {
	productRepo := newMockProductRepository()
	router := newTestRouter(newMockRestaurantRepository(), productRepo)

	doRequest(t, router, http.MethodPost, "/restaurants/7/products", validProductBody())

	w := doRequest(t, router, http.MethodDelete, "/restaurants/999/products/1", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	if len(productRepo.products) != 0 {
		t.Error("expected the product to be deleted")
	}

	w = doRequest(t, router, http.MethodDelete, "/restaurants/7/products/1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 on second delete, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope["message"] != "Product was not found" {
		t.Errorf("unexpected message: %v", envelope["message"])
	}
}
