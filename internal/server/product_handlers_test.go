package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nexus/internal/config"
	"nexus/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a Server backed by an in-memory sqlite database
// with the real route table mounted. Foreign keys are switched on so the
// cascade behavior under test matches postgres.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.Product{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{Env: "test"}
	s, err := NewServerWithDeps(cfg, db, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:  username,
		FirstName: "Test",
		Email:     username + "@example.com",
		Password:  "hashed",
		Profile: &models.StudentProfile{
			College: "College of Engineering",
			Avatar:  "https://i.pravatar.cc/150?u=" + username,
		},
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerID uint, title string, active bool, createdAt time.Time) models.Product {
	t.Helper()
	product := models.Product{
		SellerID:    sellerID,
		Title:       title,
		Description: "A test listing",
		Price:       decimal.NewFromInt(1500),
		Image:       "https://picsum.photos/seed/test/640/480",
		Category:    models.CategoryGadget,
		Condition:   models.ConditionGood,
		CreatedAt:   createdAt,
		IsActive:    active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateProductRoundtrip(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")

	resp := doJSON(t, app, http.MethodPost, "/api/products/", map[string]any{
		"title":       "ThinkPad T14",
		"description": "Barely used, carbon lid",
		"price":       "42999.50",
		"rent_price":  "500.00",
		"can_rent":    true,
		"image":       "https://picsum.photos/seed/t14/640/480",
		"category":    "Notebook",
		"condition":   "Like New",
		"specs":       map[string]any{"ram": "16GB", "storage": "512GB"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.Product](t, resp)
	assert.Equal(t, seller.ID, created.SellerID)
	assert.Equal(t, "Test", created.SellerName)
	assert.Equal(t, "ThinkPad T14", created.Title)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("42999.50")),
		"price %s", created.Price)
	assert.True(t, created.CanRent)
	assert.True(t, created.RentPrice.Valid)
	assert.True(t, created.IsActive)
	assert.NotNil(t, created.Comments)
	assert.Len(t, created.Comments, 0)
	assert.Equal(t, "16GB", created.Specs["ram"])

	resp = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[models.Product](t, resp)
	assert.Equal(t, created.ID, fetched.ID)
	assert.True(t, created.Price.Equal(fetched.Price))
}

func TestCreateProductValidation(t *testing.T) {
	_, app, db := setupTestServer(t)
	createTestUser(t, db, "seller1")

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name:  "missing title",
			body:  map[string]any{"description": "d", "price": "10", "image": "i", "category": "Other", "condition": "Good"},
			field: "title",
		},
		{
			name:  "bad category",
			body:  map[string]any{"title": "t", "description": "d", "price": "10", "image": "i", "category": "Vehicles", "condition": "Good"},
			field: "category",
		},
		{
			name:  "bad condition",
			body:  map[string]any{"title": "t", "description": "d", "price": "10", "image": "i", "category": "Other", "condition": "Mint"},
			field: "condition",
		},
		{
			name:  "negative price",
			body:  map[string]any{"title": "t", "description": "d", "price": "-1", "image": "i", "category": "Other", "condition": "Good"},
			field: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/products/", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decodeBody[models.ErrorResponse](t, resp)
			assert.Contains(t, body.Fields, tt.field)
		})
	}
}

func TestCreateProductWithoutAnyUsers(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products/", map[string]any{
		"title": "t", "description": "d", "price": "10",
		"image": "i", "category": "Other", "condition": "Good",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetProductsHidesInactiveAndOrdersNewestFirst(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")

	now := time.Now()
	createTestProduct(t, db, seller.ID, "oldest", true, now.Add(-48*time.Hour))
	createTestProduct(t, db, seller.ID, "hidden", false, now.Add(-24*time.Hour))
	createTestProduct(t, db, seller.ID, "newest", true, now)

	resp := doJSON(t, app, http.MethodGet, "/api/products/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decodeBody[[]models.Product](t, resp)

	require.Len(t, products, 2)
	assert.Equal(t, "newest", products[0].Title)
	assert.Equal(t, "oldest", products[1].Title)
}

func TestGetProductReturnsInactiveListing(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	product := createTestProduct(t, db, seller.ID, "hidden", false, time.Now())

	resp := doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[models.Product](t, resp)
	assert.Equal(t, product.Title, fetched.Title)
	assert.False(t, fetched.IsActive)
}

func TestGetProductNotFound(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/99", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/abc", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateProductPutRequiresFullPayload(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	createTestProduct(t, db, seller.ID, "original", true, time.Now())

	resp := doJSON(t, app, http.MethodPut, "/api/products/1", map[string]any{
		"title": "renamed",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[models.ErrorResponse](t, resp)
	assert.Contains(t, body.Fields, "price")

	resp = doJSON(t, app, http.MethodPut, "/api/products/1", map[string]any{
		"title": "renamed", "description": "new desc", "price": "999.99",
		"image": "img", "category": "Other", "condition": "Fair",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.Product](t, resp)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, models.ConditionFair, updated.Condition)
}

func TestPatchProductPartialUpdate(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	createTestProduct(t, db, seller.ID, "original", true, time.Now())

	resp := doJSON(t, app, http.MethodPatch, "/api/products/1", map[string]any{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.Product](t, resp)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "original", updated.Title, "untouched fields survive a patch")

	// deactivated listings drop out of the list view
	resp = doJSON(t, app, http.MethodGet, "/api/products/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decodeBody[[]models.Product](t, resp)
	assert.Len(t, products, 0)
}

func TestDeleteProductCascadesComments(t *testing.T) {
	_, app, db := setupTestServer(t)
	seller := createTestUser(t, db, "seller1")
	product := createTestProduct(t, db, seller.ID, "doomed", true, time.Now())

	comment := models.Comment{ProductID: product.ID, UserID: seller.ID, Text: "still for sale?"}
	require.NoError(t, db.Create(&comment).Error)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/1", nil)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var productCount, commentCount, userCount int64
	db.Model(&models.Product{}).Count(&productCount)
	db.Model(&models.Comment{}).Count(&commentCount)
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 0, productCount)
	assert.EqualValues(t, 0, commentCount)
	assert.EqualValues(t, 1, userCount, "seller survives the listing delete")

	resp = doJSON(t, app, http.MethodDelete, "/api/products/1", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
