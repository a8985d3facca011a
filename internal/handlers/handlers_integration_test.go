package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"computershop/internal/handlers"
	"computershop/internal/middleware"
	"computershop/internal/models"
	"computershop/internal/repositories"
	"computershop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// setupApp builds a Fiber app against a fresh in-memory SQLite database
// with the same wiring as main.go. Each call gets its own database so
// tests do not leak state into each other.
func setupApp() (*fiber.App, *repositories.GORMProductRepository, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Role{}, &models.User{},
		&models.Image{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderDetail{},
	); err != nil {
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	productRepo := repositories.NewGORMProductRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	roleRepo := repositories.NewGORMRoleRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	for _, name := range []string{models.RoleAdmin, models.RoleCustomer} {
		if _, err := roleRepo.GetOrCreate(name); err != nil {
			return nil, nil, fmt.Errorf("failed to seed role %q: %w", name, err)
		}
	}
	if err := seedAdmin(userRepo, roleRepo); err != nil {
		return nil, nil, err
	}

	catalogService := services.NewCatalogService(productRepo, categoryRepo, imageRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, cartRepo, nil) // no broker in tests
	authService := services.NewAuthService(userRepo, roleRepo, jwtSecret)
	reportService := services.NewReportService(userRepo, productRepo, categoryRepo, orderRepo)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(catalogService)
	categoryHandler := handlers.NewCategoryHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(reportService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	categoryHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	admin := protected.Group("/admin", middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	adminHandler.RegisterRoutes(admin)

	return app, productRepo, nil
}

// seedAdmin inserts the back-office account the admin tests log in with.
func seedAdmin(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository) error {
	role, err := roleRepo.GetByName(models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("admin role missing: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return userRepo.Create(&models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hash),
		RoleID:   role.ID,
	})
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON fires a JSON request at the app and decodes the response into out.
func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	resp.Body.Close()
	return resp
}

// registerAndLogin creates a customer account and returns its token.
func registerAndLogin(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	return login(t, app, username, password)
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	var loginResp map[string]string
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &loginResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

// createProduct provisions a product through the admin API and returns it.
func createProduct(t *testing.T, app *fiber.App, adminToken string, body map[string]interface{}) models.Product {
	t.Helper()
	var product models.Product
	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/products", adminToken, body, &product)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, product.ID)
	return product
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	// Registration
	user := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	var registerResp map[string]interface{}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", user, &registerResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "User registered successfully", registerResp["message"])

	// Registering the same username again is a conflict
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", user, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// So is reusing the email under a new username
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "otheruser",
		"email":    "test@example.com",
		"password": "password123",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Login and use the token against /auth/me
	token := login(t, app, "testuser", "password123")
	var profile models.User
	resp = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil, &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "testuser", profile.Username)
	assert.Empty(t, profile.Password)
	assert.NotNil(t, profile.Role)
	assert.Equal(t, models.RoleCustomer, profile.Role.Name)

	// Wrong password is rejected
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "wrongpassword",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterIgnoresClientSuppliedRole(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	// Extra fields in the register body (role_id, id, a role object) are
	// dropped; the account always comes out a customer.
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "sneaky",
		"email":    "sneaky@example.com",
		"password": "password123",
		"id":       "chosen-id",
		"role_id":  "00000000-0000-0000-0000-000000000001",
		"role":     map[string]string{"name": models.RoleAdmin},
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	token := login(t, app, "sneaky", "password123")
	var profile models.User
	resp = doJSON(t, app, http.MethodGet, "/api/v1/auth/me", token, nil, &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, "chosen-id", profile.ID)
	assert.NotNil(t, profile.Role)
	assert.Equal(t, models.RoleCustomer, profile.Role.Name)

	// And the admin surface stays shut
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/dashboard", token, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterValidatesBody(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	// Missing password
	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "nopass",
		"email":    "nopass@example.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Password too short
	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "shortpass",
		"email":    "shortpass@example.com",
		"password": "abc",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublicCatalogBrowsing(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)
	adminToken := login(t, app, "admin", "adminpass")

	createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Budget Laptop", "price": 450.00, "stock": 10,
	})
	expensive := createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Gaming Laptop", "price": 1800.00, "stock": 3,
	})

	// Browsing needs no token
	var products []models.Product
	resp := doJSON(t, app, http.MethodGet, "/api/v1/products", "", nil, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 2)

	// Keyword search plus price floor narrows to the gaming machine
	products = nil
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?q=laptop&min_price=1000", "", nil, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 1)
	assert.Equal(t, "Gaming Laptop", products[0].Name)

	// Price sort descending puts the expensive one first
	products = nil
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products?sort=price_desc", "", nil, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, products, 2)
	assert.Equal(t, expensive.ID, products[0].ID)

	// Single product lookup, then a miss
	var fetched models.Product
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+expensive.ID, "", nil, &fetched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, expensive.ID, fetched.ID)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/00000000-0000-0000-0000-000000000000", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminProductAndCategoryManagement(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)
	adminToken := login(t, app, "admin", "adminpass")

	// A customer token gets 403 on admin routes
	customerToken := registerAndLogin(t, app, "shopper", "shopper@example.com", "password123")
	resp := doJSON(t, app, http.MethodPost, "/api/v1/admin/products", customerToken, map[string]interface{}{
		"name": "Nope", "price": 1.0, "stock": 1,
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Create a category, then a product inside it
	var category models.Category
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/categories", adminToken, map[string]string{
		"name": "Laptops",
	}, &category)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, category.ID)

	product := createProduct(t, app, adminToken, map[string]interface{}{
		"name":        "Workstation",
		"description": "Sixteen cores",
		"price":       2500.00,
		"stock":       4,
		"category_id": category.ID,
		"image_url":   "https://cdn.example.com/workstation.jpg",
	})
	assert.NotNil(t, product.CategoryID)
	assert.Equal(t, category.ID, *product.CategoryID)
	assert.NotNil(t, product.ImageID)

	// Deleting a category that still has products is blocked
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/categories/"+category.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Update the product
	var updated models.Product
	resp = doJSON(t, app, http.MethodPut, "/api/v1/admin/products/"+product.ID, adminToken, map[string]interface{}{
		"name":  "Workstation Pro",
		"price": 2700.00,
		"stock": 4,
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Workstation Pro", updated.Name)
	assert.Equal(t, 2700.00, updated.Price)

	// Restock adds units on top of the current stock
	var restocked models.Product
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/products/"+product.ID+"/restock", adminToken, map[string]int{
		"quantity": 6,
	}, &restocked)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, restocked.Stock)

	// Delete the product; the category is now free to go
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/products/"+product.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/api/v1/products/"+product.ID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/categories/"+category.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Validation failures never reach the database
	resp = doJSON(t, app, http.MethodPost, "/api/v1/admin/products", adminToken, map[string]interface{}{
		"name": "No Price", "stock": 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartCheckoutFlow(t *testing.T) {
	app, productRepo, err := setupApp()
	assert.NoError(t, err)
	adminToken := login(t, app, "admin", "adminpass")
	token := registerAndLogin(t, app, "buyer", "buyer@example.com", "password123")

	laptop := createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Laptop", "price": 100.00, "stock": 5,
	})
	keyboard := createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Keyboard", "price": 75.00, "stock": 3,
	})

	// Fill the cart
	var cartResp struct {
		Cart      models.Cart `json:"cart"`
		Total     float64     `json:"total"`
		ItemCount int         `json:"item_count"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": laptop.ID, "quantity": 2,
	}, &cartResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": keyboard.ID, "quantity": 1,
	}, &cartResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 275.00, cartResp.Total)
	assert.Equal(t, 3, cartResp.ItemCount)

	// Asking for more than stock is refused at the cart already
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": keyboard.ID, "quantity": 5,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Checkout converts the cart into a pending order
	var checkoutResp struct {
		Order models.Order `json:"order"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, map[string]string{
		"shipping_address": "1 Main St",
	}, &checkoutResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	order := checkoutResp.Order
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Details, 2)
	assert.Equal(t, 275.00, order.TotalAmount)

	// Stock came down by the ordered quantities
	stored, err := productRepo.GetByID(laptop.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)
	stored, err = productRepo.GetByID(keyboard.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)

	// The cart is empty afterwards
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil, &cartResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cartResp.Cart.Items)

	// Checking out an empty cart fails
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The order shows up in the history and can be fetched by ID
	var orders []models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders", token, nil, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	var fetched models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil, &fetched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, order.TotalAmount, fetched.TotalAmount)

	// Another customer cannot read it, the admin can
	otherToken := registerAndLogin(t, app, "snoop", "snoop@example.com", "password123")
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, otherToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/api/v1/orders/"+order.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	app, productRepo, err := setupApp()
	assert.NoError(t, err)
	adminToken := login(t, app, "admin", "adminpass")
	token := registerAndLogin(t, app, "buyer", "buyer@example.com", "password123")

	laptop := createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Laptop", "price": 100.00, "stock": 5,
	})
	keyboard := createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Keyboard", "price": 75.00, "stock": 3,
	})

	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": laptop.ID, "quantity": 2,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": keyboard.ID, "quantity": 3,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Drain the keyboard stock behind the cart's back
	var drained models.Order
	drainToken := registerAndLogin(t, app, "rival", "rival@example.com", "password123")
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", drainToken, map[string]interface{}{
		"product_id": keyboard.ID, "quantity": 3,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var drainCheckout struct {
		Order models.Order `json:"order"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", drainToken, nil, &drainCheckout)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	drained = drainCheckout.Order
	assert.NotEmpty(t, drained.ID)

	// The stale cart now fails atomically: the laptop line was fine but
	// its stock must be untouched after the keyboard line failed.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	stored, err := productRepo.GetByID(laptop.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)

	// The cart survives the failed checkout for the user to fix up
	var cartResp struct {
		Cart models.Cart `json:"cart"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/cart", token, nil, &cartResp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cartResp.Cart.Items, 2)

	// No second order was created
	var orders []models.Order
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/orders", adminToken, nil, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, orders, 1)
}

func TestAdminOrderManagementAndDashboard(t *testing.T) {
	app, productRepo, err := setupApp()
	assert.NoError(t, err)
	adminToken := login(t, app, "admin", "adminpass")
	token := registerAndLogin(t, app, "buyer", "buyer@example.com", "password123")

	laptop := createProduct(t, app, adminToken, map[string]interface{}{
		"name": "Laptop", "price": 100.00, "stock": 5,
	})
	resp := doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": laptop.ID, "quantity": 3,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var checkoutResp struct {
		Order models.Order `json:"order"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, nil, &checkoutResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := checkoutResp.Order.ID

	// Status moves through the enum; junk statuses bounce
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/admin/orders/"+orderID+"/status", adminToken, map[string]string{
		"status": models.OrderStatusShipping,
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPatch, "/api/v1/admin/orders/"+orderID+"/status", adminToken, map[string]string{
		"status": "teleported",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A shipping order cannot be cancelled any more
	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/orders/"+orderID, adminToken, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Dashboard reflects the activity so far
	var stats map[string]interface{}
	resp = doJSON(t, app, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil, &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), stats["total_orders"])
	assert.Equal(t, 300.00, stats["total_revenue"])
	assert.Equal(t, float64(1), stats["total_products"])

	// Place a second, still-pending order and cancel it; stock returns
	resp = doJSON(t, app, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": laptop.ID, "quantity": 2,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/api/v1/orders/checkout", token, nil, &checkoutResp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	stored, err := productRepo.GetByID(laptop.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, stored.Stock)

	resp = doJSON(t, app, http.MethodDelete, "/api/v1/admin/orders/"+checkoutResp.Order.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	stored, err = productRepo.GetByID(laptop.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)
}

func TestProtectedEndpointsWithoutToken(t *testing.T) {
	app, _, err := setupApp()
	assert.NoError(t, err)

	for _, target := range []string{"/api/v1/cart", "/api/v1/orders", "/api/v1/auth/me", "/api/v1/admin/dashboard"} {
		resp := doJSON(t, app, http.MethodGet, target, "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/cart", "not-a-real-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
