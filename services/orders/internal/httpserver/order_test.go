package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kmazurek/capstone-shop/services/orders/internal/models"
	"github.com/kmazurek/capstone-shop/services/orders/internal/repo"
	"github.com/kmazurek/capstone-shop/services/orders/internal/service"
	"github.com/kmazurek/capstone-shop/services/orders/internal/transport"
)

type testEnv struct {
	E  *echo.Echo
	DB *gorm.DB
	H  *OrderHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	h := &OrderHTTP{Svc: &service.OrderService{Repo: &repo.GormRepo{DB: db}}}

	return &testEnv{E: echo.New(), DB: db, H: h}
}

func (env *testEnv) doJSONRequest(method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedUser(t *testing.T, name, email string) models.User {
	user := models.User{Name: name, Email: email}
	require.NoError(t, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64) models.Product {
	product := models.Product{Name: name, Price: price}
	require.NoError(t, env.DB.Create(&product).Error)
	return product
}

func (env *testEnv) orderCount(t *testing.T) int64 {
	var n int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}

func TestCreateOrder_Success(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders", map[string]any{
		"user_id":    user.ID,
		"product_id": product.ID,
		"quantity":   2,
	})
	require.NoError(t, env.H.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	require.Equal(t, user.ID, resp.UserID)
	require.Equal(t, product.ID, resp.ProductID)
	require.Equal(t, 2, resp.Quantity)
	require.Equal(t, models.StatusCreated, resp.Status)
	require.Equal(t, 19.98, resp.TotalPrice)
	require.EqualValues(t, 1, env.orderCount(t))
}

func TestCreateOrder_DefaultQuantity(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders", map[string]any{
		"user_id":    user.ID,
		"product_id": product.ID,
	})
	require.NoError(t, env.H.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Quantity)
	require.Equal(t, 9.99, resp.TotalPrice)
}

func TestCreateOrder_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")

	cases := []map[string]any{
		{},
		{"user_id": user.ID},
		{"product_id": 1},
	}
	for _, body := range cases {
		rec, c := env.doJSONRequest(http.MethodPost, "/orders", body)
		require.NoError(t, env.H.CreateOrder(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp transport.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Error)
	}
	require.EqualValues(t, 0, env.orderCount(t))
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	require.EqualValues(t, 1, user.ID)
	require.EqualValues(t, 1, product.ID)

	cases := []string{
		`{"user_id":1,"product_id":1,"quantity":0}`,
		`{"user_id":1,"product_id":1,"quantity":-3}`,
		`{"user_id":1,"product_id":1,"quantity":1.5}`,
		`{"user_id":1,"product_id":1,"quantity":2147483648}`,
		`{"user_id":1,"product_id":1,"quantity":10000000000000000000}`,
	}
	for _, body := range cases {
		rec, c := env.doJSONRequest(http.MethodPost, "/orders", body)
		require.NoError(t, env.H.CreateOrder(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		var resp transport.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Contains(t, resp.Error, "quantity")
	}
	require.EqualValues(t, 0, env.orderCount(t))
}

func TestCreateOrder_UserNotFound(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Widget", 9.99)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders", map[string]any{
		"user_id":    999,
		"product_id": product.ID,
	})
	require.NoError(t, env.H.CreateOrder(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "User not found")
	require.EqualValues(t, 0, env.orderCount(t))
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")

	rec, c := env.doJSONRequest(http.MethodPost, "/orders", map[string]any{
		"user_id":    user.ID,
		"product_id": 999,
	})
	require.NoError(t, env.H.CreateOrder(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "Product not found")
	require.EqualValues(t, 0, env.orderCount(t))
}

func TestUpdateStatus_AnyToAny(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, Status: models.StatusDelivered, TotalPrice: 9.99}
	require.NoError(t, env.DB.Create(&order).Error)

	// No transition graph: delivered may go back to created.
	for _, status := range models.Statuses {
		rec, c := env.doJSONRequest(http.MethodPut, "/orders/1/status", map[string]string{"status": status})
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, env.H.UpdateStatus(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp transport.StatusUpdateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, status, resp.Status)

		var got models.Order
		require.NoError(t, env.DB.First(&got, order.ID).Error)
		require.Equal(t, status, got.Status)
	}
}

func TestUpdateStatus_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, Status: models.StatusCreated, TotalPrice: 9.99}
	require.NoError(t, env.DB.Create(&order).Error)

	for i := 0; i < 2; i++ {
		rec, c := env.doJSONRequest(http.MethodPut, "/orders/1/status", map[string]string{"status": models.StatusShipped})
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, env.H.UpdateStatus(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var got models.Order
	require.NoError(t, env.DB.First(&got, order.ID).Error)
	require.Equal(t, models.StatusShipped, got.Status)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, Status: models.StatusCreated, TotalPrice: 9.99}
	require.NoError(t, env.DB.Create(&order).Error)

	for _, status := range []string{"", "unknown", "SHIPPED"} {
		rec, c := env.doJSONRequest(http.MethodPut, "/orders/1/status", map[string]string{"status": status})
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, env.H.UpdateStatus(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp transport.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Contains(t, resp.Error, "must be one of")
	}

	var got models.Order
	require.NoError(t, env.DB.First(&got, order.ID).Error)
	require.Equal(t, models.StatusCreated, got.Status)
}

func TestUpdateStatus_OrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPut, "/orders/999/status", map[string]string{"status": models.StatusShipped})
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, env.H.UpdateStatus(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_Joined(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 2, Status: models.StatusCreated, TotalPrice: 19.98}
	require.NoError(t, env.DB.Create(&order).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, order.ID, resp.ID)
	require.Equal(t, "A", resp.UserName)
	require.Equal(t, "Widget", resp.ProductName)
	require.Equal(t, 19.98, resp.TotalPrice)
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/5", nil)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, env.H.GetOrder(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "Order not found")
}

func TestListOrders_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	first := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 1, Status: models.StatusCreated, TotalPrice: 9.99}
	require.NoError(t, env.DB.Create(&first).Error)
	second := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 2, Status: models.StatusCreated, TotalPrice: 19.98}
	require.NoError(t, env.DB.Create(&second).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders", nil)
	require.NoError(t, env.H.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, second.ID, resp[0].ID)
	require.Equal(t, first.ID, resp[1].ID)
}

func TestListUserOrders_EmptyIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "A", "a@x.com")

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/user/1", nil)
	c.SetParamNames("user_id")
	c.SetParamValues("1")
	require.NoError(t, env.H.ListUserOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestListUserOrders_CurrentPrice(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 2, Status: models.StatusCreated, TotalPrice: 19.98}
	require.NoError(t, env.DB.Create(&order).Error)

	// Price changes after the order; the listing shows the current
	// price while total_price stays the snapshot.
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 14.99).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/user/1", nil)
	c.SetParamNames("user_id")
	c.SetParamValues("1")
	require.NoError(t, env.H.ListUserOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []transport.UserOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	require.Equal(t, 14.99, resp[0].ProductPrice)
	require.Equal(t, 19.98, resp[0].TotalPrice)
}

func TestOrderReads_SurviveProductDelete(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	order := models.Order{UserID: user.ID, ProductID: product.ID, Quantity: 2, Status: models.StatusCreated, TotalPrice: 19.98}
	require.NoError(t, env.DB.Create(&order).Error)

	require.NoError(t, env.DB.Delete(&models.Product{}, product.ID).Error)

	rec, c := env.doJSONRequest(http.MethodGet, "/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, order.ID, detail.ID)
	require.Equal(t, "A", detail.UserName)
	require.Equal(t, "", detail.ProductName)
	require.Equal(t, 19.98, detail.TotalPrice)

	rec, c = env.doJSONRequest(http.MethodGet, "/orders", nil)
	require.NoError(t, env.H.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var all []transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)

	rec, c = env.doJSONRequest(http.MethodGet, "/orders/user/1", nil)
	c.SetParamNames("user_id")
	c.SetParamValues("1")
	require.NoError(t, env.H.ListUserOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var mine []transport.UserOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	require.Equal(t, float64(0), mine[0].ProductPrice)
	require.Equal(t, 19.98, mine[0].TotalPrice)
}

func TestOrderLifecycle_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "A", "a@x.com")
	product := env.seedProduct(t, "Widget", 9.99)

	rec, c := env.doJSONRequest(http.MethodPost, "/orders", map[string]any{
		"user_id":    user.ID,
		"product_id": product.ID,
		"quantity":   2,
	})
	require.NoError(t, env.H.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, 19.98, created.TotalPrice)

	rec, c = env.doJSONRequest(http.MethodPut, "/orders/1/status", map[string]string{"status": models.StatusShipped})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(http.MethodGet, "/orders/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.H.GetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail transport.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, models.StatusShipped, detail.Status)
	require.Equal(t, 19.98, detail.TotalPrice)
}
