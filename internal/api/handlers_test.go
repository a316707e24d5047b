package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hospital-billing/internal/auth"
	"github.com/mmynk/hospital-billing/internal/middleware"
	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/service"
	"github.com/mmynk/hospital-billing/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mocks struct {
	catalog *MockCatalog
	ledger  *MockLedger
	stats   *MockStatistics
	status  *MockStatus
	login   *MockLogin
}

func newMockRouter(opts Options) (*gin.Engine, *mocks) {
	m := &mocks{
		catalog: new(MockCatalog),
		ledger:  new(MockLedger),
		stats:   new(MockStatistics),
		status:  new(MockStatus),
		login:   new(MockLogin),
	}
	services := Services{
		Catalog:    m.catalog,
		Ledger:     m.ledger,
		Statistics: m.stats,
		Status:     m.status,
		Auth:       m.login,
	}
	opts.AllowedOrigins = []string{"*"}
	return NewRouter(services, opts), m
}

func do(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestItemHandlers(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	cbc := &models.Item{ID: 1, Category: "Lab", Name: "CBC", Type: "Blood Test", Price: 250, CreatedAt: created, UpdatedAt: created}

	t.Run("list items", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("ListAll", mock.Anything).Return([]*models.Item{cbc}, nil)

		w := do(r, http.MethodGet, "/api/items", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["count"])
		items := body["items"].([]any)
		item := items[0].(map[string]any)
		assert.Equal(t, "CBC", item["name"])
		assert.Equal(t, float64(250), item["price"])
		assert.Equal(t, "2025-03-01T09:30:00Z", item["created_at"])
	})

	t.Run("list by category echoes the category", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("ListByCategory", mock.Anything, "O2, ISO").Return([]*models.Item{}, nil)

		w := do(r, http.MethodGet, "/api/items/category/O2,%20ISO", "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "O2, ISO", body["category"])
		assert.Equal(t, []any{}, body["items"])
		assert.Equal(t, float64(0), body["count"])
	})

	t.Run("add item returns 201 and the new id", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("Add", mock.Anything, mock.MatchedBy(func(in service.ItemInput) bool {
			return in.Category != nil && *in.Category == "Lab" && in.Price == json.Number("250")
		})).Return(int64(7), nil)

		w := do(r, http.MethodPost, "/api/items", `{"category":"Lab","name":"CBC","price":250}`)
		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(7), body["item_id"])
		assert.Equal(t, "Item added successfully", body["message"])
		m.catalog.AssertExpectations(t)
	})

	t.Run("malformed JSON is invalid input", func(t *testing.T) {
		r, _ := newMockRouter(Options{})
		w := do(r, http.MethodPost, "/api/items", `{"category":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, CodeInvalidInput, decode(t, w)["error"])
	})

	t.Run("validation error is 400", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("Add", mock.Anything, mock.Anything).Return(int64(0), &service.ValidationError{Field: "price", Reason: "must not be negative"})

		w := do(r, http.MethodPost, "/api/items", `{"category":"Lab","name":"CBC","price":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, CodeInvalidInput, body["error"])
		assert.Equal(t, "price must not be negative", body["message"])
	})

	t.Run("update unknown item is 404", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("Update", mock.Anything, int64(99), mock.Anything).Return(fmt.Errorf("item 99: %w", storage.ErrNotFound))

		w := do(r, http.MethodPut, "/api/items/99", `{"price":10}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, CodeNotFound, decode(t, w)["error"])
	})

	t.Run("non-numeric id is 404 without touching the catalog", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		w := do(r, http.MethodDelete, "/api/items/abc", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		m.catalog.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete item", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("Delete", mock.Anything, int64(1)).Return(nil)

		w := do(r, http.MethodDelete, "/api/items/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Item deleted successfully", decode(t, w)["message"])
	})

	t.Run("store failure is a database error", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.catalog.On("ListAll", mock.Anything).Return(nil, errors.New("failed to list items: boom"))

		w := do(r, http.MethodGet, "/api/items", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, CodeDatabaseError, body["error"])
		assert.NotContains(t, body["message"], "boom")
	})
}

func TestBindJSON(t *testing.T) {
	r, m := newMockRouter(Options{})
	assert.False(t, binding.EnableDecoderUseNumber, "building a router must not change gin's global decoder")

	t.Run("price keeps its literal", func(t *testing.T) {
		m.catalog.On("Add", mock.Anything, mock.MatchedBy(func(in service.ItemInput) bool {
			return in.Price == json.Number("0.10")
		})).Return(int64(1), nil).Once()

		w := do(r, http.MethodPost, "/api/items", `{"category":"Lab","name":"Swab","price":0.10}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("empty body is invalid input", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/bills", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "request body is missing or malformed", decode(t, w)["message"])
		m.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("binding tags are still validated", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/auth/login", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.login.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestBillHandlers(t *testing.T) {
	t.Run("save bill returns 201", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.ledger.On("Save", mock.Anything, mock.MatchedBy(func(in service.BillInput) bool {
			return *in.BillNumber == "IP-1" && string(in.Items) == `[{"name":"CBC"}]`
		})).Return(int64(3), nil)

		w := do(r, http.MethodPost, "/api/bills", `{"bill_number":"IP-1","total_amount":250,"items":[{"name":"CBC"}]}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, float64(3), decode(t, w)["bill_id"])
	})

	t.Run("duplicate bill number is 409", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.ledger.On("Save", mock.Anything, mock.Anything).Return(int64(0), fmt.Errorf("bill number %q: %w", "IP-1", storage.ErrConflict))

		w := do(r, http.MethodPost, "/api/bills", `{"bill_number":"IP-1","total_amount":1,"items":[]}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, CodeConflict, decode(t, w)["error"])
	})

	t.Run("limit parsing", func(t *testing.T) {
		for query, limit := range map[string]int{"": 50, "?limit=5": 5, "?limit=abc": 50, "?limit=0": 1, "?limit=99999": 1000} {
			r, m := newMockRouter(Options{})
			m.ledger.On("ListRecent", mock.Anything, limit).Return([]*models.Bill{}, nil)

			w := do(r, http.MethodGet, "/api/bills"+query, "")
			require.Equal(t, http.StatusOK, w.Code, query)
			assert.Equal(t, float64(limit), decode(t, w)["limit"], query)
			m.ledger.AssertExpectations(t)
		}
	})

	t.Run("bills carry their items", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.ledger.On("ListRecent", mock.Anything, 50).Return([]*models.Bill{{
			ID: 1, BillNumber: "IP-1", TotalAmount: 250, Items: json.RawMessage(`[{"name":"CBC","qty":1}]`),
		}}, nil)

		w := do(r, http.MethodGet, "/api/bills", "")
		require.Equal(t, http.StatusOK, w.Code)
		bills := decode(t, w)["bills"].([]any)
		items := bills[0].(map[string]any)["items"].([]any)
		assert.Equal(t, "CBC", items[0].(map[string]any)["name"])
	})
}

func TestSystemHandlers(t *testing.T) {
	t.Run("health reports unhealthy with 200", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.status.On("Healthy", mock.Anything).Return(false)

		w := do(r, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "disconnected", body["database"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("status describes the database", func(t *testing.T) {
		r, m := newMockRouter(Options{Version: "1.2.3"})
		m.status.On("Connection", mock.Anything).Return(models.ConnectionInfo{
			Connected: true, DatabaseType: "SQLite", Fallback: true, Database: "./data/x.db",
		})

		w := do(r, http.MethodGet, "/api/status", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "online", body["server"])
		assert.Equal(t, "1.2.3", body["version"])
		db := body["database"].(map[string]any)
		assert.Equal(t, true, db["fallback"])
		assert.Equal(t, "SQLite", db["database_type"])
		assert.NotContains(t, db, "host")
	})

	t.Run("statistics", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.stats.On("Compute", mock.Anything).Return(&models.Statistics{
			ItemsByCategory: map[string]int64{"Lab": 3},
			TotalItems:      3,
			TotalBills:      2,
			TotalRevenue:    1200.5,
		}, nil)

		w := do(r, http.MethodGet, "/api/statistics", "")
		require.Equal(t, http.StatusOK, w.Code)
		stats := decode(t, w)["statistics"].(map[string]any)
		assert.Equal(t, map[string]any{"Lab": float64(3)}, stats["items_by_category"])
		assert.Equal(t, 1200.5, stats["total_revenue"])
	})

	t.Run("statistics on a disconnected store", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.stats.On("Compute", mock.Anything).Return(nil, storage.ErrNotConnected)

		w := do(r, http.MethodGet, "/api/statistics", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, CodeDatabaseError, decode(t, w)["error"])
	})

	t.Run("unknown API path lists endpoints", func(t *testing.T) {
		r, _ := newMockRouter(Options{})
		w := do(r, http.MethodGet, "/api/patients", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.Equal(t, CodeNotFound, body["error"])
		assert.Equal(t, "/api/patients", body["endpoint"])
		assert.Contains(t, body["available_endpoints"], "GET /api/items")
	})

	t.Run("request id header is returned", func(t *testing.T) {
		r, m := newMockRouter(Options{})
		m.status.On("Healthy", mock.Anything).Return(true)
		w := do(r, http.MethodGet, "/health", "")
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		r, m := newMockRouter(Options{Metrics: middleware.NewMetrics()})
		m.status.On("Healthy", mock.Anything).Return(true)
		do(r, http.MethodGet, "/health", "")

		w := do(r, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `route="/health"`)
	})
}

func TestEditorAuth(t *testing.T) {
	manager := auth.NewJWTManager("api-test-secret-value", time.Hour)

	t.Run("catalog writes need a token", func(t *testing.T) {
		r, m := newMockRouter(Options{JWTManager: manager})

		w := do(r, http.MethodPost, "/api/items", `{"category":"Lab","name":"CBC","price":1}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, CodeUnauthorized, decode(t, w)["error"])
		m.catalog.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("reads and bills stay open", func(t *testing.T) {
		r, m := newMockRouter(Options{JWTManager: manager})
		m.catalog.On("ListAll", mock.Anything).Return([]*models.Item{}, nil)

		w := do(r, http.MethodGet, "/api/items", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("a valid token is accepted", func(t *testing.T) {
		r, m := newMockRouter(Options{JWTManager: manager})
		m.catalog.On("Delete", mock.Anything, int64(4)).Return(nil)
		token, _, err := manager.Generate(auth.RoleEditor, auth.RoleEditor)
		require.NoError(t, err)

		w := do(r, http.MethodDelete, "/api/items/4", "", "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("login", func(t *testing.T) {
		r, m := newMockRouter(Options{JWTManager: manager})
		expires := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)
		m.login.On("Login", mock.Anything, "letmein!").Return(&service.Session{Token: "tok", ExpiresAt: expires}, nil)
		m.login.On("Login", mock.Anything, "wrong").Return(nil, auth.ErrInvalidCredentials)

		w := do(r, http.MethodPost, "/api/auth/login", `{"password":"letmein!"}`)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "tok", body["token"])
		assert.Equal(t, "2025-03-01T21:00:00Z", body["expires_at"])

		w = do(r, http.MethodPost, "/api/auth/login", `{"password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = do(r, http.MethodPost, "/api/auth/login", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login is absent when auth is disabled", func(t *testing.T) {
		services := Services{Status: new(MockStatus)}
		r := NewRouter(services, Options{AllowedOrigins: []string{"*"}})

		w := do(r, http.MethodPost, "/api/auth/login", `{"password":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
