package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shop-server/internal/config"
	"shop-server/internal/interfaces"
	"shop-server/internal/messaging"
	"shop-server/internal/models"
	"shop-server/internal/repository"
	"shop-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPresigner struct{}

func (stubPresigner) PresignPut(ctx context.Context, req interfaces.PresignRequest) (string, error) {
	return "https://test-bucket.s3.us-east-1.amazonaws.com/" + req.Key + "?X-Amz-Signature=stub", nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		AWSRegion:      "us-east-1",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		S3Bucket:       "test-bucket",
		S3Prefix:       "public/",
		MaxUploadBytes: 5 * 1024 * 1024,
		PresignTTL:     60 * time.Second,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	userRepo, err := repository.NewMemoryUserRepository(log)
	require.NoError(t, err)
	productRepo := repository.NewMemoryProductRepository(log)

	authSvc := service.NewAuthService(userRepo, cfg, log)
	productSvc := service.NewProductService(productRepo, messaging.NoopProductPublisher{}, log)
	uploadSvc := service.NewUploadService(stubPresigner{}, cfg, log)

	router := gin.New()
	NewAPIHandler(productSvc, authSvc, uploadSvc, userRepo, cfg).RegisterRoutes(router)
	return router
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndGetToken(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	// Login with the same credentials works too.
	w := doJSON(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "t1",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/products", token, gin.H{
		"name":  "Widget",
		"price": 9.99,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Widget", created.Name)
	assert.InDelta(t, 9.99, created.Price, 0.001)

	w = doJSON(router, http.MethodGet, "/api/products/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/products/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListProductsIsPublic(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 2) // seeded samples
}

func TestPartialUpdate(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	w := doJSON(router, http.MethodPost, "/api/products", token, gin.H{
		"name":        "Widget",
		"price":       9.99,
		"description": "original",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodPut, "/api/products/"+created.ID, token, gin.H{
		"price": 12.5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.InDelta(t, 12.5, updated.Price, 0.001)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "original", updated.Description)
}

func TestEmptyUpdateRejected(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	w := doJSON(router, http.MethodPost, "/api/products", token, gin.H{"name": "Widget", "price": 1.0})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodPut, "/api/products/"+created.ID, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"price": 9.99}},
		{"missing price", gin.H{"name": "Widget"}},
		{"negative price", gin.H{"name": "Widget", "price": -1.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/products", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAuthRequiredOnWrites(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	expired := func() string {
		claims := models.Claims{
			Username: "t1",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "t1",
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		require.NoError(t, err)
		return s
	}()

	cases := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing header", func(r *http.Request) {}},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwYXNz") }},
		{"no token after scheme", func(r *http.Request) { r.Header.Set("Authorization", "Bearer") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") }},
		{"expired token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expired) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := bytes.NewBufferString(`{"name":"Widget","price":9.99}`)
			req := httptest.NewRequest(http.MethodPost, "/api/products", body)
			req.Header.Set("Content-Type", "application/json")
			tc.setup(req)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	claims := models.Claims{
		Username: "t1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "t1",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	w := doJSON(router, http.MethodPost, "/api/products", forged, gin.H{"name": "Widget", "price": 9.99})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := newTestRouter(t, testConfig())
	registerAndGetToken(t, router, "t1")

	w := doJSON(router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "t1",
		"password": "another-password",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFailures(t *testing.T) {
	router := newTestRouter(t, testConfig())
	registerAndGetToken(t, router, "t1")

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"wrong password", gin.H{"username": "t1", "password": "wrong"}, http.StatusUnauthorized},
		{"unknown user", gin.H{"username": "nobody", "password": "password123"}, http.StatusUnauthorized},
		{"missing password", gin.H{"username": "t1"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/auth/login", "", tc.body)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestPresignEndpoint(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	w := doJSON(router, http.MethodPost, "/api/uploads/presign", token, gin.H{
		"fileName":    "photo.PNG",
		"contentType": "image/png",
		"size":        1024,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var auth models.UploadAuthorization
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	assert.Equal(t, http.MethodPut, auth.Method)
	assert.Contains(t, auth.UploadURL, "X-Amz-Signature")
	assert.Contains(t, auth.Key, "public/")
	assert.Contains(t, auth.Key, ".png")
	assert.Equal(t, "image/png", auth.Headers["Content-Type"])
}

func TestPresignEndpointRejections(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing fileName", gin.H{"contentType": "image/png"}, http.StatusBadRequest},
		{"unsupported type", gin.H{"fileName": "a.gif", "contentType": "image/gif"}, http.StatusUnsupportedMediaType},
		{"oversized", gin.H{"fileName": "a.png", "contentType": "image/png", "size": 50 * 1024 * 1024}, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/uploads/presign", token, tc.body)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestPresignUnavailableWithoutBucket(t *testing.T) {
	cfg := testConfig()
	cfg.S3Bucket = ""
	router := newTestRouter(t, cfg)
	token := registerAndGetToken(t, router, "t1")

	w := doJSON(router, http.MethodPost, "/api/uploads/presign", token, gin.H{
		"fileName":    "a.png",
		"contentType": "image/png",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPresignRequiresAuth(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/api/uploads/presign", "", gin.H{
		"fileName":    "a.png",
		"contentType": "image/png",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthReportsBackendWiring(t *testing.T) {
	cfg := testConfig()
	cfg.ProductsTable = "shop-products"
	router := newTestRouter(t, cfg)

	w := doJSON(router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "shop-products", body["productsTable"])
	assert.Equal(t, "shop-products", body["usersTable"]) // falls back to the products table
	assert.Equal(t, "us-east-1", body["region"])
}

func TestHealthWithMemoryBackend(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["productsTable"])
}

func TestDebugEndpoints(t *testing.T) {
	router := newTestRouter(t, testConfig())
	token := registerAndGetToken(t, router, "t1")

	w := doJSON(router, http.MethodGet, "/api/debug/tables", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/debug/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []models.UserSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2) // bootstrap admin + t1

	// Credential material must never appear in the payload.
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = doJSON(router, http.MethodGet, "/api/debug/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResponseBodiesAreJSONErrors(t *testing.T) {
	router := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/products/%s", "missing-id"), "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
