package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenroots/storefront/internal/config"
	"github.com/greenroots/storefront/internal/model"
)

// fakeBackend is a gin router standing in for the storefront API in tests.
type fakeBackend struct {
	router   *gin.Engine
	server   *httptest.Server
	requests int
	lastAuth string
	lastBody map[string]any
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fb := &fakeBackend{router: gin.New()}
	fb.router.Use(func(c *gin.Context) {
		fb.requests++
		fb.lastAuth = c.GetHeader("Authorization")
		if c.Request.Method != http.MethodGet {
			body := map[string]any{}
			_ = c.ShouldBindJSON(&body)
			fb.lastBody = body
		}
		c.Next()
	})
	fb.server = httptest.NewServer(fb.router)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) client(token string) *Client {
	return New(
		config.APIConfig{BaseURL: fb.server.URL, Timeout: 5 * time.Second},
		config.PaymentConfig{BaseURL: fb.server.URL},
		func() string { return token },
		nil,
	)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/cart", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "data": gin.H{"id": uuid.NewString(), "items": []gin.H{}}})
	})

	_, err := fb.client("tok-123").GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", fb.lastAuth)
}

func TestClient_TokenReadAtCallTime(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/cart", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "data": gin.H{"items": []gin.H{}}})
	})

	token := "first"
	client := New(
		config.APIConfig{BaseURL: fb.server.URL, Timeout: 5 * time.Second},
		config.PaymentConfig{BaseURL: fb.server.URL},
		func() string { return token },
		nil,
	)

	_, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer first", fb.lastAuth)

	token = "second"
	_, err = client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer second", fb.lastAuth)
}

func TestClient_NoAuthHeaderOnPublicEndpoints(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/products", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "data": []gin.H{}})
	})

	_, err := fb.client("tok").ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fb.lastAuth)
}

func TestClient_EnvelopeDecode(t *testing.T) {
	fb := newFakeBackend(t)
	id := uuid.New()
	fb.router.GET("/products/:id", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "data": gin.H{
			"id": id.String(), "name": "Organic Compost 5kg", "type": "fertilizer", "price": "450",
		}})
	})

	p, err := fb.client("").GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Organic Compost 5kg", p.Name)
	assert.Equal(t, "450", p.Price.String())
}

func TestClient_PlainBodyDecode(t *testing.T) {
	// Some endpoints respond without the envelope wrapper.
	fb := newFakeBackend(t)
	fb.router.GET("/api/payment/stripe-config", func(c *gin.Context) {
		c.JSON(200, gin.H{"publishableKey": "pk_test_abc"})
	})

	cfg, err := fb.client("").GetStripeConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pk_test_abc", cfg.PublishableKey)
}

func TestClient_ServerErrorMapping(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/cart", func(c *gin.Context) {
		c.JSON(401, gin.H{"success": false, "message": "jwt expired"})
	})

	_, err := fb.client("stale").GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, IsServer(err))
	assert.Equal(t, 401, StatusOf(err))
	assert.Equal(t, "Unauthorized. Please login again.", err.Error())
}

func TestClient_ServerMessagePreferredOn400(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.POST("/auth/login", func(c *gin.Context) {
		c.JSON(400, gin.H{"success": false, "error": "Email or password incorrect"})
	})

	_, err := fb.client("").Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "Email or password incorrect", err.Error())
}

func TestClient_NetworkError(t *testing.T) {
	fb := newFakeBackend(t)
	fb.server.Close()

	_, err := fb.client("").GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.NotEmpty(t, err.Error())
}

func TestClient_ValidationSkipsNetwork(t *testing.T) {
	fb := newFakeBackend(t)

	_, err := fb.client("").Login(context.Background(), LoginRequest{Email: "", Password: "pw"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Email is required", err.Error())
	assert.Zero(t, fb.requests)

	_, err = fb.client("").GetProduct(context.Background(), uuid.Nil)
	assert.True(t, IsValidation(err))
	assert.Zero(t, fb.requests)
}

func TestClient_ContextCancellation(t *testing.T) {
	fb := newFakeBackend(t)
	fb.router.GET("/cart", func(c *gin.Context) {
		time.Sleep(200 * time.Millisecond)
		c.JSON(200, gin.H{"success": true})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fb.client("tok").GetCart(ctx)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestClient_UpdateUserRoleValidation(t *testing.T) {
	fb := newFakeBackend(t)

	_, err := fb.client("tok").UpdateUserRole(context.Background(), uuid.New(), "owner")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, `Role must be either "user" or "admin"`, err.Error())
	assert.Zero(t, fb.requests)
}

func TestClient_UpdateOrderStatusValidation(t *testing.T) {
	fb := newFakeBackend(t)

	_, err := fb.client("tok").UpdateOrderStatus(context.Background(), uuid.New(), model.OrderStatus("Shipped"), "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "Status must be one of: Processing, Delivered, Cancelled", err.Error())
	assert.Zero(t, fb.requests)
}

func TestClient_ResetPasswordOTPValidation(t *testing.T) {
	fb := newFakeBackend(t)

	err := fb.client("").ResetPassword(context.Background(), "a@b.c", "12345", "newpass123")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Zero(t, fb.requests)

	err = fb.client("").ResetPassword(context.Background(), "a@b.c", "", "newpass123")
	assert.Equal(t, "OTP is required", err.Error())
}
