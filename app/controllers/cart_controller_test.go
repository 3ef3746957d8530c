package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/router"
	"github.com/sommystore/storefront/pkg/store"
)

func newAPI(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("API_BASE_URL", "")

	st := store.New(store.NewMemory())
	cart := services.NewCartService(st, bus.New())
	ctrl := NewCartController(cart)

	r := router.New()
	r.Get("/api/cart", "", ctrl.Show)
	r.Post("/api/cart/items", "", ctrl.Add)
	r.Put("/api/cart/items/{index}", "", ctrl.SetQuantity)
	r.Delete("/api/cart/items/{index}", "", ctrl.Remove)
	r.Delete("/api/cart", "", ctrl.Clear)

	return r.Handler()
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Errors map[string]string
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

type cartPayload struct {
	Items []map[string]interface{} `json:"items"`
	Total float64                  `json:"total"`
	Count int                      `json:"count"`
}

func cartOf(t *testing.T, env envelope) cartPayload {
	t.Helper()
	var cart cartPayload
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	return cart
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	api := newAPI(t)

	rec, env := doJSON(t, api, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, cartOf(t, env).Count)

	rec, env = doJSON(t, api, http.MethodPost, "/api/cart/items",
		`{"product":{"_id":"a","name":"Sneakers","price":10},"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 20.0, cartOf(t, env).Total)

	rec, env = doJSON(t, api, http.MethodPost, "/api/cart/items",
		`{"product":{"_id":"b","name":"Hat","price":5},"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := cartOf(t, env)
	assert.Equal(t, 25.0, cart.Total)
	assert.Equal(t, 3, cart.Count)

	rec, env = doJSON(t, api, http.MethodPut, "/api/cart/items/0", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 55.0, cartOf(t, env).Total)

	rec, env = doJSON(t, api, http.MethodDelete, "/api/cart/items/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5.0, cartOf(t, env).Total)

	rec, env = doJSON(t, api, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, cartOf(t, env).Count)
}

func TestCartBadIndexOverHTTP(t *testing.T) {
	api := newAPI(t)

	rec, _ := doJSON(t, api, http.MethodPut, "/api/cart/items/notanumber", `{"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, api, http.MethodDelete, "/api/cart/items/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartMalformedBody(t *testing.T) {
	api := newAPI(t)

	rec, _ := doJSON(t, api, http.MethodPost, "/api/cart/items", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
