package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"holdings/internal/models"
	"holdings/internal/portfolio"
	"holdings/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	desk := service.NewDesk(portfolio.New(nil, logger), logger)
	r := gin.New()
	NewHandler(desk, logger).Register(r)
	return r
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type portfolioResponse struct {
	Items      []portfolio.PortfolioItem `json:"items"`
	TotalValue string                    `json:"total_value"`
}

func TestHealth(t *testing.T) {
	w := do(setupRouter(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestBuySellFlow(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/buy", gin.H{"symbol": "ABC", "price": "50", "quantity": 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/buy", gin.H{"symbol": "XYZ", "price": "25", "quantity": 20})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/portfolio", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pr portfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pr))
	assert.Len(t, pr.Items, 2)
	assert.Equal(t, "1000.0000", pr.TotalValue)

	w = do(r, http.MethodPost, "/sell", gin.H{"symbol": "ABC", "quantity": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/sell", gin.H{"symbol": "XYZ", "quantity": 20})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/portfolio", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pr))
	require.Len(t, pr.Items, 1)
	assert.Equal(t, "ABC", pr.Items[0].Symbol)
	assert.Equal(t, int64(5), pr.Items[0].Quantity)
	assert.Equal(t, "250.0000", pr.TotalValue)

	w = do(r, http.MethodGet, "/trades", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trades []models.Trade
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trades))
	assert.Len(t, trades, 4)
}

func TestSellErrors(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/sell", gin.H{"symbol": "ABC", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	do(r, http.MethodPost, "/buy", gin.H{"symbol": "ABC", "price": "50", "quantity": 2})
	w = do(r, http.MethodPost, "/sell", gin.H{"symbol": "ABC", "quantity": 3})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/sell", gin.H{"symbol": "ABC", "quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuyValidation(t *testing.T) {
	r := setupRouter(t)

	w := do(r, http.MethodPost, "/buy", gin.H{"symbol": "ABC", "price": "abc", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/buy", gin.H{"symbol": "ABC", "price": "-1", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/buy", gin.H{"price": "10", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/buy", gin.H{"symbol": "BIG", "price": "1", "quantity": int64(math.MaxInt64)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/buy", gin.H{"symbol": "BIG", "price": "1", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = do(r, http.MethodPost, "/sell", gin.H{"symbol": "BIG", "quantity": int64(math.MaxInt64)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/portfolio", nil)
	var pr portfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pr))
	assert.Empty(t, pr.Items)
	assert.Equal(t, "0.0000", pr.TotalValue)
}
