package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pointpay/backend/internal/models"
	"github.com/pointpay/backend/internal/services"
	"github.com/pointpay/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	service := services.NewPointService(store.NewMemoryBalanceStore(), store.NewMemoryHistoryStore(), 10000)
	handler := NewPointHandler(service)

	r := chi.NewRouter()
	r.Get("/point/{id}", handler.GetPoint)
	r.Get("/point/{id}/histories", handler.GetHistories)
	r.Patch("/point/{id}/charge", handler.Charge)
	r.Patch("/point/{id}/use", handler.Use)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPointHandler_GetPoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("fresh account is zero", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/point/42", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.UserPoint
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(42), resp.UserID)
		assert.Equal(t, int64(0), resp.Point)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/point/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPointHandler_ChargeAndUse(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPatch, "/point/1/charge", `{"amount": 1000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UserPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1000), resp.Point)

	rec = doJSON(t, r, http.MethodPatch, "/point/1/use", `{"amount": 500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(500), resp.Point)

	// third operation would underflow and must change nothing
	rec = doJSON(t, r, http.MethodPatch, "/point/1/use", `{"amount": 600}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/point/1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(500), resp.Point)

	rec = doJSON(t, r, http.MethodGet, "/point/1/histories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var histories []models.PointHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histories))
	require.Len(t, histories, 2)
	assert.Equal(t, models.TransactionCharge, histories[0].Type)
	assert.Equal(t, int64(1000), histories[0].Amount)
	assert.Equal(t, models.TransactionUse, histories[1].Type)
	assert.Equal(t, int64(-500), histories[1].Amount)
}

func TestPointHandler_Validation(t *testing.T) {
	r := newTestRouter(t)

	t.Run("zero amount", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/point/1/charge", `{"amount": 0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative amount", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/point/1/use", `{"amount": -5}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/point/1/charge", `{"amount": 10, "bonus": true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/point/1/charge", `{"amount": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("charge above cap", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/point/2/charge", `{"amount": 10001}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = doJSON(t, r, http.MethodGet, "/point/2/histories", "")
		var histories []models.PointHistory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histories))
		assert.Empty(t, histories)
	})

	t.Run("empty history serializes as array", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodGet, "/point/3/histories", "")
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}
