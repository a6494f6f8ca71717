package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transdom/schemas"
)

func TestFormatPrice(t *testing.T) {
	tests := map[float64]string{
		85378.48:   "85,378.48",
		5000:       "5,000.00",
		0:          "0.00",
		999.5:      "999.50",
		1234567.89: "1,234,567.89",
		999.999:    "1,000.00",
		MAX_PRICE:  "1,000,000,000,000,000.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(in), "FormatPrice(%v)", in)
	}
}

func TestValidPrice(t *testing.T) {
	assert.True(t, ValidPrice(0))
	assert.True(t, ValidPrice(85378.48))
	assert.True(t, ValidPrice(MAX_PRICE))
	assert.False(t, ValidPrice(-0.01))
	assert.False(t, ValidPrice(1e19))
	assert.False(t, ValidPrice(math.Inf(1)))
	assert.False(t, ValidPrice(math.NaN()))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusFor(nil))
	assert.Equal(t, http.StatusBadRequest, StatusFor(InvalidInput("bad %s", "weight")))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("lookup: %w", NotFound("Zone 'X' not found"))))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(ErrUnauthorized))
	assert.Equal(t, http.StatusForbidden, StatusFor(ErrForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("socket closed")))
}

func TestPublicMessage(t *testing.T) {
	err := fmt.Errorf("get price: %w", NotFound("Zone '%s' not found", "MARS"))
	assert.Equal(t, "Zone 'MARS' not found", PublicMessage(err))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSendResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	SendResponse(rec, http.StatusOK, "", []string{"EUROPE"}, 0)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `["EUROPE"]`, rec.Body.String())

	rec = httptest.NewRecorder()
	SendResponse(rec, http.StatusNotFound, "Zone 'X' not found", nil, 0)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Zone 'X' not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	SendResponse(rec, http.StatusNoContent, "", nil, 0)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSendErrorHidesInternalCause(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)

	rec := httptest.NewRecorder()
	SendError(rec, req, errors.New("dial tcp 10.0.0.7:27017: refused"), CANNOT_FIND_RATES_IN_MONGODB)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.7")

	body := schemas.ApiResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CANNOT_FIND_RATES_IN_MONGODB, body.Code)
	assert.Equal(t, SendInternalError(CANNOT_FIND_RATES_IN_MONGODB), body.Message)

	rec = httptest.NewRecorder()
	SendError(rec, req, InvalidInput("Field 'zone' is required"), CANNOT_UPSERT_RATE_IN_MONGODB)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Field 'zone' is required"}`, rec.Body.String())
}
