package webutils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJson(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJson(rec, http.StatusOK, map[string]string{"ack": "ok"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ack":"ok"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadGateway, errors.New("viewer gone"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"viewer gone"}`, rec.Body.String())
}

func TestReadJson(t *testing.T) {
	var v struct{ A int }
	require.NoError(t, ReadJson(httptest.NewRequest("POST", "/", strings.NewReader(`{"A": 3}`)), &v))
	assert.Equal(t, 3, v.A)

	assert.Error(t, ReadJson(httptest.NewRequest("POST", "/", strings.NewReader("")), &v))
	assert.Error(t, ReadJson(httptest.NewRequest("POST", "/", strings.NewReader("{")), &v))
}
