package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusEndpoint(t *testing.T) {
	s, mock, _, err := NewMockTestServer(testSecret)
	require.NoError(t, err)
	RegisterStatusEndpoint(s)

	mock.Mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ok", resp.Database)
	assert.Equal(t, "ok", resp.Cache)
}

func TestStatusEndpointReportsDatabaseOutage(t *testing.T) {
	s, mock, _, err := NewMockTestServer(testSecret)
	require.NoError(t, err)
	RegisterStatusEndpoint(s)

	mock.Mock.ExpectQuery(`SELECT 1`).
		WillReturnError(errors.New("connection refused"))

	req := httptest.NewRequest("GET", "/status", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
