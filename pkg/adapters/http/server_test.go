package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdict-dev/verdict"
	httpAdapter "github.com/verdict-dev/verdict/pkg/adapters/http"
	"github.com/verdict-dev/verdict/pkg/domain"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	engine, err := verdict.NewFromStates([]domain.RawState{
		{Name: "open"},
		{Name: "closed", Conditions: []string{"closed=true"}, Overrides: []string{"open"}},
		{Name: "urgent", Conditions: []string{"priority>3"}},
	})
	require.NoError(t, err)
	return httpAdapter.NewHandler(engine)
}

func postResolve(t *testing.T, handler http.Handler, body string) (*httptest.ResponseRecorder, httpAdapter.ResolveResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp httpAdapter.ResolveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestResolveEndpoint(t *testing.T) {
	handler := testHandler(t)

	rec, resp := postResolve(t, handler, `{"metadata":{"closed":false}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "open", resp.State)
	assert.True(t, resp.Matched)

	rec, resp = postResolve(t, handler, `{"metadata":{"closed":true}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "closed", resp.State)
}

func TestResolveEndpoint_Ambiguous(t *testing.T) {
	handler := testHandler(t)

	rec, resp := postResolve(t, handler, `{"metadata":{"closed":true,"priority":5}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Matched)
	assert.Equal(t, []string{"closed", "urgent"}, resp.Engaged)
	assert.Contains(t, resp.Error, "ambiguous")
}

func TestResolveEndpoint_BadBody(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/resolve", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveEndpoint_BadMetadata(t *testing.T) {
	handler := testHandler(t)
	rec, _ := postResolve(t, handler, `{"metadata":{"closed":{"nested":1}}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStatesEndpoint(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/states", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var states []domain.StateInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	assert.Len(t, states, 3)
}

func TestGraphEndpoint(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "graph TD"))
	assert.Contains(t, rec.Body.String(), "closed -. overrides .-> open")
}
