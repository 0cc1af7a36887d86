package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/catalog"
	"github.com/osse101/QRHunt_Go/internal/database/memory"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/handler"
	"github.com/osse101/QRHunt_Go/internal/member"
	"github.com/osse101/QRHunt_Go/internal/profile"
	"github.com/osse101/QRHunt_Go/internal/redemption"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.FromMap(map[string]string{"ifc.jpeg": "ifc"})
	require.NoError(t, err)
	store := memory.NewStore()
	return NewRouter(Options{APIKey: testAPIKey}, Deps{
		Store:      store,
		Redemption: redemption.NewService(redemption.NewEngine(cat, store), store),
		Profiles:   profile.NewService(store, nil, nil),
		Members:    member.NewService(store, nil, 8, time.Minute),
	})
}

func call(t *testing.T, h http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	if userID != "" {
		req.Header.Set(HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RedeemFlow(t *testing.T) {
	h := newTestRouter(t)

	rec := call(t, h, http.MethodPost, "/api/v1/redeem", "u1", `{"payload":"ifc.jpeg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.RedeemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.OutcomeAdded, resp.Kind)

	rec = call(t, h, http.MethodPost, "/api/v1/redeem", "u1", `{"payload":"ifc.jpeg"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.OutcomeAlreadyOwned, resp.Kind)

	rec = call(t, h, http.MethodGet, "/api/v1/inventory", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"item_id":"ifc"`)
}

func TestRouter_Routes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		method, path, user, body string
		want                     int
	}{
		{http.MethodGet, "/healthz", "", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", "", http.StatusOK},
		{http.MethodGet, "/version", "", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", "", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog", "", "", http.StatusOK},
		{http.MethodGet, "/api/v1/inventory", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/profile", "u2", "", http.StatusNotFound},
		{http.MethodPost, "/api/v1/profile", "u2", `{"name":"Ulla"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/profile", "u2", "", http.StatusOK},
		{http.MethodGet, "/api/v1/members", "u2", "", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", "u2", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := call(t, h, tt.method, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
