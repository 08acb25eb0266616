package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientDo_SendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.Equal(t, "/api/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
	}))
	defer srv.Close()

	var out map[string]string
	err := newClient(srv.URL, "tok-123").do(context.Background(), "GET", "/api/health", nil, &out)
	require.NoError(t, err)
	require.Equal(t, "OK", out["status"])
}

func TestClientDo_PostsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "user@gmail.com", body["email"])
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "t"})
	}))
	defer srv.Close()

	err := newClient(srv.URL, "").do(context.Background(), "POST", "/api/auth/login",
		map[string]string{"email": "user@gmail.com", "password": "user123"}, nil)
	require.NoError(t, err)
}

func TestClientDo_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Out of stock"}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL, "t").do(context.Background(), "POST", "/api/sweets/1/purchase", nil, nil)
	require.EqualError(t, err, "Out of stock (HTTP 400)")
}

func TestClientDo_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newClient(srv.URL, "").do(context.Background(), "GET", "/api/health", nil, nil)
	require.EqualError(t, err, "HTTP 502")
}
