package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Random(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "Bearer demo-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"Stay hungry.","author":"Stewart Brand"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "demo-token")

	q, err := client.Random(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Stay hungry.", q.Text)
	assert.Equal(t, "Stewart Brand", q.Author)
}

func TestClient_Random_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong-token")

	_, err := client.Random(context.Background())
	assert.ErrorContains(t, err, "status 401")
}

func TestClient_Random_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "demo-token")

	_, err := client.Random(context.Background())
	assert.ErrorContains(t, err, "failed to decode")
}

func TestClient_Random_EmptyQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"","author":"Nobody"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "demo-token")

	_, err := client.Random(context.Background())
	assert.ErrorContains(t, err, "empty quote")
}

func TestClient_Random_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "demo-token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Random(ctx)
	assert.Error(t, err)
}
