package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient_ResolveDisplayName(t *testing.T) {
	req := require.New(t)
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		switch r.URL.Path {
		case "/users/u-alice":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"first_name":"Alice","last_name":"Smith"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	name, err := c.ResolveDisplayName(context.Background(), "u-alice")
	req.NoError(err)
	req.Equal("Alice Smith", name)

	// Second lookup is served from cache
	_, err = c.ResolveDisplayName(context.Background(), "u-alice")
	req.NoError(err)
	req.Equal(1, hits)

	_, err = c.ResolveDisplayName(context.Background(), "u-nobody")
	req.ErrorIs(err, ErrNotFound)
}

func TestClient_EmptyNameIsNotFound(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"first_name":"","last_name":""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ResolveDisplayName(context.Background(), "u-blank")
	req.ErrorIs(err, ErrNotFound)
}

func TestClient_Unconfigured(t *testing.T) {
	req := require.New(t)
	c := NewClient("")
	_, err := c.ResolveDisplayName(context.Background(), "u-alice")
	req.ErrorIs(err, ErrUnconfigured)
}
