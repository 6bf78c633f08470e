package market

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCurrentPrice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/quotes", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(quoteResponse{Symbol: "AAPL", Price: "187.41"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "test-token")
	price, err := c.CurrentPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("187.41")))
}

func TestClientUnknownSymbol(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.CurrentPrice(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClientServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.CurrentPrice(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "500")
}

func TestClientRejectsNonPositivePrice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(quoteResponse{Symbol: "AAPL", Price: "0"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.CurrentPrice(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStaticFeed(t *testing.T) {
	t.Parallel()

	s := NewStatic(map[string]decimal.Decimal{
		"AAPL": decimal.RequireFromString("150"),
	})

	p, err := s.CurrentPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.RequireFromString("150")))

	_, err = s.CurrentPrice(context.Background(), "MSFT")
	assert.ErrorIs(t, err, ErrUnavailable)

	s.Set("MSFT", decimal.RequireFromString("300"))
	p, err = s.CurrentPrice(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.RequireFromString("300")))
}
