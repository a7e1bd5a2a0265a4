package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second).WithLogger(logger.Discard())
}

func TestClient_GetJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/experiences/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Kayaking"}`))
	})

	var out struct {
		Title string `json:"title"`
	}
	require.NoError(t, client.GetJSON(context.Background(), "/experiences/1", &out))
	assert.Equal(t, "Kayaking", out.Title)
}

func TestClient_PostJSONSendsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "SAVE10", in["promoCode"])
		_, _ = w.Write([]byte(`{"valid":true}`))
	})

	var out struct {
		Valid bool `json:"valid"`
	}
	err := client.PostJSON(context.Background(), "/promo/validate", map[string]string{"promoCode": "SAVE10"}, &out)
	require.NoError(t, err)
	assert.True(t, out.Valid)
}

func TestClient_ErrorBodyBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"This slot has already been booked."}`))
	})

	err := client.PostJSON(context.Background(), "/bookings", struct{}{}, nil)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "This slot has already been booked.", Message(err))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestClient_ErrorWithoutJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})

	err := client.GetJSON(context.Background(), "/experiences", nil)

	require.Error(t, err)
	assert.Empty(t, Message(err))
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.GetJSON(context.Background(), "/experiences/99", nil)
	assert.True(t, IsNotFound(err))
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"valid":`))
	})

	var out map[string]interface{}
	err := client.GetJSON(context.Background(), "/x", &out)
	require.Error(t, err)
	assert.Empty(t, Message(err))
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second).WithLogger(logger.Discard())

	err := client.GetJSON(context.Background(), "/experiences", nil)
	require.Error(t, err)
	assert.Empty(t, Message(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.GetJSON(ctx, "/experiences", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
