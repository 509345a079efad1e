package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/entity"
	"boxoffice/gateway"
)

func newBackend(t *testing.T, handler http.Handler, onAuthError func()) *gateway.Backend {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return gateway.NewBackend(server.URL, gateway.NewBackendHTTPClient("session-token", onAuthError))
}

func TestTransport_AttachesSessionCookie(t *testing.T) {
	var gotCookie string
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("SESSION"); err == nil {
			gotCookie = cookie.Value
		}
		w.Write([]byte(`{"user_id":"u-1","nickname":"jade","role":"USER"}`))
	}), nil)

	_, err := gateway.NewIdentityClient(backend).Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "session-token", gotCookie)
}

func TestTransport_AuthErrorHook(t *testing.T) {
	var hookCalls atomic.Int64
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), func() {
		hookCalls.Add(1)
	})

	_, err := gateway.NewSeatsClient(backend).List(context.Background(), "ev-1")
	require.Error(t, err)

	var backendErr *entity.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusUnauthorized, backendErr.StatusCode)
	assert.Equal(t, int64(1), hookCalls.Load())
}

func TestTransport_NoHookOnSuccess(t *testing.T) {
	var hookCalls atomic.Int64
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}), func() {
		hookCalls.Add(1)
	})

	_, err := gateway.NewSeatsClient(backend).List(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), hookCalls.Load())
}

func TestReservationsClient_BookConflict(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"seat already reserved"}`))
	}), nil)

	_, err := gateway.NewReservationsClient(backend).Book(context.Background(), entity.PaymentAttempt{})
	require.ErrorIs(t, err, entity.ErrConflict)
	assert.Contains(t, err.Error(), "seat already reserved")
}

func TestReservationsClient_BookCreated(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/reservations", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"reservation_id":"r-1","message":"reserved"}`))
	}), nil)

	result, err := gateway.NewReservationsClient(backend).Book(context.Background(), entity.PaymentAttempt{})
	require.NoError(t, err)
	assert.Equal(t, "r-1", result.ReservationID)
}

func TestReservationsClient_VerifyRejected(t *testing.T) {
	backend := newBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment/complete", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"amount mismatch"}`))
	}), nil)

	err := gateway.NewReservationsClient(backend).VerifyPayment(context.Background(), entity.PaymentAttempt{})
	require.Error(t, err)

	var backendErr *entity.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "amount mismatch", backendErr.Message)
}

func TestPaymentProviderClient_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/payments", r.URL.Path)
		w.Write([]byte(`{"payment_id":"p-1","code":"PAYMENT_CANCELLED","message":"user closed the window"}`))
	}))
	t.Cleanup(server.Close)

	client := gateway.NewPaymentProviderClient(server.URL, gateway.NewProviderHTTPClient())

	result, err := client.RequestPayment(context.Background(), entity.PaymentRequest{PaymentID: "p-1"})
	require.NoError(t, err)
	assert.True(t, result.Cancelled())
}

func TestPaymentProviderClient_ProviderDown(t *testing.T) {
	client := gateway.NewPaymentProviderClient("http://127.0.0.1:1", gateway.NewProviderHTTPClient())

	_, err := client.RequestPayment(context.Background(), entity.PaymentRequest{})
	require.Error(t, err)
}
