package relay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"otp-order-manager/httpServices/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, nil)
}

func reply(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestSetKey(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/set-key": func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"apiKey":"abc"}`, string(body))
			reply(http.StatusOK, `{"success":true,"message":"ok","balance":"15000.5"}`)(w, r)
		},
	})

	balance, err := client.SetKey(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, balance.Valid)
	assert.Equal(t, "15000.5", balance.Decimal.String())
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/balance": reply(http.StatusUnauthorized, `{"success":false,"message":"API key has not been set"}`),
	})

	_, err := client.Balance(context.Background())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "API key has not been set", se.Error())
}

func TestBusinessFailureSurfacesProviderMessage(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/otp": reply(http.StatusOK, `{"success":false,"message":"SMS belum masuk"}`),
	})

	_, err := client.CheckOTP(context.Background(), "9")
	var be *provider.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "SMS belum masuk", be.Message)
}

func TestCatalogDecoding(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/countries": reply(http.StatusOK, `{"success":true,"data":[{"id_negara":6,"nama_negara":"Indonesia"}]}`),
		"/api/operators": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "6", r.URL.Query().Get("country"))
			reply(http.StatusOK, `{"success":true,"data":{"6":["any","telkomsel"]}}`)(w, r)
		},
		"/api/services": reply(http.StatusOK, `{"6":{"wa":{"layanan":"WhatsApp","harga":3500},"tg":{"layanan":"Telegram","harga":"2000"}}}`),
	})
	ctx := context.Background()

	countries, err := client.Countries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "6", countries[0].ID.String())
	assert.Equal(t, "Indonesia", countries[0].Name)

	ops, err := client.Operators(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"any", "telkomsel"}, ops)

	services, err := client.Services(ctx, "6")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "tg", services[0].Code)
	assert.Equal(t, "2000", services[0].Price.String())
	assert.Equal(t, "WhatsApp", services[1].Name)
}

func TestServicesEnvelopedFailure(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/services": reply(http.StatusOK, `{"success":false,"message":"Negara tidak ditemukan"}`),
	})

	_, err := client.Services(context.Background(), "999")
	var be *provider.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Negara tidak ditemukan", be.Message)
}

func TestOrderLifecycleCalls(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/order": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "6", q.Get("country"))
			assert.Equal(t, "any", q.Get("operator"))
			assert.Equal(t, "wa", q.Get("service"))
			reply(http.StatusOK, `{"success":true,"data":{"order_id":123,"number":"62811"}}`)(w, r)
		},
		"/api/cancel":  reply(http.StatusOK, `{"success":true,"data":{"order_id":123,"refunded_amount":3500}}`),
		"/api/history": reply(http.StatusOK, `{"success":true,"message":"ok","data":[{"order_id":"123","phone":"62811","status":"canceled"}]}`),
	})
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, "6", "any", "wa")
	require.NoError(t, err)
	assert.Equal(t, "123", order.OrderID.String())
	assert.Equal(t, "62811", order.Number.String())

	cancel, err := client.CancelOrder(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "3500", cancel.RefundedAmount.String())

	orders, err := client.History(ctx, "canceled", false)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "canceled", orders[0].Status.String())
}

func TestHistorySummary(t *testing.T) {
	client := newServer(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/history/summary": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("today"))
			reply(http.StatusOK, `{"success":true,"message":"ok","data":{"counts":{"pending":1,"completed":2,"canceled":0},"open":1,"closed":2}}`)(w, r)
		},
	})

	summary, err := client.HistorySummary(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Open)
	assert.Equal(t, int64(2), summary.Closed)
	assert.Equal(t, int64(2), summary.Counts["completed"])
}

func TestNewClientKeepsTransportDefaults(t *testing.T) {
	client := NewClient("http://localhost:3000/", nil)
	assert.Zero(t, client.httpClient.Timeout)
	assert.Equal(t, "http://localhost:3000", client.baseURL)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, nil).Countries(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}
