package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	providerTypes "otp-order-manager/types/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBuildsSingleEncodedRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, EndpointOrder, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "k", q.Get("api_key"))
		assert.Equal(t, "6", q.Get("negara"))
		assert.Equal(t, "wa", q.Get("layanan"))
		assert.Equal(t, "any & all", q.Get("operator"))
		w.Write([]byte(`{"success":true,"data":{"order_id":1,"number":"628"}}`))
	}))
	defer srv.Close()

	body, err := NewClient(srv.URL+"/", nil).Order(context.Background(), "k", "6", "wa", "any & all")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"order_id":1,"number":"628"}}`, string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non 2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"secret detail"}`))
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, nil).Countries(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTransport))
			assert.NotContains(t, err.Error(), "secret detail")
		})
	}
}

func TestGetNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, nil).Balance(context.Background(), "k")
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"success":false,"message":"Saldo tidak cukup"}`))
	require.Error(t, err)
	var be *BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Saldo tidak cukup", be.Message)
	assert.False(t, env.Success)

	var data providerTypes.OTPData
	require.NoError(t, DecodeData([]byte(`{"success":true,"data":{"otp":"123456"}}`), &data))
	assert.Equal(t, "123456", data.OTP.String())

	err = DecodeData([]byte(`{"success":true}`), &data)
	assert.True(t, errors.Is(err, ErrTransport))
}
