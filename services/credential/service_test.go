package credential

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"otp-order-manager/httpServices/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validKey = "0123456789abcdef0123456789ABCDEF"
	otherKey = "ffffffffffffffffffffffffffffffff"
)

type fakeChecker struct {
	calls []string
	body  string
	err   error
}

func (f *fakeChecker) Balance(_ context.Context, apiKey string) ([]byte, error) {
	f.calls = append(f.calls, apiKey)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.body), nil
}

func TestSetKeyRejectsLocallyWithoutNetwork(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrEmptyKey},
		{"blank", "   ", ErrEmptyKey},
		{"short", "abc123", ErrMalformedKey},
		{"non hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", ErrMalformedKey},
		{"hex prefix", "0x0123456789abcdef0123456789abcd", ErrMalformedKey},
		{"too long", validKey + "0", ErrMalformedKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{body: `{"success":true,"data":{"saldo":1}}`}
			svc := NewCredentialService(NewStore(), checker)
			svc.Store.Set(otherKey)

			_, err := svc.SetKey(context.Background(), tt.raw)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, checker.calls)

			key, _ := svc.Store.Get()
			assert.Equal(t, otherKey, key)
		})
	}
}

func TestSetKeyStoresAcceptedKey(t *testing.T) {
	checker := &fakeChecker{body: `{"success":true,"data":{"saldo":150000}}`}
	svc := NewCredentialService(NewStore(), checker)

	balance, err := svc.SetKey(context.Background(), " "+validKey+" ")
	require.NoError(t, err)
	assert.Equal(t, "150000", string(balance))
	assert.Equal(t, []string{validKey}, checker.calls)

	key, ok := svc.Store.Get()
	assert.True(t, ok)
	assert.Equal(t, validKey, key)
}

func TestSetKeyBalanceDecoding(t *testing.T) {
	checker := &fakeChecker{body: `{"success":true,"data":{"saldo":"1250.50"}}`}
	svc := NewCredentialService(NewStore(), checker)

	balance, err := svc.SetKey(context.Background(), validKey)
	require.NoError(t, err)
	assert.Equal(t, `"1250.50"`, string(balance))

	checker.body = `{"success":true,"data":[1,2]}`
	svc.Store.Set(otherKey)
	_, err = svc.SetKey(context.Background(), validKey)
	assert.ErrorIs(t, err, provider.ErrTransport)

	key, _ := svc.Store.Get()
	assert.Equal(t, otherKey, key)
}

func TestSetKeyRejectedKeepsPreviousKey(t *testing.T) {
	tests := []struct {
		name       string
		checker    *fakeChecker
		wantReason string
	}{
		{"provider message", &fakeChecker{body: `{"success":false,"message":"Invalid API key"}`}, "Invalid API key"},
		{"no message", &fakeChecker{body: `{"success":false}`}, "unable to access the provider API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCredentialService(NewStore(), tt.checker)
			svc.Store.Set(otherKey)

			_, err := svc.SetKey(context.Background(), validKey)
			var rejected *RejectedError
			require.True(t, errors.As(err, &rejected))
			assert.Equal(t, tt.wantReason, rejected.Reason)

			key, _ := svc.Store.Get()
			assert.Equal(t, otherKey, key)
		})
	}
}

func TestSetKeyTransportFailureKeepsPreviousKey(t *testing.T) {
	checker := &fakeChecker{err: fmt.Errorf("%w: boom", provider.ErrTransport)}
	svc := NewCredentialService(NewStore(), checker)
	svc.Store.Set(otherKey)

	_, err := svc.SetKey(context.Background(), validKey)
	assert.ErrorIs(t, err, provider.ErrTransport)

	key, _ := svc.Store.Get()
	assert.Equal(t, otherKey, key)
}

func TestSeed(t *testing.T) {
	svc := NewCredentialService(NewStore(), &fakeChecker{})

	assert.ErrorIs(t, svc.Seed("nope"), ErrMalformedKey)
	assert.False(t, svc.Store.IsSet())

	require.NoError(t, svc.Seed(validKey))
	assert.True(t, svc.Store.IsSet())
}
