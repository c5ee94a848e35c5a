package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"otp-order-manager/httpServices/relay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type relayStub struct {
	mu    sync.Mutex
	hits  map[string]int
	reply map[string]string
}

func (r *relayStub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits[req.URL.Path]++
	body, ok := r.reply[req.URL.Path]
	r.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, body)
}

func (r *relayStub) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[path]
}

func runScript(t *testing.T, stub *relayStub, script string) string {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	shell := NewShell(relay.NewClient(srv.URL, nil), strings.NewReader(script), &out)
	require.NoError(t, shell.Run(context.Background()))
	return out.String()
}

func newRelayStub() *relayStub {
	return &relayStub{
		hits: map[string]int{},
		reply: map[string]string{
			"/api/set-key":   `{"success":true,"message":"ok","balance":50000}`,
			"/api/balance":   `{"success":true,"data":{"saldo":46500}}`,
			"/api/countries": `{"success":true,"data":[{"id_negara":6,"nama_negara":"Indonesia"}]}`,
			"/api/operators": `{"success":true,"data":{"6":["any"]}}`,
			"/api/services":  `{"6":{"wa":{"layanan":"WhatsApp","harga":3500}}}`,
			"/api/order":     `{"success":true,"data":{"order_id":555,"number":"628111"}}`,
			"/api/otp":       `{"success":true,"data":{"otp":"123456"}}`,
			"/api/cancel":    `{"success":true,"data":{"order_id":555,"refunded_amount":3500}}`,
		},
	}
}

func TestShellOrderFlow(t *testing.T) {
	stub := newRelayStub()
	out := runScript(t, stub, strings.Join([]string{
		"key 0123456789abcdef0123456789abcdef",
		"countries",
		"country 6",
		"order any wa",
		"cancel",
		"n",
		"otp",
		"otp",
		"history",
		"view 555",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "Balance: Rp50.000")
	assert.Contains(t, out, "Indonesia")
	assert.Contains(t, out, "WhatsApp - Rp3.500")
	assert.Contains(t, out, "Order ID : 555")
	assert.Contains(t, out, "Order kept.")
	assert.Contains(t, out, "OTP: 123456")
	assert.Contains(t, out, "Error: the active order is no longer pending")
	assert.Contains(t, out, "Status   : completed")

	assert.Zero(t, stub.count("/api/cancel"))
	assert.Equal(t, 1, stub.count("/api/otp"))
}

func TestShellCancelFlow(t *testing.T) {
	stub := newRelayStub()
	out := runScript(t, stub, strings.Join([]string{
		"otp",
		"country 6",
		"order any wa",
		"cancel",
		"y",
		"status",
		"otp",
	}, "\n"))

	assert.Contains(t, out, "Error: no active order")
	assert.Contains(t, out, "Order canceled. Refunded: Rp3.500")
	assert.Equal(t, 1, stub.count("/api/cancel"))
	assert.Zero(t, stub.count("/api/otp"))
	assert.Equal(t, 2, stub.count("/api/balance"))
}

func TestShellIsolatesCatalogFailures(t *testing.T) {
	stub := newRelayStub()
	delete(stub.reply, "/api/services")

	out := runScript(t, stub, "country 6\norder\nbogus\n")

	assert.Contains(t, out, "any")
	assert.Contains(t, out, "failed to load services")
	assert.Contains(t, out, "Error: select a country, an operator and a service first")
	assert.Contains(t, out, `unknown command "bogus"`)
}
