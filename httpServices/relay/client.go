package relay

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"otp-order-manager/httpServices/provider"
	orderModel "otp-order-manager/models/order"
	historyService "otp-order-manager/services/history"
	"otp-order-manager/types"
	providerTypes "otp-order-manager/types/provider"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrTransport is a network failure talking to the relay server.
var ErrTransport = errors.New("relay request failed")

// StatusError is a non-2xx answer from the relay, such as the 401 for a
// missing key or the 502 for a failed provider call.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned status %d", e.Code)
	}
	return e.Message
}

// Client talks to the relay's /api surface.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiResp types.ApiResponse
		_ = json.Unmarshal(raw, &apiResp)
		return nil, &StatusError{Code: resp.StatusCode, Message: apiResp.Message}
	}
	return raw, nil
}

// SetKey submits a key. The returned balance is null when the server
// did not report one.
func (c *Client) SetKey(ctx context.Context, apiKey string) (decimal.NullDecimal, error) {
	payload, err := json.Marshal(types.SetKeyRequest{APIKey: apiKey})
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	raw, err := c.do(ctx, http.MethodPost, "/api/set-key", nil, bytes.NewReader(payload))
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	var resp struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Balance decimal.NullDecimal `json:"balance"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: decode set-key response: %v", ErrTransport, err)
	}
	if !resp.Success {
		return decimal.NullDecimal{}, &provider.BusinessError{Message: resp.Message}
	}
	return resp.Balance, nil
}

func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/balance", nil, nil)
	if err != nil {
		return decimal.Zero, err
	}
	var data providerTypes.BalanceData
	if err := provider.DecodeData(raw, &data); err != nil {
		return decimal.Zero, err
	}
	return data.Saldo, nil
}

func (c *Client) Countries(ctx context.Context) ([]providerTypes.Country, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/countries", nil, nil)
	if err != nil {
		return nil, err
	}
	var countries []providerTypes.Country
	if err := provider.DecodeData(raw, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Operators returns the operator names listed for country.
func (c *Client) Operators(ctx context.Context, country string) ([]string, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/operators", url.Values{"country": {country}}, nil)
	if err != nil {
		return nil, err
	}
	var byCountry map[string][]string
	if err := provider.DecodeData(raw, &byCountry); err != nil {
		return nil, err
	}
	if ops, ok := byCountry[country]; ok {
		return ops, nil
	}
	var all []string
	for _, ops := range byCountry {
		all = append(all, ops...)
	}
	return all, nil
}

// Services returns the services for country sorted by code. The
// provider answers this one without the usual envelope.
func (c *Client) Services(ctx context.Context, country string) ([]providerTypes.Service, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/services", url.Values{"country": {country}}, nil)
	if err != nil {
		return nil, err
	}

	var top map[string]stdjson.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: decode services: %v", provider.ErrTransport, err)
	}
	if _, enveloped := top["success"]; enveloped {
		env, err := provider.DecodeEnvelope(raw)
		if err != nil {
			return nil, err
		}
		top = nil
		if err := json.Unmarshal(env.Data, &top); err != nil {
			return nil, fmt.Errorf("%w: decode services: %v", provider.ErrTransport, err)
		}
	}

	section, ok := top[country]
	if !ok {
		return nil, nil
	}
	var byCode map[string]providerTypes.ServiceInfo
	if err := json.Unmarshal(section, &byCode); err != nil {
		return nil, fmt.Errorf("%w: decode services: %v", provider.ErrTransport, err)
	}

	services := make([]providerTypes.Service, 0, len(byCode))
	for code, info := range byCode {
		services = append(services, providerTypes.Service{Code: code, ServiceInfo: info})
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Code < services[j].Code })
	return services, nil
}

func (c *Client) CreateOrder(ctx context.Context, country, operator, service string) (*providerTypes.OrderData, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/order", url.Values{
		"country":  {country},
		"operator": {operator},
		"service":  {service},
	}, nil)
	if err != nil {
		return nil, err
	}
	var data providerTypes.OrderData
	if err := provider.DecodeData(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) CheckOTP(ctx context.Context, orderID string) (*providerTypes.OTPData, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/otp", url.Values{"orderId": {orderID}}, nil)
	if err != nil {
		return nil, err
	}
	var data providerTypes.OTPData
	if err := provider.DecodeData(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (*providerTypes.CancelData, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/cancel", url.Values{"orderId": {orderID}}, nil)
	if err != nil {
		return nil, err
	}
	var data providerTypes.CancelData
	if err := provider.DecodeData(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// History reads the server-side order history.
func (c *Client) History(ctx context.Context, status string, today bool) ([]orderModel.Order, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if today {
		params.Set("today", "true")
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/history", params, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Data    []orderModel.Order `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode history: %v", ErrTransport, err)
	}
	if !resp.Success {
		return nil, &StatusError{Code: http.StatusOK, Message: resp.Message}
	}
	return resp.Data, nil
}

// HistorySummary reads the per-status order counts.
func (c *Client) HistorySummary(ctx context.Context, today bool) (*historyService.Summary, error) {
	params := url.Values{}
	if today {
		params.Set("today", "true")
	}

	raw, err := c.do(ctx, http.MethodGet, "/api/history/summary", params, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    historyService.Summary `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode summary: %v", ErrTransport, err)
	}
	if !resp.Success {
		return nil, &StatusError{Code: http.StatusOK, Message: resp.Message}
	}
	return &resp.Data, nil
}
