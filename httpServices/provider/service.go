package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"otp-order-manager/logger"
	providerTypes "otp-order-manager/types/provider"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client issues exactly one GET per call against the provider REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client. A nil httpClient gets transport defaults
// with no timeout override.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Get performs the request and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	logger.Debug("Provider GET " + endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrTransport, endpoint, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned a non-JSON body", ErrTransport, endpoint)
	}

	return body, nil
}

func (c *Client) Balance(ctx context.Context, apiKey string) ([]byte, error) {
	return c.Get(ctx, EndpointBalance, url.Values{"api_key": {apiKey}})
}

func (c *Client) Countries(ctx context.Context) ([]byte, error) {
	return c.Get(ctx, EndpointCountries, nil)
}

func (c *Client) Operators(ctx context.Context, country string) ([]byte, error) {
	return c.Get(ctx, EndpointOperators, url.Values{"negara": {country}})
}

func (c *Client) Services(ctx context.Context, country string) ([]byte, error) {
	return c.Get(ctx, EndpointServices, url.Values{"negara": {country}})
}

func (c *Client) Order(ctx context.Context, apiKey, country, service, operator string) ([]byte, error) {
	return c.Get(ctx, EndpointOrder, url.Values{
		"api_key":  {apiKey},
		"negara":   {country},
		"layanan":  {service},
		"operator": {operator},
	})
}

func (c *Client) SMS(ctx context.Context, apiKey, orderID string) ([]byte, error) {
	return c.Get(ctx, EndpointSMS, url.Values{"api_key": {apiKey}, "id": {orderID}})
}

func (c *Client) Cancel(ctx context.Context, apiKey, orderID string) ([]byte, error) {
	return c.Get(ctx, EndpointCancel, url.Values{"api_key": {apiKey}, "id": {orderID}})
}

// DecodeEnvelope reads the {success, message, data} wrapper. A reply
// with success:false comes back as *BusinessError alongside the envelope.
func DecodeEnvelope(body []byte) (*providerTypes.Envelope, error) {
	var env providerTypes.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decode envelope: %v", ErrTransport, err)
	}
	if !env.Success {
		return &env, &BusinessError{Message: env.Message}
	}
	return &env, nil
}

// DecodeData unmarshals the data field of a successful envelope into v.
func DecodeData(body []byte, v interface{}) error {
	env, err := DecodeEnvelope(body)
	if err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("%w: empty data", ErrTransport)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrTransport, err)
	}
	return nil
}
