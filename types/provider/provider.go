package provider

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the common {success, message, data} shape of provider replies.
type Envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    stdjson.RawMessage `json:"data,omitempty"`
}

// FlexString accepts a JSON string or number. The provider is not
// consistent about quoting ids and phone numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

type BalanceData struct {
	Saldo decimal.Decimal `json:"saldo"`
}

type Country struct {
	ID   FlexString `json:"id_negara"`
	Name string     `json:"nama_negara"`
}

// ServiceInfo is one entry of layanan.php: display name and price.
type ServiceInfo struct {
	Name  string          `json:"layanan"`
	Price decimal.Decimal `json:"harga"`
}

// Service is a ServiceInfo together with the code used to order it.
type Service struct {
	Code string
	ServiceInfo
}

type OrderData struct {
	OrderID FlexString `json:"order_id"`
	Number  FlexString `json:"number"`
}

type OTPData struct {
	OTP FlexString `json:"otp"`
}

type CancelData struct {
	OrderID        FlexString      `json:"order_id"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
}
