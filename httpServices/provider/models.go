package provider

import (
	"errors"
)

const (
	EndpointBalance   = "/balance.php"
	EndpointCountries = "/negara.php"
	EndpointOperators = "/operator.php"
	EndpointServices  = "/layanan.php"
	EndpointOrder     = "/order.php"
	EndpointSMS       = "/sms.php"
	EndpointCancel    = "/cancel.php"
)

// ErrTransport covers network failures, non-2xx statuses and bodies that
// are not JSON. The upstream body is never surfaced with it.
var ErrTransport = errors.New("provider request failed")

// BusinessError is a provider reply with success:false.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return "provider reported failure"
	}
	return e.Message
}
