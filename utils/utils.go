package utils

import (
	"regexp"
	"time"

	"otp-order-manager/types"

	"github.com/gofiber/fiber/v2"
)

const redacted = "[REDACTED]"

var (
	queryKeyPattern = regexp.MustCompile(`(?i)((?:api_key|apiKey)=)[^&\s]*`)
	jsonKeyPattern  = regexp.MustCompile(`(?i)("(?:api_key|apiKey)"\s*:\s*)"[^"]*"`)
)

// RedactSecrets masks api key values in query strings and JSON bodies.
func RedactSecrets(s string) string {
	s = queryKeyPattern.ReplaceAllString(s, "${1}"+redacted)
	return jsonKeyPattern.ReplaceAllString(s, `${1}"`+redacted+`"`)
}

// CreateSanitizedLogEntry copies request and response data out of the
// fiber context, which is reused after the handler returns.
func CreateSanitizedLogEntry(c *fiber.Ctx, requestID string) types.LogEntry {
	method := string([]byte(c.Method()))
	url := RedactSecrets(string([]byte(c.OriginalURL())))
	requestBody := RedactSecrets(string(c.Body()))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		RequestID:       requestID,
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
