package credential

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"otp-order-manager/constants"
	"otp-order-manager/httpServices/provider"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var (
	ErrEmptyKey     = errors.New("API key is required")
	ErrMalformedKey = errors.New("API key must be 32 hexadecimal characters")
)

// RejectedError means the provider answered the validation call with success:false.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "API key rejected: " + e.Reason
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var apiKeyPattern = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)

type keyInput struct {
	APIKey string `validate:"required,apikey"`
}

// BalanceChecker is the single provider call used to validate a key.
type BalanceChecker interface {
	Balance(ctx context.Context, apiKey string) ([]byte, error)
}

// Service validates candidate keys and stores accepted ones.
type Service struct {
	Store    *Store
	provider BalanceChecker
	validate *validator.Validate
}

func NewCredentialService(store *Store, checker BalanceChecker) *Service {
	v := validator.New()
	v.RegisterValidation("apikey", func(fl validator.FieldLevel) bool {
		return apiKeyPattern.MatchString(fl.Field().String())
	})
	return &Service{
		Store:    store,
		provider: checker,
		validate: v,
	}
}

// CheckFormat applies the local rules without any network call.
func (s *Service) CheckFormat(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	err := s.validate.Struct(keyInput{APIKey: key})
	if err == nil {
		return key, nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return "", ErrEmptyKey
	}
	return "", ErrMalformedKey
}

// SetKey validates raw against the provider and stores it on success.
// It returns the provider's saldo value verbatim. On any failure the
// previously stored key is left as it was.
func (s *Service) SetKey(ctx context.Context, raw string) (stdjson.RawMessage, error) {
	key, err := s.CheckFormat(raw)
	if err != nil {
		return nil, err
	}

	body, err := s.provider.Balance(ctx, key)
	if err != nil {
		return nil, err
	}

	env, err := provider.DecodeEnvelope(body)
	if err != nil {
		var be *provider.BusinessError
		if errors.As(err, &be) {
			reason := be.Message
			if reason == "" {
				reason = constants.MessageUnknownProvider
			}
			return nil, &RejectedError{Reason: reason}
		}
		return nil, err
	}

	var data struct {
		Saldo stdjson.RawMessage `json:"saldo"`
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: decode balance: %v", provider.ErrTransport, err)
		}
	}

	s.Store.Set(key)
	return data.Saldo, nil
}

// Seed stores a key from configuration after the format check only.
func (s *Service) Seed(raw string) error {
	key, err := s.CheckFormat(raw)
	if err != nil {
		return err
	}
	s.Store.Set(key)
	return nil
}
