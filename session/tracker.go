// Package session keeps the state of one operator session: the catalog
// panels, the last known balance, the active order and the order history.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"otp-order-manager/httpServices/provider"
	"otp-order-manager/logger"
	"otp-order-manager/models/order"
	providerTypes "otp-order-manager/types/provider"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyKey            = errors.New("enter an API key first")
	ErrNoActiveOrder       = errors.New("no active order")
	ErrOrderNotPending     = errors.New("the active order is no longer pending")
	ErrCancelAborted       = errors.New("cancellation not confirmed")
	ErrIncompleteSelection = errors.New("select a country, an operator and a service first")
	ErrUnknownOrder        = errors.New("order is not in this session's history")
	ErrInvalidTransition   = errors.New("invalid order status transition")
)

// Relay is the server surface the tracker drives.
type Relay interface {
	SetKey(ctx context.Context, apiKey string) (decimal.NullDecimal, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
	Countries(ctx context.Context) ([]providerTypes.Country, error)
	Operators(ctx context.Context, country string) ([]string, error)
	Services(ctx context.Context, country string) ([]providerTypes.Service, error)
	CreateOrder(ctx context.Context, country, operator, service string) (*providerTypes.OrderData, error)
	CheckOTP(ctx context.Context, orderID string) (*providerTypes.OTPData, error)
	CancelOrder(ctx context.Context, orderID string) (*providerTypes.CancelData, error)
}

// ConfirmFunc asks the operator a yes/no question.
type ConfirmFunc func(prompt string) bool

// ActiveOrder is the single order eligible for OTP and cancel actions.
type ActiveOrder struct {
	ID     string
	Phone  string
	Label  string
	Status order.Status
}

// Actionable reports whether OTP and cancel controls apply.
func (a ActiveOrder) Actionable() bool {
	return a.Status == order.StatusPending
}

// HistoryEntry is one order seen during the session.
type HistoryEntry struct {
	ID        string
	Phone     string
	Label     string
	Status    order.Status
	OTP       string
	Refunded  decimal.NullDecimal
	CreatedAt time.Time
}

func (e *HistoryEntry) transition(next order.Status) error {
	if !e.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.Status, next)
	}
	e.Status = next
	return nil
}

// CatalogResult carries the two independent fetches of SelectCountry.
type CatalogResult struct {
	Operators    []string
	Services     []providerTypes.Service
	OperatorsErr error
	ServicesErr  error
}

type Tracker struct {
	relay   Relay
	confirm ConfirmFunc

	mu        sync.Mutex
	countries []providerTypes.Country
	country   string
	operators []string
	services  []providerTypes.Service
	balance   decimal.NullDecimal
	activeID  string
	history   []*HistoryEntry
	byID      map[string]*HistoryEntry
}

// NewTracker builds an empty session. A nil confirm refuses every cancellation.
func NewTracker(relay Relay, confirm ConfirmFunc) *Tracker {
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Tracker{
		relay:   relay,
		confirm: confirm,
		byID:    make(map[string]*HistoryEntry),
	}
}

// SetKey submits the key to the relay and records the reported balance.
func (t *Tracker) SetKey(ctx context.Context, apiKey string) (decimal.NullDecimal, error) {
	if apiKey == "" {
		return decimal.NullDecimal{}, ErrEmptyKey
	}
	balance, err := t.relay.SetKey(ctx, apiKey)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	if balance.Valid {
		t.mu.Lock()
		t.balance = balance
		t.mu.Unlock()
	}
	return balance, nil
}

func (t *Tracker) RefreshBalance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := t.relay.Balance(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	t.mu.Lock()
	t.balance = decimal.NullDecimal{Decimal: balance, Valid: true}
	t.mu.Unlock()
	return balance, nil
}

// ListCountries replaces the country list. On failure the previous list stays.
func (t *Tracker) ListCountries(ctx context.Context) ([]providerTypes.Country, error) {
	countries, err := t.relay.Countries(ctx)
	if err != nil {
		return t.Countries(), err
	}
	t.mu.Lock()
	t.countries = countries
	t.mu.Unlock()
	return countries, nil
}

// SelectCountry loads operators and services for id concurrently. Each
// panel is stored on its own; one failing never blanks the other. An
// empty id clears both panels.
func (t *Tracker) SelectCountry(ctx context.Context, id string) CatalogResult {
	t.mu.Lock()
	t.country = id
	t.operators = nil
	t.services = nil
	t.mu.Unlock()

	var result CatalogResult
	if id == "" {
		return result
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Operators, result.OperatorsErr = t.relay.Operators(ctx, id)
	}()
	go func() {
		defer wg.Done()
		result.Services, result.ServicesErr = t.relay.Services(ctx, id)
	}()
	wg.Wait()

	t.mu.Lock()
	defer t.mu.Unlock()
	// A newer selection wins over a slow fetch.
	if t.country != id {
		return result
	}
	if result.OperatorsErr == nil {
		t.operators = result.Operators
	}
	if result.ServicesErr == nil {
		t.services = result.Services
	}
	return result
}

// CreateOrder rents a number and makes it the active order.
func (t *Tracker) CreateOrder(ctx context.Context, country, operator, service string) (ActiveOrder, error) {
	if country == "" || operator == "" || service == "" {
		return ActiveOrder{}, ErrIncompleteSelection
	}

	data, err := t.relay.CreateOrder(ctx, country, operator, service)
	if err != nil {
		return ActiveOrder{}, err
	}
	if data.OrderID == "" {
		return ActiveOrder{}, fmt.Errorf("%w: order id missing", provider.ErrTransport)
	}

	t.mu.Lock()
	// A reissued id keeps its recorded entry and status.
	entry, seen := t.byID[data.OrderID.String()]
	if !seen {
		entry = &HistoryEntry{
			ID:        data.OrderID.String(),
			Phone:     data.Number.String(),
			Label:     t.serviceLabelLocked(service),
			Status:    order.StatusPending,
			CreatedAt: time.Now(),
		}
		t.history = append(t.history, entry)
		t.byID[entry.ID] = entry
	}
	t.activeID = entry.ID
	active := activeFrom(entry)
	t.mu.Unlock()

	// The provider debits the balance when the number is issued.
	if _, err := t.RefreshBalance(ctx); err != nil {
		logger.Warning("Balance refresh after order failed: " + err.Error())
	}
	return active, nil
}

// CheckOTP fetches the code for the active order and completes it.
func (t *Tracker) CheckOTP(ctx context.Context) (string, error) {
	id, err := t.actionableID()
	if err != nil {
		return "", err
	}

	data, err := t.relay.CheckOTP(ctx, id)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	entry := t.byID[id]
	if err := entry.transition(order.StatusCompleted); err != nil {
		return "", err
	}
	entry.OTP = data.OTP.String()
	return entry.OTP, nil
}

// CancelOrder cancels the active order after confirmation and clears it.
func (t *Tracker) CancelOrder(ctx context.Context) (decimal.Decimal, error) {
	id, err := t.actionableID()
	if err != nil {
		return decimal.Zero, err
	}
	if !t.confirm(fmt.Sprintf("Cancel order %s?", id)) {
		return decimal.Zero, ErrCancelAborted
	}

	data, err := t.relay.CancelOrder(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	t.mu.Lock()
	entry := t.byID[id]
	if err := entry.transition(order.StatusCanceled); err != nil {
		t.mu.Unlock()
		return decimal.Zero, err
	}
	entry.Refunded = decimal.NullDecimal{Decimal: data.RefundedAmount, Valid: true}
	if t.activeID == id {
		t.activeID = ""
	}
	t.mu.Unlock()

	if _, err := t.RefreshBalance(ctx); err != nil {
		logger.Warning("Balance refresh after cancel failed: " + err.Error())
	}
	return data.RefundedAmount, nil
}

// ViewHistoryEntry reopens a stored order as the active one. It never
// calls the relay and never changes the entry's status.
func (t *Tracker) ViewHistoryEntry(id string) (ActiveOrder, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byID[id]
	if !ok {
		return ActiveOrder{}, ErrUnknownOrder
	}
	t.activeID = id
	return activeFrom(entry), nil
}

func (t *Tracker) actionableID() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.activeID == "" {
		return "", ErrNoActiveOrder
	}
	if t.byID[t.activeID].Status != order.StatusPending {
		return "", ErrOrderNotPending
	}
	return t.activeID, nil
}

func (t *Tracker) serviceLabelLocked(code string) string {
	for _, s := range t.services {
		if s.Code == code {
			return ServiceLabel(s)
		}
	}
	return code
}

func activeFrom(e *HistoryEntry) ActiveOrder {
	return ActiveOrder{ID: e.ID, Phone: e.Phone, Label: e.Label, Status: e.Status}
}

// Active returns the active order, if any.
func (t *Tracker) Active() (ActiveOrder, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.activeID == "" {
		return ActiveOrder{}, false
	}
	return activeFrom(t.byID[t.activeID]), true
}

// History returns copies of all entries in creation order.
func (t *Tracker) History() []HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]HistoryEntry, len(t.history))
	for i, e := range t.history {
		out[i] = *e
	}
	return out
}

func (t *Tracker) Countries() []providerTypes.Country {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]providerTypes.Country(nil), t.countries...)
}

func (t *Tracker) SelectedCountry() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.country
}

func (t *Tracker) Operators() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.operators...)
}

func (t *Tracker) Services() []providerTypes.Service {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]providerTypes.Service(nil), t.services...)
}

func (t *Tracker) Balance() decimal.NullDecimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balance
}
