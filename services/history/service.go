package history

import (
	"errors"
	"fmt"
	"time"

	"otp-order-manager/models/order"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Service keeps the server-side order history for the process lifetime.
type Service struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ListFilter narrows List. Zero values mean no filter.
type ListFilter struct {
	Status order.Status
	Today  bool
}

// RecordPending stores a freshly created order with status pending.
func (s *Service) RecordPending(o *order.Order) error {
	if o.OrderID == "" {
		return fmt.Errorf("order id is required")
	}
	o.Status = order.StatusPending
	if err := s.DB.Create(o).Error; err != nil {
		return fmt.Errorf("record order %s: %w", o.OrderID, err)
	}
	return nil
}

// Complete moves a pending order to completed and keeps its OTP.
func (s *Service) Complete(orderID, otp string) (*order.Order, error) {
	return s.transition(orderID, order.StatusCompleted, func(o *order.Order) {
		o.OTP = otp
	})
}

// Cancel moves a pending order to canceled and keeps the refunded amount.
func (s *Service) Cancel(orderID, refunded string) (*order.Order, error) {
	return s.transition(orderID, order.StatusCanceled, func(o *order.Order) {
		o.RefundedAmount = refunded
	})
}

func (s *Service) transition(orderID string, next order.Status, apply func(*order.Order)) (*order.Order, error) {
	var result order.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !result.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, result.Status, next)
		}
		apply(&result)
		result.Status = next
		return tx.Save(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Get returns a single order by provider order id.
func (s *Service) Get(orderID string) (*order.Order, error) {
	var o order.Order
	if err := s.DB.Where("order_id = ?", orderID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// List returns orders newest first.
func (s *Service) List(filter ListFilter) ([]order.Order, error) {
	query := s.DB.Model(&order.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Today {
		query = query.Where("created_at >= ?", now.BeginningOfDay())
	}

	var orders []order.Order
	if err := query.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Summary counts orders per status. Open orders can still receive an OTP
// or be canceled.
type Summary struct {
	Counts map[order.Status]int64 `json:"counts"`
	Open   int64                  `json:"open"`
	Closed int64                  `json:"closed"`
}

// Summarize reports status counts for orders created since t. A zero t
// covers the whole process lifetime.
func (s *Service) Summarize(since time.Time) (*Summary, error) {
	counts, err := s.CountSince(since)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Counts: make(map[order.Status]int64)}
	for _, status := range order.GetAllStatuses() {
		total := counts[status]
		summary.Counts[status] = total
		if status.IsTerminal() {
			summary.Closed += total
		} else {
			summary.Open += total
		}
	}
	return summary, nil
}

// CountSince returns how many orders of each status were created since t.
func (s *Service) CountSince(t time.Time) (map[order.Status]int64, error) {
	var rows []struct {
		Status order.Status
		Total  int64
	}
	err := s.DB.Model(&order.Order{}).
		Select("status, count(*) as total").
		Where("created_at >= ?", t).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
