package order

import (
	"time"
)

// Order is the server-side record of an order relayed to the provider.
type Order struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        string    `gorm:"type:varchar(64);not null;unique" json:"order_id"`
	Phone          string    `gorm:"type:varchar(32);not null" json:"phone"`
	Country        string    `gorm:"type:varchar(32)" json:"country"`
	Operator       string    `gorm:"type:varchar(64)" json:"operator"`
	ServiceCode    string    `gorm:"type:varchar(64)" json:"service_code"`
	OTP            string    `gorm:"type:varchar(255)" json:"otp,omitempty"`
	RefundedAmount string    `gorm:"type:varchar(32)" json:"refunded_amount,omitempty"`
	Status         Status    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
