package models

import "time"

// Order statuses. Orders start out pending; only pending orders can be
// cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipping, OrderStatusCompleted:
		return true
	}
	return false
}

// Order is a placed purchase. TotalAmount is derived from the details and
// never stored.
type Order struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string        `json:"user_id" gorm:"index;type:varchar(36)"`
	Status      string        `json:"status" gorm:"type:varchar(20)"`
	Details     []OrderDetail `json:"details" gorm:"foreignKey:OrderID"`
	TotalAmount float64       `json:"total_amount" gorm:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// OrderDetail is an immutable snapshot line within a placed order. Price
// is the unit price at order time, decoupled from later price changes.
type OrderDetail struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// Total computes the order amount from its details.
func (o *Order) Total() float64 {
	var total float64
	for _, d := range o.Details {
		total += d.Price * float64(d.Quantity)
	}
	return total
}
