package model

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusShipped = "shipped"
)

// Orderは注文の集約ルート。
// TotalPriceは作成時点のスナップショット（商品価格が変わっても再計算しない）。
type Order struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ShippingAddress1 string    `gorm:"type:varchar(255);not null" json:"shipping_address1"`
	ShippingAddress2 string    `gorm:"type:varchar(255)" json:"shipping_address2"`
	City             string    `gorm:"type:varchar(100)" json:"city"`
	Zip              string    `gorm:"type:varchar(20)" json:"zip"`
	Country          string    `gorm:"type:varchar(100)" json:"country"`
	Phone            string    `gorm:"type:varchar(50)" json:"phone"`
	Status           string    `gorm:"type:varchar(50);not null;index" json:"status"`
	TotalPrice       int64     `gorm:"not null" json:"total_price"`
	UserID           int64     `gorm:"not null;index" json:"user_id"`
	DateOrdered      time.Time `gorm:"not null;index" json:"date_ordered"`
}
