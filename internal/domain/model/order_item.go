package model

// OrderItemは注文明細。注文本体より先に作られるため、
// order_idは集約の保存が成功した後にまとめて紐付ける。
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`
	Quantity  int64 `gorm:"not null" json:"quantity"`
}
