package model

import "time"

type Product struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	RichDescription string    `gorm:"type:text" json:"rich_description"`
	Image           string    `gorm:"type:varchar(512)" json:"image"`
	Images          []string  `gorm:"serializer:json" json:"images"`
	Brand           string    `gorm:"type:varchar(255)" json:"brand"`
	Price           int64     `gorm:"not null" json:"price"` // 最小通貨単位（セント）
	CategoryID      int64     `gorm:"not null;index" json:"category_id"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CountInStock    int64     `gorm:"not null" json:"count_in_stock"`
	Rating          float64   `json:"rating"`
	NumReviews      int64     `json:"num_reviews"`
	IsFeatured      bool      `gorm:"not null;default:false;index" json:"is_featured"`
	DateCreated     time.Time `gorm:"not null;autoCreateTime" json:"date_created"`
}
