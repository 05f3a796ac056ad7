package model

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	Street       string    `gorm:"type:varchar(255)" json:"street"`
	Apartment    string    `gorm:"type:varchar(255)" json:"apartment"`
	Zip          string    `gorm:"type:varchar(20)" json:"zip"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
