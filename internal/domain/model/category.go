package model

type Category struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Icon  string `gorm:"type:varchar(255)" json:"icon"`
	Color string `gorm:"type:varchar(50)" json:"color"`
}
