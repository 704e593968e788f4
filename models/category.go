package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"unique" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Recipes   []Recipe  `gorm:"foreignKey:CategoryID" json:"recipes,omitempty"`
}
