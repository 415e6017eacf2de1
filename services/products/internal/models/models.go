package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null"        json:"name"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Description string    `gorm:"default:''"               json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
