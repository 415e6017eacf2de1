package models

import "time"

const (
	StatusCreated    = "created"
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Statuses is the full enum; any member may follow any other, there is
// no transition graph.
var Statuses = []string{
	StatusCreated,
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	UserID     uint      `gorm:"index;not null"            json:"user_id"`
	ProductID  uint      `gorm:"not null"                  json:"product_id"`
	Quantity   int       `gorm:"not null;default:1"        json:"quantity"`
	Status     string    `gorm:"not null"                  json:"status"`
	TotalPrice float64   `gorm:"not null"                  json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// User and Product mirror the tables owned by the other services; the
// order workflow reads them and never writes them.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Product struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
