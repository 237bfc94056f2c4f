package models

import "time"

// TableStatus is the live state of a dine-in table.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

type Table struct {
	Number      int         `json:"number" gorm:"primaryKey;autoIncrement:false"`
	Seats       int         `json:"seats" gorm:"not null"`
	Status      TableStatus `json:"status" gorm:"not null;default:'available'"`
	AvailableAt string      `json:"available_at,omitempty"` // display hint for reserved tables
	UpdatedAt   time.Time   `json:"updated_at"`
}
