package models

import "time"

// Visit represents one logged customer visit to the shop. Date and Time are
// stored as the ISO strings the forms submit (YYYY-MM-DD, HH:MM) so range
// filters can compare them lexicographically. Price is rupiah.
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	Time      string    `gorm:"size:5;not null" json:"time"`
	Category  string    `gorm:"size:32;not null" json:"category"`
	Price     int64     `gorm:"not null" json:"price"`
}
