package models

import (
	"strings"
	"time"
)

// Category is one of the fixed menu sections.
type Category string

const (
	CategoryCoffee   Category = "Coffee"
	CategoryMeals    Category = "Meals"
	CategoryDesserts Category = "Desserts"
	CategorySnacks   Category = "Snacks"
)

// Categories lists the menu sections in display order.
var Categories = []Category{CategoryCoffee, CategoryMeals, CategoryDesserts, CategorySnacks}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

type MenuItem struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Price       Money     `json:"price" gorm:"not null"`
	Category    Category  `json:"category" gorm:"not null;index"`
	Description string    `json:"description"`
	IsVeg       bool      `json:"is_veg" gorm:"default:false"`
	IsPopular   bool      `json:"is_popular" gorm:"default:false"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	Tags        Tags      `json:"tags" gorm:"serializer:json"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
