package catalog

import (
	"context"
	"fmt"

	"cafe-ordering-api/models"

	"gorm.io/gorm/clause"
)

// Menu is the compiled-in menu loaded at startup.
var Menu = []models.MenuItem{
	{
		ID: "1", Name: "Artisan Latte", Price: models.Rupees(120), Category: models.CategoryCoffee,
		Description: "Rich espresso with perfectly steamed milk and beautiful latte art",
		IsVeg:       true, IsPopular: true, Tags: models.Tags{"Hot", "Caffeine", "Creamy"},
		Image: "/assets/latte-art.jpg",
	},
	{
		ID: "2", Name: "Gourmet Avocado Sandwich", Price: models.Rupees(180), Category: models.CategoryMeals,
		Description: "Fresh avocado with tomatoes, lettuce on artisan sourdough bread",
		IsVeg:       true, Tags: models.Tags{"Healthy", "Fresh", "Filling"},
		Image: "/assets/sandwich.jpg",
	},
	{
		ID: "3", Name: "Chocolate Croissant", Price: models.Rupees(85), Category: models.CategoryDesserts,
		Description: "Buttery, flaky pastry filled with rich dark chocolate",
		IsVeg:       true, IsPopular: true, Tags: models.Tags{"Sweet", "Pastry", "Indulgent"},
		Image: "/assets/croissant.jpg",
	},
	{
		ID: "4", Name: "Cappuccino", Price: models.Rupees(100), Category: models.CategoryCoffee,
		Description: "Classic Italian coffee with equal parts espresso, steamed milk, and foam",
		IsVeg:       true, IsPopular: true, Tags: models.Tags{"Hot", "Classic", "Strong"},
		Image: "/assets/latte-art.jpg",
	},
	{
		ID: "5", Name: "Club Sandwich", Price: models.Rupees(220), Category: models.CategoryMeals,
		Description: "Triple-layered sandwich with chicken, bacon, lettuce, and tomato",
		Tags:        models.Tags{"Protein", "Filling", "Classic"},
		Image:       "/assets/sandwich.jpg",
	},
	{
		ID: "6", Name: "Blueberry Muffin", Price: models.Rupees(95), Category: models.CategoryDesserts,
		Description: "Freshly baked muffin bursting with juicy blueberries",
		IsVeg:       true, Tags: models.Tags{"Sweet", "Fresh", "Breakfast"},
		Image: "/assets/croissant.jpg",
	},
	{
		ID: "7", Name: "Iced Americano", Price: models.Rupees(90), Category: models.CategoryCoffee,
		Description: "Bold espresso shots over ice with cold water",
		IsVeg:       true, Tags: models.Tags{"Cold", "Strong", "Refreshing"},
		Image: "/assets/latte-art.jpg",
	},
	{
		ID: "8", Name: "Caesar Salad", Price: models.Rupees(160), Category: models.CategoryMeals,
		Description: "Crisp romaine lettuce with parmesan, croutons, and caesar dressing",
		IsVeg:       true, Tags: models.Tags{"Healthy", "Light", "Fresh"},
		Image: "/assets/sandwich.jpg",
	},
}

// Seed inserts the menu, leaving existing rows untouched.
func (c *Catalog) Seed(ctx context.Context) error {
	items := make([]models.MenuItem, len(Menu))
	copy(items, Menu)
	for i := range items {
		items[i].IsAvailable = true
	}
	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&items).Error
	if err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	return nil
}
