// Package catalog serves the café menu.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/models"

	"gorm.io/gorm"
)

// Diet filters mirror the menu page toggles.
const (
	DietVeg     = "veg"
	DietNonVeg  = "non-veg"
	DietPopular = "popular"
)

type Filter struct {
	Category string // empty or "All" matches every category
	Diet     string
	Search   string // matched against name, description and tags
}

type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

func (c *Catalog) List(ctx context.Context, f Filter) ([]models.MenuItem, error) {
	query := c.db.WithContext(ctx).Model(&models.MenuItem{})

	if f.Category != "" && !strings.EqualFold(f.Category, "all") {
		cat, ok := models.ParseCategory(f.Category)
		if !ok {
			ve := &apperr.ValidationError{}
			ve.Add("category", apperr.InvalidRequest, fmt.Sprintf("unknown category %q", f.Category))
			return nil, ve
		}
		query = query.Where("category = ?", cat)
	}

	switch strings.ToLower(f.Diet) {
	case "", "all":
	case DietVeg:
		query = query.Where("is_veg = ?", true)
	case DietNonVeg:
		query = query.Where("is_veg = ?", false)
	case DietPopular:
		query = query.Where("is_popular = ?", true)
	default:
		ve := &apperr.ValidationError{}
		ve.Add("diet", apperr.InvalidRequest, fmt.Sprintf("unknown diet filter %q", f.Diet))
		return nil, ve
	}

	var items []models.MenuItem
	if err := query.Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		items = search(items, s)
	}
	return items, nil
}

func search(items []models.MenuItem, term string) []models.MenuItem {
	term = strings.ToLower(term)
	out := items[:0]
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), term) ||
			strings.Contains(strings.ToLower(it.Description), term) ||
			it.Tags.Match(term) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Catalog) Get(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := c.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, apperr.ErrItemNotFound
	}
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("get menu item %s: %w", id, err)
	}
	return item, nil
}

// Orderable returns the item only if it exists and is currently available.
func (c *Catalog) Orderable(ctx context.Context, id string) (models.MenuItem, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return item, err
	}
	if !item.IsAvailable {
		return item, fmt.Errorf("%w: %s", apperr.ErrItemUnavailable, item.Name)
	}
	return item, nil
}

// SetAvailability toggles whether an item can be ordered.
func (c *Catalog) SetAvailability(ctx context.Context, id string, available bool) (models.MenuItem, error) {
	item, err := c.Get(ctx, id)
	if err != nil {
		return item, err
	}
	if err := c.db.WithContext(ctx).Model(&item).Update("is_available", available).Error; err != nil {
		return item, fmt.Errorf("update availability: %w", err)
	}
	item.IsAvailable = available
	return item, nil
}
