package catalog_test

import (
	"context"
	"errors"
	"testing"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/catalog"
	"cafe-ordering-api/dbtest"
	"cafe-ordering-api/models"
)

func TestList(t *testing.T) {
	t.Parallel()

	c := catalog.New(dbtest.Seeded(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  catalog.Filter
		wantIDs []string
	}{
		{"all", catalog.Filter{}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"all_keyword", catalog.Filter{Category: "All"}, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"coffee", catalog.Filter{Category: "coffee"}, []string{"1", "4", "7"}},
		{"non_veg", catalog.Filter{Diet: catalog.DietNonVeg}, []string{"5"}},
		{"popular", catalog.Filter{Diet: catalog.DietPopular}, []string{"1", "3", "4"}},
		{"search_name", catalog.Filter{Search: "sandwich"}, []string{"2", "5"}},
		{"search_tag", catalog.Filter{Search: "refreshing"}, []string{"7"}},
		{"search_partial_tag", catalog.Filter{Search: "refresh"}, []string{"7"}},
		{"search_partial_tag_case", catalog.Filter{Search: "REFR"}, []string{"7"}},
		{"snacks_empty", catalog.Filter{Category: "Snacks"}, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			items, err := c.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(items) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if items[i].ID != id {
					t.Fatalf("item[%d] = %s, want %s", i, items[i].ID, id)
				}
			}
		})
	}
}

func TestListRejectsUnknownFilters(t *testing.T) {
	t.Parallel()

	c := catalog.New(dbtest.Seeded(t))
	var ve *apperr.ValidationError
	if _, err := c.List(context.Background(), catalog.Filter{Category: "Biryani"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown category, got %v", err)
	}
	if _, err := c.List(context.Background(), catalog.Filter{Diet: "vegan"}); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for unknown diet, got %v", err)
	}
}

func TestGetAndAvailability(t *testing.T) {
	t.Parallel()

	c := catalog.New(dbtest.Seeded(t))
	ctx := context.Background()

	item, err := c.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item.Price != models.Rupees(120) || !item.Tags.Has("creamy") {
		t.Fatalf("unexpected item: %+v", item)
	}

	if _, err := c.Get(ctx, "99"); !errors.Is(err, apperr.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	if _, err := c.SetAvailability(ctx, "1", false); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if _, err := c.Orderable(ctx, "1"); !errors.Is(err, apperr.ErrItemUnavailable) {
		t.Fatalf("expected ErrItemUnavailable, got %v", err)
	}
	if _, err := c.SetAvailability(ctx, "1", true); err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if _, err := c.Orderable(ctx, "1"); err != nil {
		t.Fatalf("Orderable after re-enable: %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	t.Parallel()

	db := dbtest.Seeded(t)
	if err := catalog.New(db).Seed(context.Background()); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	items, _ := catalog.New(db).List(context.Background(), catalog.Filter{})
	if len(items) != len(catalog.Menu) {
		t.Fatalf("got %d items after reseed, want %d", len(items), len(catalog.Menu))
	}
}
