package flow

import (
	"context"
	"errors"
	"testing"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/cart"
	"cafe-ordering-api/models"
)

type fakeTables map[int]models.Table

func (f fakeTables) GetTable(_ context.Context, number int) (models.Table, error) {
	t, ok := f[number]
	if !ok {
		return models.Table{}, apperr.ErrTableNotFound
	}
	return t, nil
}

var floor = fakeTables{
	1: {Number: 1, Seats: 2, Status: models.TableAvailable},
	2: {Number: 2, Seats: 2, Status: models.TableOccupied},
	4: {Number: 4, Seats: 4, Status: models.TableReserved, AvailableAt: "2:30 PM"},
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.AddItem(models.MenuItem{ID: "1", Name: "Artisan Latte", Price: models.Rupees(120)})
	return c
}

func TestStartWithEmptyCart(t *testing.T) {
	t.Parallel()

	s, err := Start(cart.New(), floor)
	if !errors.Is(err, apperr.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if s != nil {
		t.Fatal("selector must not be created for an empty cart")
	}
}

func TestTakeawayGoesStraightToReady(t *testing.T) {
	t.Parallel()

	s, err := Start(filledCart(), floor)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != ChoosingType {
		t.Fatalf("initial state = %s", s.State())
	}
	if err := s.ChooseTakeaway(); err != nil {
		t.Fatalf("ChooseTakeaway: %v", err)
	}
	sel, err := s.Selection()
	if err != nil {
		t.Fatalf("Selection: %v", err)
	}
	if sel.Type != models.Takeaway {
		t.Fatalf("type = %s", sel.Type)
	}
}

func TestDineInTableSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		table     int
		wantErr   bool
		wantSel   bool
		wantState State
	}{
		{"available", 1, false, false, ReadyForCheckout},
		{"occupied", 2, true, true, CollectingDineInDetails},
		{"reserved", 4, true, true, CollectingDineInDetails},
		{"unknown", 9, true, false, CollectingDineInDetails},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := Start(filledCart(), floor)
			if err := s.ChooseDineIn(); err != nil {
				t.Fatalf("ChooseDineIn: %v", err)
			}

			err := s.SelectTable(context.Background(), tt.table)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SelectTable() err = %v, wantErr %v", err, tt.wantErr)
			}
			var se *apperr.SelectionError
			if tt.wantSel && !errors.As(err, &se) {
				t.Fatalf("expected SelectionError, got %v", err)
			}
			if s.State() != tt.wantState {
				t.Fatalf("state = %s, want %s", s.State(), tt.wantState)
			}
		})
	}
}

func TestDineInWithNoAvailableTablesNeverReady(t *testing.T) {
	t.Parallel()

	full := fakeTables{
		1: {Number: 1, Seats: 2, Status: models.TableOccupied},
		2: {Number: 2, Seats: 4, Status: models.TableReserved},
	}
	s, _ := Start(filledCart(), full)
	_ = s.ChooseDineIn()

	for n := range full {
		if err := s.SelectTable(context.Background(), n); err == nil {
			t.Fatalf("table %d should be rejected", n)
		}
	}
	if _, err := s.Selection(); !errors.Is(err, apperr.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestRoomDelivery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		details   models.DeliveryDetails
		wantCodes []string
	}{
		{
			name: "valid",
			details: models.DeliveryDetails{
				HostelName: "Hostel A - Boys", RoomNumber: "214", ContactPhone: "98765 43210",
			},
		},
		{
			name:      "all_missing",
			details:   models.DeliveryDetails{},
			wantCodes: []string{apperr.MissingHostel, apperr.MissingRoom, apperr.MissingPhone},
		},
		{
			name: "short_phone",
			details: models.DeliveryDetails{
				HostelName: "Hostel B - Girls", RoomNumber: "12", ContactPhone: "12345",
			},
			wantCodes: []string{apperr.InvalidPhone},
		},
		{
			name: "long_phone",
			details: models.DeliveryDetails{
				HostelName: "Hostel B - Girls", RoomNumber: "12", ContactPhone: "+91 98765 43210",
			},
			wantCodes: []string{apperr.InvalidPhone},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, _ := Start(filledCart(), floor)
			if err := s.ChooseRoomDelivery(); err != nil {
				t.Fatalf("ChooseRoomDelivery: %v", err)
			}

			err := s.SubmitDelivery(tt.details)
			if len(tt.wantCodes) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				sel, err := s.Selection()
				if err != nil {
					t.Fatalf("Selection: %v", err)
				}
				if sel.Delivery == nil || sel.Delivery.ContactPhone != "9876543210" {
					t.Fatalf("delivery not normalized: %+v", sel.Delivery)
				}
				return
			}

			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			for _, code := range tt.wantCodes {
				if !ve.Has(code) {
					t.Fatalf("missing %q in %+v", code, ve.Violations)
				}
			}
			if s.State() != CollectingDeliveryDetails {
				t.Fatalf("state moved to %s on invalid details", s.State())
			}
		})
	}
}

func TestBackClearsDetails(t *testing.T) {
	t.Parallel()

	s, _ := Start(filledCart(), floor)
	_ = s.ChooseDineIn()
	if err := s.SelectTable(context.Background(), 1); err != nil {
		t.Fatalf("SelectTable: %v", err)
	}

	s.Back()
	if s.State() != ChoosingType {
		t.Fatalf("state = %s after Back", s.State())
	}
	if p := s.Pending(); p.TableNumber != 0 || p.Type != "" {
		t.Fatalf("details not cleared: %+v", p)
	}
	if err := s.ChooseTakeaway(); err != nil {
		t.Fatalf("ChooseTakeaway after Back: %v", err)
	}
}

func TestWrongStepIsRejected(t *testing.T) {
	t.Parallel()

	s, _ := Start(filledCart(), floor)
	if err := s.SelectTable(context.Background(), 1); !errors.Is(err, apperr.ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	_ = s.ChooseTakeaway()
	if err := s.ChooseDineIn(); !errors.Is(err, apperr.ErrInvalidStep) {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if err := s.Choose("drive-thru"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
