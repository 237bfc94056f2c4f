// Package flow drives the order-type selection that sits between the cart
// and checkout: takeaway, dine-in with a table, or room delivery.
package flow

import (
	"context"
	"fmt"
	"strings"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/cart"
	"cafe-ordering-api/models"
	"cafe-ordering-api/pricing"
)

type State string

const (
	ChoosingType              State = "choosing_type"
	CollectingDineInDetails   State = "collecting_dine_in_details"
	CollectingDeliveryDetails State = "collecting_delivery_details"
	ReadyForCheckout          State = "ready_for_checkout"
)

// Hostels offered for room delivery.
var Hostels = []string{
	"Hostel A - Boys",
	"Hostel B - Girls",
	"Hostel C - Boys",
	"Hostel D - Girls",
	"Hostel E - Boys",
	"Hostel F - Girls",
	"Graduate Hostel - Mixed",
	"International Hostel",
}

// Tables looks up the live status of a dine-in table.
type Tables interface {
	GetTable(ctx context.Context, number int) (models.Table, error)
}

// Selector is a per-checkout state machine. It is not safe for concurrent use.
type Selector struct {
	tables Tables
	state  State
	sel    models.Fulfillment
}

// Start opens the selector for a non-empty cart. An empty cart yields
// apperr.ErrEmptyCart and no selector.
func Start(c *cart.Cart, tables Tables) (*Selector, error) {
	if c == nil || c.IsEmpty() {
		return nil, apperr.ErrEmptyCart
	}
	return &Selector{tables: tables, state: ChoosingType}, nil
}

func (s *Selector) State() State { return s.state }

// Pending returns whatever has been collected so far.
func (s *Selector) Pending() models.Fulfillment {
	out := s.sel
	if s.sel.Delivery != nil {
		d := *s.sel.Delivery
		out.Delivery = &d
	}
	return out
}

func (s *Selector) expect(state State) error {
	if s.state != state {
		return fmt.Errorf("%w: in %s", apperr.ErrInvalidStep, s.state)
	}
	return nil
}

// Choose dispatches on the fulfillment type.
func (s *Selector) Choose(t models.FulfillmentType) error {
	switch t {
	case models.Takeaway:
		return s.ChooseTakeaway()
	case models.DineIn:
		return s.ChooseDineIn()
	case models.RoomDelivery:
		return s.ChooseRoomDelivery()
	}
	ve := &apperr.ValidationError{}
	ve.Add("type", apperr.InvalidRequest, fmt.Sprintf("unknown order type %q", t))
	return ve
}

func (s *Selector) ChooseTakeaway() error {
	if err := s.expect(ChoosingType); err != nil {
		return err
	}
	s.sel = models.Fulfillment{Type: models.Takeaway}
	s.state = ReadyForCheckout
	return nil
}

func (s *Selector) ChooseDineIn() error {
	if err := s.expect(ChoosingType); err != nil {
		return err
	}
	s.sel = models.Fulfillment{Type: models.DineIn}
	s.state = CollectingDineInDetails
	return nil
}

func (s *Selector) ChooseRoomDelivery() error {
	if err := s.expect(ChoosingType); err != nil {
		return err
	}
	s.sel = models.Fulfillment{Type: models.RoomDelivery}
	s.state = CollectingDeliveryDetails
	return nil
}

// SelectTable accepts only a table whose current status is available.
func (s *Selector) SelectTable(ctx context.Context, number int) error {
	if err := s.expect(CollectingDineInDetails); err != nil {
		return err
	}
	t, err := s.tables.GetTable(ctx, number)
	if err != nil {
		return err
	}
	if t.Status != models.TableAvailable {
		return &apperr.SelectionError{TableNumber: t.Number, Status: string(t.Status)}
	}
	s.sel.TableNumber = t.Number
	s.sel.TableSeats = t.Seats
	s.state = ReadyForCheckout
	return nil
}

// SubmitDelivery requires hostel, room and a phone of exactly ten digits.
func (s *Selector) SubmitDelivery(d models.DeliveryDetails) error {
	if err := s.expect(CollectingDeliveryDetails); err != nil {
		return err
	}
	if err := ValidateDelivery(d); err != nil {
		return err
	}
	d.HostelName = strings.TrimSpace(d.HostelName)
	d.RoomNumber = strings.TrimSpace(d.RoomNumber)
	d.ContactPhone = pricing.Digits(d.ContactPhone)
	s.sel.Delivery = &d
	s.state = ReadyForCheckout
	return nil
}

// ValidateDelivery checks required fields first, then the phone format.
func ValidateDelivery(d models.DeliveryDetails) error {
	ve := &apperr.ValidationError{}
	if strings.TrimSpace(d.HostelName) == "" {
		ve.Add("hostel_name", apperr.MissingHostel, "hostel name is required")
	}
	if strings.TrimSpace(d.RoomNumber) == "" {
		ve.Add("room_number", apperr.MissingRoom, "room number is required")
	}
	if strings.TrimSpace(d.ContactPhone) == "" {
		ve.Add("contact_phone", apperr.MissingPhone, "phone number is required")
	} else if len(pricing.Digits(d.ContactPhone)) != pricing.PhoneDigits {
		ve.Add("contact_phone", apperr.InvalidPhone, "please enter a valid 10-digit phone number")
	}
	return ve.OrNil()
}

// Back returns to type selection and drops partially collected details.
func (s *Selector) Back() {
	s.sel = models.Fulfillment{}
	s.state = ChoosingType
}

// Selection hands the completed fulfillment to checkout.
func (s *Selector) Selection() (models.Fulfillment, error) {
	if s.state != ReadyForCheckout {
		return models.Fulfillment{}, apperr.ErrNotReady
	}
	return s.Pending(), nil
}
