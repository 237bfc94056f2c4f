// Package checkout turns a cart and a completed order-type selection into a
// persisted order.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/cart"
	"cafe-ordering-api/events"
	"cafe-ordering-api/flow"
	"cafe-ordering-api/models"
	"cafe-ordering-api/pricing"
	"cafe-ordering-api/statemachine"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const numberAttempts = 3

type PlaceOrderInput struct {
	Cart                *cart.Cart
	Fulfillment         models.Fulfillment
	CustomerName        string
	CustomerPhone       string
	Tip                 models.Money
	PaymentMethod       models.PaymentMethod
	SpecialInstructions string
	// IdempotencyKey makes retries safe: a replay returns the stored order.
	IdempotencyKey string
}

// Service places orders. Submission is bounded by a timeout and is
// at-most-once per idempotency key.
type Service struct {
	repo      Repository
	publisher events.Publisher
	log       *slog.Logger
	timeout   time.Duration
	now       func() time.Time
	group     singleflight.Group
}

func New(repo Repository, publisher events.Publisher, log *slog.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		timeout:   timeout,
		now:       time.Now,
	}
}

// PlaceOrder validates input, persists the order and clears the cart. The
// cart is left untouched on any failure and on idempotent replays.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	if in.IdempotencyKey == "" {
		return s.place(ctx, in)
	}
	// requests that differ in content never share a flight
	v, err, _ := s.group.Do(in.IdempotencyKey+"/"+fingerprint(in), func() (any, error) {
		return s.place(ctx, in)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Order), nil
}

func (s *Service) place(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if in.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.replay(ctx, in, existing)
		}
	}

	order, err := s.build(in)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		order.Number = s.newNumber()
		err = s.repo.Create(ctx, order)
		if errors.Is(err, ErrDuplicateNumber) && attempt < numberAttempts {
			continue
		}
		break
	}
	if errors.Is(err, ErrDuplicateKey) {
		// lost a race with another process holding the same key
		existing, ferr := s.repo.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if ferr == nil && existing != nil {
			return s.replay(ctx, in, existing)
		}
	}
	if err != nil {
		s.log.ErrorContext(ctx, "place order failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("place order: %w", err)
	}

	in.Cart.Clear()

	s.log.InfoContext(ctx, "order placed",
		slog.String("order_id", order.Number),
		slog.String("order_type", string(order.Fulfillment.Type)),
		slog.String("grand_total", order.Bill.Total.String()))

	if err := s.publisher.PublishStatus(ctx, events.NewStatusEvent(order, "", "customer")); err != nil {
		s.log.WarnContext(ctx, "publish order event", slog.String("order_id", order.Number), slog.String("error", err.Error()))
	}
	return order, nil
}

// replay returns the order stored under in.IdempotencyKey, provided it was
// placed by the same request.
func (s *Service) replay(ctx context.Context, in PlaceOrderInput, existing *models.Order) (*models.Order, error) {
	if existing.RequestFingerprint != fingerprint(in) {
		s.log.WarnContext(ctx, "idempotency key reused",
			slog.String("order_id", existing.Number),
			slog.String("idempotency_key", in.IdempotencyKey))
		return nil, fmt.Errorf("%w: %s", apperr.ErrIdempotencyReuse, in.IdempotencyKey)
	}
	s.log.InfoContext(ctx, "idempotent replay",
		slog.String("order_id", existing.Number),
		slog.String("idempotency_key", in.IdempotencyKey))
	return existing, nil
}

// fingerprint identifies who ordered and how. The cart is left out since a
// successful placement empties it before any retry arrives.
func fingerprint(in PlaceOrderInput) string {
	payment := in.PaymentMethod
	if payment == "" {
		payment = models.PaymentUPI
	}
	b, _ := json.Marshal(struct {
		Name        string
		Phone       string
		Fulfillment models.Fulfillment
		Tip         models.Money
		Payment     models.PaymentMethod
		Notes       string
	}{
		Name:        strings.TrimSpace(in.CustomerName),
		Phone:       pricing.Digits(in.CustomerPhone),
		Fulfillment: normalizeFulfillment(in.Fulfillment),
		Tip:         in.Tip,
		Payment:     payment,
		Notes:       strings.TrimSpace(in.SpecialInstructions),
	})
	return uuid.NewSHA1(uuid.NameSpaceOID, b).String()
}

// build validates input and assembles the order with a deep copy of the cart lines.
func (s *Service) build(in PlaceOrderInput) (*models.Order, error) {
	if in.Cart == nil || in.Cart.IsEmpty() {
		return nil, apperr.ErrEmptyCart
	}
	if err := ValidateFulfillment(in.Fulfillment); err != nil {
		return nil, err
	}
	if err := pricing.ValidateCustomer(in.CustomerName, in.CustomerPhone); err != nil {
		return nil, err
	}

	payment := in.PaymentMethod
	switch payment {
	case "":
		payment = models.PaymentUPI
	case models.PaymentUPI, models.PaymentCard, models.PaymentCash:
	default:
		ve := &apperr.ValidationError{}
		ve.Add("payment_method", apperr.InvalidRequest, fmt.Sprintf("unknown payment method %q", payment))
		return nil, ve
	}

	lines := in.Cart.Lines()
	bill, err := pricing.ComputeBill(in.Cart.Subtotal(), in.Fulfillment.Type, in.Tip)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			MenuItemID: l.Item.ID,
			Name:       l.Item.Name,
			Price:      l.Item.Price,
			Quantity:   l.Quantity,
			Note:       l.Note,
		})
	}

	f := normalizeFulfillment(in.Fulfillment)

	order := &models.Order{
		CustomerName:        strings.TrimSpace(in.CustomerName),
		CustomerPhone:       strings.TrimSpace(in.CustomerPhone),
		PaymentMethod:       payment,
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),
		Fulfillment:         f,
		Bill:                bill,
		Status:              statemachine.Initial,
		Items:               items,
		StatusHistory: []models.OrderStatusHistory{{
			ToStatus:  statemachine.Initial,
			ChangedBy: "customer",
			Note:      "Order placed by customer",
		}},
	}
	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		order.IdempotencyKey = &key
		order.RequestFingerprint = fingerprint(in)
	}
	return order, nil
}

// ValidateFulfillment checks that the selection carries what its mode needs.
func ValidateFulfillment(f models.Fulfillment) error {
	ve := &apperr.ValidationError{}
	switch f.Type {
	case models.Takeaway:
	case models.DineIn:
		if f.TableNumber <= 0 {
			ve.Add("table_number", apperr.InvalidRequest, "a table must be selected for dine-in")
		}
	case models.RoomDelivery:
		if f.Delivery == nil {
			ve.Add("delivery", apperr.InvalidRequest, "delivery details are required for room delivery")
		} else if err := flow.ValidateDelivery(*f.Delivery); err != nil {
			return err
		}
	default:
		ve.Add("type", apperr.InvalidRequest, fmt.Sprintf("unknown order type %q", f.Type))
	}
	return ve.OrNil()
}

// normalizeFulfillment keeps only the fields that belong to f.Type and
// copies the delivery details.
func normalizeFulfillment(f models.Fulfillment) models.Fulfillment {
	out := models.Fulfillment{Type: f.Type}
	switch f.Type {
	case models.DineIn:
		out.TableNumber = f.TableNumber
		out.TableSeats = f.TableSeats
	case models.RoomDelivery:
		if f.Delivery != nil {
			d := *f.Delivery
			out.Delivery = &d
		}
	}
	return out
}

// newNumber returns a human-readable id such as CF-250114-9F3A0C21.
func (s *Service) newNumber() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("CF-%s-%s", s.now().Format("060102"), strings.ToUpper(suffix))
}
