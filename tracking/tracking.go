// Package tracking reads placed orders and moves them along their status path.
package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/events"
	"cafe-ordering-api/models"
	"cafe-ordering-api/statemachine"
	"cafe-ordering-api/tables"

	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	publisher events.Publisher
	log       *slog.Logger
}

func New(db *gorm.DB, publisher events.Publisher, log *slog.Logger) *Service {
	return &Service{db: db, publisher: publisher, log: log}
}

// View is the customer-facing tracking payload.
type View struct {
	*models.Order
	StepIndex     int                  `json:"step_index"`
	Path          []models.OrderStatus `json:"path"`
	EstimatedTime string               `json:"estimated_time"`
	Terminal      bool                 `json:"terminal"`
}

func NewView(o *models.Order) View {
	return View{
		Order:         o,
		StepIndex:     statemachine.StepIndex(o.Fulfillment.Type, o.Status),
		Path:          statemachine.Path(o.Fulfillment.Type),
		EstimatedTime: statemachine.EstimatedTime(o.Fulfillment.Type),
		Terminal:      statemachine.IsTerminal(o.Status),
	}
}

func preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("Items").Preload("StatusHistory", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id asc")
	})
}

// Get loads an order by its public number.
func (s *Service) Get(ctx context.Context, number string) (*models.Order, error) {
	return load(preloaded(s.db.WithContext(ctx)), number)
}

func load(db *gorm.DB, number string) (*models.Order, error) {
	var o models.Order
	err := db.Where("number = ?", number).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrOrderNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", number, err)
	}
	return &o, nil
}

type Filter struct {
	Status models.OrderStatus
	Type   models.FulfillmentType
	// Search matches the order number or customer name.
	Search string
}

type Summary struct {
	Orders   []models.Order             `json:"orders"`
	Count    int                        `json:"count"`
	ByStatus map[models.OrderStatus]int `json:"order_summary"`
	// Revenue counts delivered and completed orders only.
	Revenue models.Money `json:"total_revenue"`
}

// List returns matching orders, newest first, with a dashboard summary.
func (s *Service) List(ctx context.Context, f Filter) (Summary, error) {
	q := s.db.WithContext(ctx).Preload("Items")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		if !f.Type.Valid() {
			ve := &apperr.ValidationError{}
			ve.Add("type", apperr.InvalidRequest, fmt.Sprintf("unknown order type %q", f.Type))
			return Summary{}, ve
		}
		q = q.Where("order_type = ?", f.Type)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + term + "%"
		q = q.Where("number LIKE ? OR customer_name LIKE ?", like, like)
	}

	var orders []models.Order
	if err := q.Order("created_at desc").Order("id desc").Find(&orders).Error; err != nil {
		return Summary{}, fmt.Errorf("list orders: %w", err)
	}

	sum := Summary{Orders: orders, Count: len(orders), ByStatus: map[models.OrderStatus]int{}}
	for _, o := range orders {
		sum.ByStatus[o.Status]++
		if o.Status == models.StatusDelivered || o.Status == models.StatusCompleted {
			sum.Revenue += o.Bill.Total
		}
	}
	return sum, nil
}

// Advance moves an order one step along its path.
func (s *Service) Advance(ctx context.Context, number, actor, note string) (*models.Order, error) {
	return s.transition(ctx, number, actor, note, func(o *models.Order) (models.OrderStatus, error) {
		next, err := statemachine.Next(o.Fulfillment.Type, o.Status)
		if err != nil {
			return "", err
		}
		return next, statemachine.CanTransition(o.Fulfillment.Type, o.Status, next)
	})
}

// Force sets any status on the order's path, skipping the linear rule.
// Used by admins to repair stuck orders. Reopening a completed dine-in
// order fails with a SelectionError if its table has been taken since.
func (s *Service) Force(ctx context.Context, number string, to models.OrderStatus, actor, reason string) (*models.Order, error) {
	note := "forced"
	if reason != "" {
		note = "forced: " + reason
	}
	return s.transition(ctx, number, actor, note, func(o *models.Order) (models.OrderStatus, error) {
		if statemachine.StepIndex(o.Fulfillment.Type, to) < 0 {
			return "", fmt.Errorf("%w: %s is not a status of %s orders (path: %s)",
				apperr.ErrInvalidTransition, to, o.Fulfillment.Type, statemachine.Describe(o.Fulfillment.Type))
		}
		if to == o.Status {
			return "", fmt.Errorf("%w: order is already %s", apperr.ErrInvalidTransition, to)
		}
		return to, nil
	})
}

func (s *Service) transition(ctx context.Context, number, actor, note string, pick func(*models.Order) (models.OrderStatus, error)) (*models.Order, error) {
	var (
		order *models.Order
		from  models.OrderStatus
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := load(tx, number)
		if err != nil {
			return err
		}
		to, err := pick(o)
		if err != nil {
			return err
		}

		// compare-and-set so concurrent advances cannot both win
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", o.ID, o.Status).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("update order %s: %w", number, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s changed concurrently", apperr.ErrInvalidTransition, number)
		}

		h := models.OrderStatusHistory{OrderID: o.ID, FromStatus: o.Status, ToStatus: to, ChangedBy: actor, Note: note}
		if err := tx.Create(&h).Error; err != nil {
			return fmt.Errorf("record history for %s: %w", number, err)
		}

		if o.Fulfillment.Type == models.DineIn && o.Fulfillment.TableNumber > 0 {
			switch {
			case to == models.StatusCompleted:
				if err := tables.Release(tx, o.Fulfillment.TableNumber); err != nil {
					return err
				}
			case o.Status == models.StatusCompleted:
				// a reopened order needs its table back
				if _, err := tables.Occupy(tx, o.Fulfillment.TableNumber); err != nil {
					return err
				}
			}
		}

		from = o.Status
		order, err = load(preloaded(tx), number)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "order status changed",
		slog.String("order_id", number),
		slog.String("from", string(from)),
		slog.String("to", string(order.Status)),
		slog.String("changed_by", actor))

	if err := s.publisher.PublishStatus(ctx, events.NewStatusEvent(order, from, actor)); err != nil {
		s.log.WarnContext(ctx, "publish status event", slog.String("order_id", number), slog.String("error", err.Error()))
	}
	return order, nil
}

// Active returns the numbers of all orders not yet in a terminal status.
func (s *Service) Active(ctx context.Context) ([]string, error) {
	var numbers []string
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.StatusCompleted, models.StatusDelivered}).
		Order("id asc").
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	return numbers, nil
}
