package statemachine

import (
	"fmt"
	"strings"

	"cafe-ordering-api/apperr"
	"cafe-ordering-api/models"
)

// Transition defines a valid status change for a fulfillment mode
type Transition struct {
	Mode models.FulfillmentType `json:"mode"`
	From models.OrderStatus     `json:"from"`
	To   models.OrderStatus     `json:"to"`
}

// paths is the authoritative, strictly linear status sequence per mode
var paths = map[models.FulfillmentType][]models.OrderStatus{
	models.Takeaway: {
		models.StatusReceived, models.StatusPreparing, models.StatusReadyForPickup, models.StatusCompleted,
	},
	models.DineIn: {
		models.StatusReceived, models.StatusPreparing, models.StatusReadyForPickup, models.StatusCompleted,
	},
	models.RoomDelivery: {
		models.StatusReceived, models.StatusPreparing, models.StatusOutForDelivery, models.StatusDelivered,
	},
}

type transitionKey struct {
	Mode models.FulfillmentType
	From models.OrderStatus
	To   models.OrderStatus
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range GetAllTransitions() {
		m[transitionKey{t.Mode, t.From, t.To}] = true
	}
	return m
}()

// Initial is the status every new order starts in.
const Initial = models.StatusReceived

// Path returns the status sequence for a mode.
func Path(mode models.FulfillmentType) []models.OrderStatus {
	return append([]models.OrderStatus(nil), paths[mode]...)
}

// StepIndex is the position of status in the mode's path, or -1.
func StepIndex(mode models.FulfillmentType, status models.OrderStatus) int {
	for i, s := range paths[mode] {
		if s == status {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transitions exist.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusCompleted || status == models.StatusDelivered
}

// Next returns the single forward status, or ErrInvalidTransition at the end of the path.
func Next(mode models.FulfillmentType, from models.OrderStatus) (models.OrderStatus, error) {
	p := paths[mode]
	i := StepIndex(mode, from)
	if i < 0 || i == len(p)-1 {
		return "", fmt.Errorf("%w: no status after %s for %s orders", apperr.ErrInvalidTransition, from, mode)
	}
	return p[i+1], nil
}

// CanTransition checks if an order of the given mode can move from one status to another
func CanTransition(mode models.FulfillmentType, from, to models.OrderStatus) error {
	if transitionMap[transitionKey{mode, from, to}] {
		return nil
	}
	return fmt.Errorf("%w: %s → %s is not allowed for %s orders. Valid transitions from %s are: %s",
		apperr.ErrInvalidTransition, from, to, mode, from, describeValidFrom(mode, from))
}

func describeValidFrom(mode models.FulfillmentType, status models.OrderStatus) string {
	next, err := Next(mode, status)
	if err != nil {
		return "none (terminal state)"
	}
	return string(next)
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	var out []Transition
	for _, mode := range []models.FulfillmentType{models.Takeaway, models.DineIn, models.RoomDelivery} {
		p := paths[mode]
		for i := 0; i+1 < len(p); i++ {
			out = append(out, Transition{Mode: mode, From: p[i], To: p[i+1]})
		}
	}
	return out
}

// EstimatedTime is the customer-facing preparation estimate.
func EstimatedTime(mode models.FulfillmentType) string {
	if mode == models.DineIn {
		return "15-20 minutes"
	}
	return "10-15 minutes"
}

// Describe renders a path as "A → B → C".
func Describe(mode models.FulfillmentType) string {
	p := paths[mode]
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = string(s)
	}
	return strings.Join(parts, " → ")
}
