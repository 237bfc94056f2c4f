package models

import "time"

// OrderStatus represents all possible states of a café order
type OrderStatus string

const (
	StatusReceived       OrderStatus = "RECEIVED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusCompleted      OrderStatus = "COMPLETED"
	StatusDelivered      OrderStatus = "DELIVERED"
)

// FulfillmentType is how the customer receives the order.
type FulfillmentType string

const (
	Takeaway     FulfillmentType = "takeaway"
	DineIn       FulfillmentType = "dine-in"
	RoomDelivery FulfillmentType = "room-delivery"
)

func (t FulfillmentType) Valid() bool {
	switch t {
	case Takeaway, DineIn, RoomDelivery:
		return true
	}
	return false
}

// PaymentMethod mirrors the options offered at checkout.
type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

type DeliveryDetails struct {
	HostelName   string `json:"hostel_name"`
	RoomNumber   string `json:"room_number"`
	FloorNumber  string `json:"floor_number,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	ContactPhone string `json:"contact_phone"`
	Instructions string `json:"instructions,omitempty"`
}

// Fulfillment is the completed order-type selection handed to checkout.
type Fulfillment struct {
	Type        FulfillmentType  `json:"type" gorm:"column:order_type;not null;index"`
	TableNumber int              `json:"table_number,omitempty"`
	TableSeats  int              `json:"table_seats,omitempty"`
	Delivery    *DeliveryDetails `json:"delivery,omitempty" gorm:"serializer:json"`
}

// Bill is the charge breakdown of an order.
// Total always equals Subtotal + Charge + Tax + Tip.
type Bill struct {
	Subtotal Money `json:"subtotal"`
	Charge   Money `json:"charge"` // service charge or delivery fee
	Tax      Money `json:"tax"`
	Tip      Money `json:"tip"`
	Total    Money `json:"grand_total"`
}

type Order struct {
	ID                  uint                 `json:"-" gorm:"primaryKey"`
	Number              string               `json:"order_id" gorm:"uniqueIndex;not null"`
	IdempotencyKey      *string              `json:"-" gorm:"uniqueIndex"`
	RequestFingerprint  string               `json:"-"`
	CustomerName        string               `json:"customer_name" gorm:"not null;index"`
	CustomerPhone       string               `json:"customer_phone" gorm:"not null"`
	PaymentMethod       PaymentMethod        `json:"payment_method"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
	Fulfillment         Fulfillment          `json:"fulfillment" gorm:"embedded"`
	Bill                Bill                 `json:"bill" gorm:"embedded"`
	Status              OrderStatus          `json:"status" gorm:"not null;default:'RECEIVED';index"`
	Items               []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory       []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint   `json:"-" gorm:"primaryKey"`
	OrderID    uint   `json:"-" gorm:"not null;index"`
	MenuItemID string `json:"item_id" gorm:"not null"`
	Name       string `json:"name"`                  // snapshot name
	Price      Money  `json:"price" gorm:"not null"` // snapshot price at time of order
	Quantity   int    `json:"quantity" gorm:"not null"`
	Note       string `json:"note,omitempty"`
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() Money { return i.Price * Money(i.Quantity) }

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"-" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status,omitempty"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  string      `json:"changed_by"` // username, "customer" or "progressor"
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
