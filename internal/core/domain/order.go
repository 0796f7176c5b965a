package domain

import "time"

// OrderStatus mirrors the backend's order lifecycle values.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderServiceLine is one service entry on an order. UnitPrice and LineTotal
// are derived by the backend from the service's price per unit.
type OrderServiceLine struct {
	ServiceID    string  `json:"serviceId"`
	NumberOfUnit int     `json:"numberOfUnit"`
	UnitPrice    float64 `json:"unitPrice,omitempty"`
	LineTotal    float64 `json:"totalPrice,omitempty"`
}

// LineEdit is a raw edited line as entered on the order-edit form. The form
// allows adding the same service twice, so edits may carry duplicate
// ServiceID entries; the reconciler aggregates them.
type LineEdit struct {
	ServiceID    string `json:"serviceId"    validate:"required"`
	NumberOfUnit int    `json:"numberOfUnit" validate:"required,gt=0"`
}

// LineOpKind discriminates the operations the reconciler emits.
type LineOpKind string

const (
	LineOpCreate LineOpKind = "create"
	LineOpUpdate LineOpKind = "update"
	LineOpDelete LineOpKind = "delete"
)

// LineOp is a single create/update/delete against one order service line.
// Operations for distinct service ids carry no ordering relation.
type LineOp struct {
	Kind         LineOpKind
	ServiceID    string
	NumberOfUnit int // meaningful for create and update only
}

// CustomerInfo is the customer snapshot embedded in an order.
type CustomerInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address,omitempty"`
}

// Order is the persisted order as returned by the backend.
type Order struct {
	ID           string             `json:"orderId"`
	OrderDate    time.Time          `json:"orderDate"`
	CustomerInfo CustomerInfo       `json:"customerInfo"`
	HandlerID    string             `json:"handlerId,omitempty"`
	DiscountID   string             `json:"discountId,omitempty"`
	Status       OrderStatus        `json:"orderStatus"`
	Services     []OrderServiceLine `json:"services"`
	Total        float64            `json:"totalAmount,omitempty"`
}
