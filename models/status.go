package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusPreparing      OrderStatus = "preparing"
	StatusWaitingPickup  OrderStatus = "waiting_pickup"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// statusTransitions holds the only legal forward edges. Cancellation is
// handled separately because it is reachable from every non-terminal state.
var statusTransitions = map[OrderStatus]OrderStatus{
	StatusPending:        StatusPreparing,
	StatusPreparing:      StatusWaitingPickup,
	StatusWaitingPickup:  StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to OrderStatus) bool {
	if to == StatusCancelled {
		return !from.IsTerminal()
	}
	return statusTransitions[from] == to
}

// StatusLabels maps each status to its dashboard label. Presentation data,
// kept out of the lifecycle logic.
var StatusLabels = map[OrderStatus]string{
	StatusPending:        "Pendente",
	StatusPreparing:      "Em Preparo",
	StatusWaitingPickup:  "Aguardando Retirada",
	StatusOutForDelivery: "Saiu para Entrega",
	StatusDelivered:      "Entregue",
	StatusCancelled:      "Cancelado",
}

type PaymentType string

const (
	PaymentCash   PaymentType = "cash"
	PaymentCard   PaymentType = "card"
	PaymentPix    PaymentType = "pix"
	PaymentOnline PaymentType = "online"
)

// ValidPaymentType reports whether t is one of the accepted payment types.
func ValidPaymentType(t PaymentType) bool {
	switch t {
	case PaymentCash, PaymentCard, PaymentPix, PaymentOnline:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)
