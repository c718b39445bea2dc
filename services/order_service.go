package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/pricing"
	"github.com/pedidopronto/delivery-app/utils"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
)

// TransitionEvent names one edge of the order lifecycle.
type TransitionEvent string

const (
	EventTake          TransitionEvent = "take"
	EventMarkReady     TransitionEvent = "mark_ready"
	EventAssignDeliver TransitionEvent = "assign_delivery"
	EventMarkDelivered TransitionEvent = "mark_delivered"
	EventCancel        TransitionEvent = "cancel"
)

// eventTargets maps each event to the status it moves the order into.
var eventTargets = map[TransitionEvent]models.OrderStatus{
	EventTake:          models.StatusPreparing,
	EventMarkReady:     models.StatusWaitingPickup,
	EventAssignDeliver: models.StatusOutForDelivery,
	EventMarkDelivered: models.StatusDelivered,
	EventCancel:        models.StatusCancelled,
}

type OrderService struct {
	DB      *gorm.DB
	Coupons *CouponService
	Routes  RouteProvider

	// StoreAddress is the route origin used when a dispatch request does
	// not name one.
	StoreAddress string
}

func NewOrderService(db *gorm.DB, coupons *CouponService, routes RouteProvider) *OrderService {
	return &OrderService{DB: db, Coupons: coupons, Routes: routes}
}

// CreateOrderItemInput is one requested line. Prices are not accepted from
// the client: the unit price is read from the catalog at commit time and
// snapshotted onto the order item.
type CreateOrderItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	ItemNotes  string `json:"item_notes"`
}

type CreateOrderInput struct {
	CustomerName   string  `json:"customer_name" binding:"required"`
	Cep            string  `json:"cep"`
	Street         string  `json:"street"`
	Number         string  `json:"number"`
	Neighborhood   string  `json:"neighborhood"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Address        string  `json:"address"`
	ReferencePoint string  `json:"reference_point"`
	Notes          string  `json:"notes"`
	PaymentType    string  `json:"payment_type" binding:"required"`
	CouponCode     *string `json:"coupon_code"`

	Items []CreateOrderItemInput `json:"items" binding:"required,dive"`
}

// FlattenAddress joins the structured address sub-fields into the single
// stored address string. An explicit Address wins over the sub-fields.
func (in *CreateOrderInput) FlattenAddress() string {
	if strings.TrimSpace(in.Address) != "" {
		return strings.TrimSpace(in.Address)
	}
	parts := make([]string, 0, 5)
	if in.Street != "" {
		street := in.Street
		if in.Number != "" {
			street += ", " + in.Number
		}
		parts = append(parts, street)
	}
	if in.Neighborhood != "" {
		parts = append(parts, in.Neighborhood)
	}
	if in.City != "" {
		city := in.City
		if in.State != "" {
			city += " - " + in.State
		}
		parts = append(parts, city)
	}
	if in.Cep != "" {
		parts = append(parts, "CEP "+in.Cep)
	}
	return strings.Join(parts, ", ")
}

// Create places an order atomically: items are re-priced against the live
// catalog, the coupon is re-validated and consumed inside the same
// transaction, and either the full order lands or nothing does. An invalid
// coupon (including losing the usage race) degrades to no discount, it
// never fails the order.
func (os *OrderService) Create(in CreateOrderInput) (*models.Order, RejectionReason, error) {
	if len(in.Items) == 0 {
		return nil, RejectionNone, ErrEmptyOrder
	}
	paymentType := models.PaymentType(in.PaymentType)
	if !models.ValidPaymentType(paymentType) {
		return nil, RejectionNone, fmt.Errorf("unknown payment type %q", in.PaymentType)
	}
	address := in.FlattenAddress()
	if address == "" {
		return nil, RejectionNone, errors.New("customer address is required")
	}

	var (
		order     models.Order
		rejection RejectionReason
	)

	err := os.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Re-price every line from the catalog snapshot inside the tx.
		lines := make([]pricing.Line, 0, len(in.Items))
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, req := range in.Items {
			if req.Quantity < 1 {
				return fmt.Errorf("quantity must be at least 1 for menu item %d", req.MenuItemID)
			}
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, req.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("menu item %d not found", req.MenuItemID)
				}
				return err
			}
			lines = append(lines, pricing.LineFromFloat(menuItem.Price, req.Quantity))
			items = append(items, models.OrderItem{
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				Price:      menuItem.Price,
				Quantity:   req.Quantity,
				ItemNotes:  req.ItemNotes,
				CreatedAt:  now,
			})
		}

		subtotal := pricing.ComputeTotals(lines, nil).Subtotal

		// Coupon validity is re-checked at commit time, and the usage
		// counter is consumed with a conditional write inside this tx so
		// contention can never over-count.
		var discount *pricing.Discount
		var coupon *models.Coupon
		if in.CouponCode != nil && *in.CouponCode != "" {
			couponTx := &CouponService{DB: tx}
			var err error
			coupon, rejection, err = couponTx.Validate(*in.CouponCode, subtotal, now)
			if err != nil {
				return err
			}
			if coupon != nil {
				ok, err := couponTx.Consume(tx, coupon.ID)
				if err != nil {
					return err
				}
				if !ok {
					rejection = RejectionUsageExhausted
					coupon = nil
				}
			}
		}
		if coupon != nil {
			discount = &pricing.Discount{Type: coupon.DiscountType, Value: DiscountValue(coupon)}
		}

		totals := pricing.ComputeTotals(lines, discount)

		paymentStatus := models.PaymentStatusPending
		if paymentType == models.PaymentOnline {
			paymentStatus = models.PaymentStatusPaid
		}

		order = models.Order{
			Reference:              uuid.NewString(),
			CustomerName:           in.CustomerName,
			CustomerAddress:        address,
			CustomerReferencePoint: in.ReferencePoint,
			TotalAmount:            pricing.Round2(totals.Total).InexactFloat64(),
			Status:                 models.StatusPending,
			PaymentType:            &paymentType,
			PaymentStatus:          paymentStatus,
			Notes:                  in.Notes,
			CreatedAt:              now,
			UpdatedAt:              now,
		}
		if coupon != nil {
			discountAmount := pricing.Round2(totals.DiscountAmount).InexactFloat64()
			order.CouponID = &coupon.ID
			order.AppliedCouponCode = &coupon.Code
			order.AppliedCouponDiscount = &discountAmount
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		order.OrderItems = items
		return nil
	})
	if err != nil {
		return nil, rejection, err
	}

	utils.InfoLogger.Printf("Order %s created: total=%.2f status=%s", order.Reference, order.TotalAmount, order.Status)
	return &order, rejection, nil
}

// AssignDeliveryInput carries the parameters of the dispatch edge.
type AssignDeliveryInput struct {
	DeliveryPersonID uint
	Route            string
}

// Transition moves an order along one edge of the lifecycle table. Any
// request not in the table is rejected with ErrInvalidTransition and the
// order is left untouched.
func (os *OrderService) Transition(orderID uint, event TransitionEvent, assign *AssignDeliveryInput) (*models.Order, error) {
	target, ok := eventTargets[event]
	if !ok {
		return nil, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, event)
	}

	var order models.Order
	err := os.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !models.CanTransition(order.Status, target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     target,
			"updated_at": now,
		}

		switch event {
		case EventAssignDeliver:
			if assign == nil {
				return errors.New("assign_delivery requires a delivery person")
			}
			var person models.DeliveryPerson
			if err := tx.First(&person, assign.DeliveryPersonID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("delivery person %d not found", assign.DeliveryPersonID)
				}
				return err
			}
			updates["delivery_person_id"] = person.ID
			updates["delivery_person_name"] = person.Name
			updates["optimized_route"] = assign.Route
		case EventMarkDelivered:
			// Set exactly once; a re-delivery of a cancelled-and-revived
			// order does not exist in this model, so no guard is needed
			// beyond the transition table itself.
			updates["delivered_at"] = now
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("OrderItems").First(&order, orderID).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d: %s -> %s", order.ID, event, order.Status)
	return &order, nil
}

// DispatchFailure reports one order that could not be dispatched.
type DispatchFailure struct {
	OrderID uint   `json:"order_id"`
	Reason  string `json:"reason"`
}

// BulkDispatchResult is the per-order outcome of a multi-order dispatch.
type BulkDispatchResult struct {
	Dispatched []models.Order    `json:"dispatched"`
	Failed     []DispatchFailure `json:"failed"`
	Summary    string            `json:"summary"`
}

// BulkDispatch sends a set of waiting orders out with one delivery person
// sharing one multi-stop route. Each order's transition is an independent
// unit of work: one failure never rolls back the others.
func (os *OrderService) BulkDispatch(ctx context.Context, from string, orderIDs []uint, deliveryPersonID uint) (*BulkDispatchResult, error) {
	if from == "" {
		from = os.StoreAddress
	}

	var person models.DeliveryPerson
	if err := os.DB.First(&person, deliveryPersonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("delivery person %d not found", deliveryPersonID)
		}
		return nil, err
	}

	stops := make([]RouteStop, 0, len(orderIDs))
	addresses := make(map[uint]string, len(orderIDs))
	for _, id := range orderIDs {
		var order models.Order
		if err := os.DB.First(&order, id).Error; err == nil {
			stops = append(stops, RouteStop{OrderID: id, Address: order.CustomerAddress})
			addresses[id] = order.CustomerAddress
		}
	}

	// Route text is best effort: a failing provider degrades to empty
	// descriptions, it never blocks the dispatch itself.
	legByOrder := make(map[uint]string, len(orderIDs))
	summary := ""
	if plan, err := os.Routes.PlanMultiStopRoute(ctx, from, stops); err == nil && plan != nil {
		summary = plan.Summary
		for _, leg := range plan.Legs {
			for _, id := range leg.OrderIDs {
				legByOrder[id] = leg.Description
			}
		}
	} else if err != nil {
		utils.ErrorLogger.Printf("route planning failed, dispatching without route text: %v", err)
	}

	result := &BulkDispatchResult{Summary: summary}
	for _, id := range orderIDs {
		if _, ok := addresses[id]; !ok {
			result.Failed = append(result.Failed, DispatchFailure{OrderID: id, Reason: "order not found"})
			continue
		}
		order, err := os.Transition(id, EventAssignDeliver, &AssignDeliveryInput{
			DeliveryPersonID: deliveryPersonID,
			Route:            legByOrder[id],
		})
		if err != nil {
			result.Failed = append(result.Failed, DispatchFailure{OrderID: id, Reason: err.Error()})
			continue
		}
		result.Dispatched = append(result.Dispatched, *order)
	}
	return result, nil
}

// UpdateDetailsInput are the admin-editable order fields. Nil means leave
// the field alone.
type UpdateDetailsInput struct {
	CustomerName           *string  `json:"customer_name"`
	CustomerAddress        *string  `json:"customer_address"`
	CustomerReferencePoint *string  `json:"customer_reference_point"`
	Notes                  *string  `json:"notes"`
	PaymentType            *string  `json:"payment_type"`
	TotalAmount            *float64 `json:"total_amount"`
}

// UpdateDetails applies an admin detail edit. Status is not editable here;
// the lifecycle machine is the sole authority on status.
func (os *OrderService) UpdateDetails(orderID uint, in UpdateDetailsInput) (*models.Order, error) {
	var order models.Order
	if err := os.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if in.CustomerName != nil {
		updates["customer_name"] = *in.CustomerName
	}
	if in.CustomerAddress != nil {
		updates["customer_address"] = *in.CustomerAddress
	}
	if in.CustomerReferencePoint != nil {
		updates["customer_reference_point"] = *in.CustomerReferencePoint
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if in.PaymentType != nil {
		pt := models.PaymentType(*in.PaymentType)
		if !models.ValidPaymentType(pt) {
			return nil, fmt.Errorf("unknown payment type %q", *in.PaymentType)
		}
		updates["payment_type"] = pt
	}
	if in.TotalAmount != nil {
		if *in.TotalAmount < 0 {
			return nil, errors.New("total amount cannot be negative")
		}
		updates["total_amount"] = pricing.Round2(decimal.NewFromFloat(*in.TotalAmount)).InexactFloat64()
	}

	if err := os.DB.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := os.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkPaid logs a received payment against the order.
func (os *OrderService) MarkPaid(orderID uint, paymentType models.PaymentType) (*models.Order, error) {
	if !models.ValidPaymentType(paymentType) {
		return nil, fmt.Errorf("unknown payment type %q", paymentType)
	}
	var order models.Order
	if err := os.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"payment_type":   paymentType,
		"updated_at":     time.Now(),
	}
	if err := os.DB.Model(&order).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := os.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
