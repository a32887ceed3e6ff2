package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/checkout"
	"github.com/alfar-programer/Store-B-sub000/config"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/shopspring/decimal"
)

var (
	// totalTolerance absorbs client-side float rounding.
	totalTolerance = decimal.NewFromFloat(0.01)
	maxAmount      = decimal.NewFromFloat(models.MaxAmount)
)

// OrderStore is the persistence the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	ChangeStatus(ctx context.Context, id uint, decide func(current models.OrderStatus) (models.OrderStatus, error)) (*models.Order, error)
}

// UserLookup checks that an order owner exists.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// Notifier receives order events, e.g. the admin live feed.
type Notifier interface {
	Broadcast(event Event)
}

type Options struct {
	TotalPolicy       string
	StrictTransitions bool
}

type Service struct {
	orders   OrderStore
	users    UserLookup
	notifier Notifier
	opts     Options
}

func NewService(orders OrderStore, users UserLookup, notifier Notifier, opts Options) *Service {
	if opts.TotalPolicy == "" {
		opts.TotalPolicy = config.TotalPolicyTrust
	}
	return &Service{orders: orders, users: users, notifier: notifier, opts: opts}
}

// CreateOrderInput is the body of POST /api/orders.
type CreateOrderInput struct {
	CustomerName    string                    `json:"customerName"`
	Total           *float64                  `json:"total"`
	Items           []models.OrderItem        `json:"items"`
	UserID          *uint                     `json:"userId"`
	ShippingAddress *checkout.ShippingDetails `json:"shippingAddress"`
}

// CreateOrder validates and persists a new Pending order.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if fields := validateCreate(in); len(fields) > 0 {
		return nil, apperror.Validation("Invalid order", fields)
	}

	supplied := decimal.NewFromFloat(*in.Total)
	computed := checkout.ItemsTotal(in.Items)
	if !supplied.Sub(computed).Abs().LessThanOrEqual(totalTolerance) {
		if s.opts.TotalPolicy == config.TotalPolicyVerify {
			return nil, apperror.Validation("Invalid order", map[string]string{
				"total": fmt.Sprintf("does not match items total %s", computed.StringFixed(2)),
			})
		}
		log.Printf("⚠️ Order total %s differs from items total %s for %q", supplied.StringFixed(2), computed.StringFixed(2), in.CustomerName)
	}

	if in.UserID != nil && s.users != nil {
		if _, err := s.users.FindByID(ctx, *in.UserID); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.Validation("Invalid order", map[string]string{"userId": "unknown user"})
			}
			return nil, err
		}
	}

	order := &models.Order{
		CustomerName: in.CustomerName,
		Total:        *in.Total,
		Status:       models.OrderStatusPending,
		Items:        in.Items,
		UserID:       in.UserID,
	}
	if in.ShippingAddress != nil {
		order.ShippingAddress = in.ShippingAddress.ToAddress()
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("🛒 Order %d created (%s) total=%.2f", order.ID, order.OrderRef, order.Total)
	s.notify(EventOrderCreated, order)
	return order, nil
}

func validateCreate(in CreateOrderInput) map[string]string {
	fields := map[string]string{}
	if in.CustomerName == "" {
		fields["customerName"] = "is required"
	}
	if in.Total == nil {
		fields["total"] = "is required"
	} else if *in.Total < 0 {
		fields["total"] = "must be greater than or equal to 0"
	} else if decimal.NewFromFloat(*in.Total).GreaterThan(maxAmount) {
		fields["total"] = "must be at most " + maxAmount.StringFixed(2)
	}
	if len(in.Items) == 0 {
		fields["items"] = "must contain at least one item"
	}
	for i, it := range in.Items {
		key := fmt.Sprintf("items[%d]", i)
		switch {
		case it.Quantity < 1:
			fields[key] = "quantity must be at least 1"
		case it.Price < 0:
			fields[key] = "price must be greater than or equal to 0"
		case strings.TrimSpace(it.Title) == "":
			fields[key] = "title is required"
		case decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))).GreaterThan(maxAmount):
			fields[key] = "line total must be at most " + maxAmount.StringFixed(2)
		}
	}
	if in.ShippingAddress != nil {
		for k, v := range in.ShippingAddress.Validate() {
			fields["shippingAddress."+k] = v
		}
	}
	return fields
}

// ListAll returns every order newest first.
func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

// ListForUser returns the caller's orders newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

// UpdateStatus overwrites the status. Any recognized status is accepted unless
// strict transitions are enabled.
func (s *Service) UpdateStatus(ctx context.Context, id uint, raw string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(raw)
	if err != nil {
		return nil, apperror.Validation("Invalid status", map[string]string{
			"status": "must be one of: Pending, Processing, Shipped, Delivered, Cancelled",
		})
	}

	order, err := s.orders.ChangeStatus(ctx, id, func(current models.OrderStatus) (models.OrderStatus, error) {
		if s.opts.StrictTransitions && !CanTransition(current, status) {
			return "", apperror.Validation("Invalid status transition", map[string]string{
				"status": fmt.Sprintf("cannot change from %s to %s", current, status),
			})
		}
		return status, nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("📦 Order %d status set to %s", order.ID, order.Status)
	s.notify(EventOrderStatus, order)
	return order, nil
}

func (s *Service) notify(kind string, order *models.Order) {
	if s.notifier != nil {
		s.notifier.Broadcast(Event{Type: kind, Order: *order})
	}
}
