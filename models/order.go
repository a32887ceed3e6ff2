package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxAmount is the largest value a decimal(10,2) money column holds.
const MaxAmount = 99999999.99

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every recognized status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus is case-insensitive and returns the canonical spelling.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", s)
}

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem is a snapshot of a product at checkout time.
type OrderItem struct {
	ID       uint    `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode,omitempty"`
}

type Order struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	OrderRef        string           `gorm:"size:64;uniqueIndex" json:"orderRef"`
	CustomerName    string           `gorm:"size:255;not null" json:"customerName"`
	Total           float64          `gorm:"type:decimal(10,2);not null" json:"total"`
	Status          OrderStatus      `gorm:"type:VARCHAR(20);default:'Pending';not null" json:"status"`
	Items           []OrderItem      `gorm:"type:text;serializer:json;not null" json:"items"`
	UserID          *uint            `gorm:"index" json:"userId"`
	User            *User            `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	ShippingAddress *ShippingAddress `gorm:"type:text;serializer:json" json:"shippingAddress,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// BeforeCreate assigns a reference like 20250908130500-<uuid4> when none is set.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderRef == "" {
		o.OrderRef = time.Now().Format("20060102150405") + "-" + uuid.NewString()
	}
	return nil
}
