package repository

import (
	"context"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// Create inserts the order with its item snapshot in a single statement.
func (r *Orders) Create(ctx context.Context, o *models.Order) error {
	return apperror.FromDB("Order", r.db.WithContext(ctx).Create(o).Error)
}

// List returns every order newest first.
func (r *Orders) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, apperror.FromDB("Orders", err)
	}
	return orders, nil
}

// ListByUser returns the orders owned by userID newest first.
func (r *Orders) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, apperror.FromDB("Orders", err)
	}
	return orders, nil
}

func (r *Orders) Get(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, apperror.FromDB("Order", err)
	}
	return &o, nil
}

// ChangeStatus locks the order row, asks decide for the next status given the
// current one and stores it. Without the lock two admins could both pass a
// transition check against the same old status.
func (r *Orders) ChangeStatus(ctx context.Context, id uint, decide func(current models.OrderStatus) (models.OrderStatus, error)) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
			return apperror.FromDB("Order", err)
		}
		next, err := decide(order.Status)
		if err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return apperror.FromDB("Order", err)
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
