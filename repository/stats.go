package repository

import (
	"context"
	"time"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"gorm.io/gorm"
)

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// PeriodTotals are the figures compared month over month.
type PeriodTotals struct {
	Orders  int64
	Revenue float64
	Users   int64
}

// Totals are all-time figures for the dashboard.
type Totals struct {
	Products      int64
	Categories    int64
	Customers     int64
	Orders        int64
	PendingOrders int64
	Revenue       float64
}

type Stats struct {
	db *gorm.DB
}

func NewStats(db *gorm.DB) *Stats {
	return &Stats{db: db}
}

func (r *Stats) Totals(ctx context.Context) (Totals, error) {
	db := r.db.WithContext(ctx)
	var t Totals

	steps := []func() error{
		func() error { return db.Model(&models.Product{}).Count(&t.Products).Error },
		func() error { return db.Model(&models.Category{}).Count(&t.Categories).Error },
		func() error {
			return db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&t.Customers).Error
		},
		func() error { return db.Model(&models.Order{}).Count(&t.Orders).Error },
		func() error {
			return db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&t.PendingOrders).Error
		},
		func() error { return r.revenue(db.Model(&models.Order{}), &t.Revenue) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return Totals{}, apperror.FromDB("Stats", err)
		}
	}
	return t, nil
}

// Period returns the figures for orders and customers created inside w.
func (r *Stats) Period(ctx context.Context, w Window) (PeriodTotals, error) {
	db := r.db.WithContext(ctx)
	var p PeriodTotals

	inWindow := func(q *gorm.DB) *gorm.DB {
		return q.Where("created_at >= ? AND created_at < ?", w.From, w.To)
	}

	if err := inWindow(db.Model(&models.Order{})).Count(&p.Orders).Error; err != nil {
		return PeriodTotals{}, apperror.FromDB("Stats", err)
	}
	if err := r.revenue(inWindow(db.Model(&models.Order{})), &p.Revenue); err != nil {
		return PeriodTotals{}, apperror.FromDB("Stats", err)
	}
	if err := inWindow(db.Model(&models.User{})).Where("role = ?", models.RoleCustomer).Count(&p.Users).Error; err != nil {
		return PeriodTotals{}, apperror.FromDB("Stats", err)
	}
	return p, nil
}

// revenue sums totals of orders that were not cancelled.
func (r *Stats) revenue(q *gorm.DB, dst *float64) error {
	return q.Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(dst).Error
}
