package adminController

import (
	"context"
	"net/http"
	"time"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StatsSource is the read side the dashboard needs.
type StatsSource interface {
	Totals(ctx context.Context) (repository.Totals, error)
	Period(ctx context.Context, w repository.Window) (repository.PeriodTotals, error)
}

type Growth struct {
	Orders  float64 `json:"orders"`
	Revenue float64 `json:"revenue"`
	Users   float64 `json:"users"`
}

type StatsResponse struct {
	TotalProducts   int64   `json:"totalProducts"`
	TotalCategories int64   `json:"totalCategories"`
	TotalUsers      int64   `json:"totalUsers"`
	TotalOrders     int64   `json:"totalOrders"`
	PendingOrders   int64   `json:"pendingOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	Growth          Growth  `json:"growth"`
}

// GetStats handles GET /api/stats. Growth compares the current calendar month
// so far with the whole previous month.
func GetStats(stats StatsSource, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		resp, err := buildStats(c.Request.Context(), stats, now())
		if err != nil {
			apperror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func buildStats(ctx context.Context, stats StatsSource, at time.Time) (*StatsResponse, error) {
	totals, err := stats.Totals(ctx)
	if err != nil {
		return nil, err
	}

	current, previous := monthWindows(at)
	cur, err := stats.Period(ctx, current)
	if err != nil {
		return nil, err
	}
	prev, err := stats.Period(ctx, previous)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalProducts:   totals.Products,
		TotalCategories: totals.Categories,
		TotalUsers:      totals.Customers,
		TotalOrders:     totals.Orders,
		PendingOrders:   totals.PendingOrders,
		TotalRevenue:    decimal.NewFromFloat(totals.Revenue).Round(2).InexactFloat64(),
		Growth: Growth{
			Orders:  growthPercent(decimal.NewFromInt(cur.Orders), decimal.NewFromInt(prev.Orders)),
			Revenue: growthPercent(decimal.NewFromFloat(cur.Revenue), decimal.NewFromFloat(prev.Revenue)),
			Users:   growthPercent(decimal.NewFromInt(cur.Users), decimal.NewFromInt(prev.Users)),
		},
	}, nil
}

// monthWindows returns [start of this month, at) and the whole previous month.
func monthWindows(at time.Time) (current, previous repository.Window) {
	start := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	current = repository.Window{From: start, To: at}
	previous = repository.Window{From: start.AddDate(0, -1, 0), To: start}
	return current, previous
}

// growthPercent is (cur-prev)/prev*100 rounded to one decimal. With no
// previous activity it is 100 when anything happened this month, else 0.
func growthPercent(cur, prev decimal.Decimal) float64 {
	if prev.IsZero() {
		if cur.IsPositive() {
			return 100
		}
		return 0
	}
	return cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
