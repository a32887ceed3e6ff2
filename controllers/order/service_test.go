package orderControllers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/checkout"
	"github.com/alfar-programer/Store-B-sub000/config"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/alfar-programer/Store-B-sub000/repository"
	"github.com/alfar-programer/Store-B-sub000/repository/repotest"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Broadcast(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func newTestService(t *testing.T, opts Options) (*Service, *repository.Repositories, *recorder) {
	t.Helper()
	repos, _ := repotest.NewRepositories(t)
	rec := &recorder{}
	return NewService(repos.Orders, repos.Users, rec, opts), repos, rec
}

func total(v float64) *float64 { return &v }

func TestCreateOrder_PendingWithSnapshot(t *testing.T) {
	svc, _, rec := newTestService(t, Options{})
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderInput{
		CustomerName: "Alice",
		Total:        total(100),
		Items:        []models.OrderItem{{ID: 1, Title: "X", Price: 50, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderRef)
	assert.Nil(t, order.UserID)

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventOrderCreated, rec.events[0].Type)
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _, _ := newTestService(t, Options{})
	ctx := context.Background()

	tests := []struct {
		name  string
		in    CreateOrderInput
		field string
	}{
		{"empty items", CreateOrderInput{CustomerName: "A", Total: total(0)}, "items"},
		{"missing name", CreateOrderInput{Total: total(1), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}}, "customerName"},
		{"missing total", CreateOrderInput{CustomerName: "A", Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}}, "total"},
		{"negative total", CreateOrderInput{CustomerName: "A", Total: total(-1), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}}, "total"},
		{"total over column range", CreateOrderInput{CustomerName: "A", Total: total(1e8), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}}, "total"},
		{"line total over column range", CreateOrderInput{CustomerName: "A", Total: total(1), Items: []models.OrderItem{{Title: "X", Price: 5e7, Quantity: 3}}}, "items[0]"},
		{"zero quantity", CreateOrderInput{CustomerName: "A", Total: total(0), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 0}}}, "items[0]"},
		{"unknown user", CreateOrderInput{CustomerName: "A", Total: total(1), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}, UserID: func() *uint { u := uint(99); return &u }()}, "userId"},
		{"bad shipping", CreateOrderInput{CustomerName: "A", Total: total(1), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}, ShippingAddress: &checkout.ShippingDetails{Name: "A"}}, "shippingAddress.city"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tt.in)
			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestCreateOrder_AcceptsLargestAmount(t *testing.T) {
	svc, _, _ := newTestService(t, Options{})

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName: "Wholesale",
		Total:        total(models.MaxAmount),
		Items:        []models.OrderItem{{Title: "Container", Price: models.MaxAmount, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaxAmount, order.Total)
}

func TestCreateOrder_TotalPolicy(t *testing.T) {
	in := func() CreateOrderInput {
		return CreateOrderInput{
			CustomerName: "Promo",
			Total:        total(80),
			Items:        []models.OrderItem{{ID: 1, Title: "X", Price: 50, Quantity: 2}},
		}
	}

	trusting, _, _ := newTestService(t, Options{TotalPolicy: config.TotalPolicyTrust})
	order, err := trusting.CreateOrder(context.Background(), in())
	require.NoError(t, err)
	assert.Equal(t, 80.0, order.Total, "client total is stored as supplied")

	verifying, _, _ := newTestService(t, Options{TotalPolicy: config.TotalPolicyVerify})
	_, err = verifying.CreateOrder(context.Background(), in())
	assert.ErrorIs(t, err, apperror.ErrValidation)

	ok := in()
	ok.Total = total(100.004)
	_, err = verifying.CreateOrder(context.Background(), ok)
	assert.NoError(t, err, "within rounding tolerance")
}

func TestListForUser_RoundTripsItems(t *testing.T) {
	svc, repos, _ := newTestService(t, Options{})
	ctx := context.Background()

	alice := models.User{Name: "Alice", Email: "alice@test.com", Password: "x", Role: models.RoleCustomer}
	require.NoError(t, repos.Users.Create(ctx, &alice))

	items := []models.OrderItem{
		{ID: 1, Title: "X", Price: 50, Quantity: 2, Image: "http://img/x.png"},
		{ID: 3, Title: "Z", Price: 0, Quantity: 1},
	}
	_, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Alice", Total: total(100), Items: items, UserID: &alice.ID})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Guest", Total: total(5), Items: []models.OrderItem{{ID: 2, Title: "Y", Price: 5, Quantity: 1}}})
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, items, mine[0].Items)
	assert.Equal(t, 100.0, mine[0].Total)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Guest", all[0].CustomerName, "newest first")
}

func TestSnapshotIsolation(t *testing.T) {
	svc, repos, _ := newTestService(t, Options{})
	ctx := context.Background()

	product := models.Product{Title: "Lamp", Description: "d", Price: 30}
	require.NoError(t, repos.Products.Create(ctx, &product))

	var cart checkout.Cart
	cart.Add(checkout.SnapshotOf(product), 1)
	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "Bob", Total: total(30), Items: cart.Items()})
	require.NoError(t, err)

	product.Price = 99
	product.Title = "Lamp v2"
	require.NoError(t, repos.Products.Save(ctx, &product))

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, stored.Items[0].Price)
	assert.Equal(t, "Lamp", stored.Items[0].Title)
}

func TestUpdateStatus_Permissive(t *testing.T) {
	svc, _, rec := newTestService(t, Options{})
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "A", Total: total(1), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	updated, err = svc.UpdateStatus(ctx, order.ID, "Pending")
	require.NoError(t, err, "backwards moves are allowed by default")
	assert.Equal(t, models.OrderStatusPending, updated.Status)

	_, err = svc.UpdateStatus(ctx, order.ID, "Lost")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.UpdateStatus(ctx, 12345, "Shipped")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.Len(t, rec.events, 3)
}

func TestUpdateStatus_Strict(t *testing.T) {
	svc, _, _ := newTestService(t, Options{StrictTransitions: true})
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderInput{CustomerName: "A", Total: total(1), Items: []models.OrderItem{{Title: "X", Price: 1, Quantity: 1}}})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "Delivered")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	for _, st := range []string{"Processing", "Shipped", "Delivered"} {
		_, err = svc.UpdateStatus(ctx, order.ID, st)
		require.NoError(t, err, st)
	}
	_, err = svc.UpdateStatus(ctx, order.ID, "Pending")
	assert.ErrorIs(t, err, apperror.ErrValidation, "delivered is terminal")
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.True(t, CanTransition(models.OrderStatusShipped, models.OrderStatusShipped))
	assert.False(t, CanTransition(models.OrderStatusCancelled, models.OrderStatusPending))
	assert.False(t, CanTransition(models.OrderStatusPending, models.OrderStatusDelivered))
}

func TestHub_BroadcastsToSubscribers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", hub.Handler())
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(Event{Type: EventOrderCreated, Order: models.Order{ID: 5, CustomerName: "Alice"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventOrderCreated, got.Type)
	assert.Equal(t, uint(5), got.Order.ID)

	hub.Close()
	assert.Equal(t, 0, hub.Clients())
}

func TestHub_SlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", hub.Handler())
	srv := httptest.NewServer(r)
	defer srv.Close()
	defer hub.Close()

	// never read from this socket
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	big := models.Order{ID: 1, CustomerName: "Bulk", Items: []models.OrderItem{
		{Title: strings.Repeat("x", 512<<10), Price: 1, Quantity: 1},
	}}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 64; i++ {
			hub.Broadcast(Event{Type: EventOrderCreated, Order: big})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast waited on a subscriber that is not reading")
	}
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 7*time.Second, 20*time.Millisecond)
}
