package checkout

import (
	"testing"

	"github.com/alfar-programer/Store-B-sub000/apperror"
	"github.com/alfar-programer/Store-B-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shirt = ProductSnapshot{ID: 1, Title: "Shirt", Price: 19.99}
	jeans = ProductSnapshot{ID: 2, Title: "Jeans", Price: 45.5}
)

func validShipping() ShippingDetails {
	return ShippingDetails{
		Name: "Alice", Phone: "+1 (555) 123-4567", Address: "1 Main St",
		City: "Springfield", State: "IL", Country: "US",
	}
}

func TestCart_AddMergesLines(t *testing.T) {
	var c Cart
	c.Add(shirt, 1)
	c.Add(jeans, 2)
	c.Add(shirt, 2)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].Product.ID, "insertion order")
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 5, c.Count())
}

func TestCart_DecrementBelowOneRemovesLine(t *testing.T) {
	var c Cart
	c.Add(shirt, 2)

	c.Decrement(shirt.ID)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.Decrement(shirt.ID)
	assert.True(t, c.IsEmpty())

	c.Decrement(shirt.ID)
	assert.True(t, c.IsEmpty(), "no-op on missing line")
}

func TestCart_SetQuantityAndRemove(t *testing.T) {
	var c Cart
	c.Add(shirt, 1)
	c.Add(jeans, 1)

	c.SetQuantity(jeans.ID, 4)
	assert.Equal(t, 5, c.Count())

	c.SetQuantity(jeans.ID, 0)
	assert.Len(t, c.Lines(), 1)

	c.Remove(shirt.ID)
	assert.True(t, c.IsEmpty())

	c.Add(shirt, 0)
	assert.Equal(t, 1, c.Count(), "quantity floor is 1")
	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCart_Total(t *testing.T) {
	var c Cart
	c.Add(shirt, 3)
	c.Add(jeans, 2)

	assert.Equal(t, "150.97", c.Total().StringFixed(2))
}

func TestItemsTotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 0.1, Quantity: 3},
		{Price: 0.2, Quantity: 1},
	}
	assert.Equal(t, "0.5", ItemsTotal(items).String())
	assert.True(t, ItemsTotal(nil).IsZero())
}

func TestShippingDetails_Validate(t *testing.T) {
	assert.Empty(t, validShipping().Validate())

	s := validShipping()
	s.City = "  "
	s.Phone = "call me"
	fields := s.Validate()
	assert.Equal(t, "is required", fields["city"])
	assert.Equal(t, "must be a valid phone number", fields["phone"])

	fields = ShippingDetails{}.Validate()
	for _, f := range []string{"name", "phone", "address", "city", "state", "country"} {
		assert.Equal(t, "is required", fields[f], f)
	}
}

func TestBuildOrder(t *testing.T) {
	var c Cart
	c.Add(shirt, 1)
	c.Add(jeans, 2)
	uid := uint(9)

	req, err := BuildOrder(&c, validShipping(), &uid)
	require.NoError(t, err)
	assert.Equal(t, "Alice", req.CustomerName)
	assert.InDelta(t, 110.99, req.Total, 0.0001)
	assert.Len(t, req.Items, 2)
	assert.Equal(t, &uid, req.UserID)
	require.NotNil(t, req.ShippingAddress)
	assert.Equal(t, "Springfield", req.ShippingAddress.City)
}

func TestBuildOrder_Failures(t *testing.T) {
	_, err := BuildOrder(&Cart{}, validShipping(), nil)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	var c Cart
	c.Add(shirt, 1)
	bad := validShipping()
	bad.Country = ""
	_, err = BuildOrder(&c, bad, nil)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "country")
}

func TestAddressRoundTrip(t *testing.T) {
	s := validShipping()
	s.ZipCode = "62701"
	assert.Equal(t, s, FromAddress(*s.ToAddress()))
}
